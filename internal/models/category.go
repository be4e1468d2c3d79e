package models

import (
	"errors"
	"fmt"
	"strings"
)

type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryOther    Category = "Other"
	CategoryUrgent   Category = "Urgent"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrEmptyCategories = errors.New("at least one category is required")
)

// CategorySet is the closed list of categories a deployment accepts.
// The zero value accepts nothing.
type CategorySet struct {
	ordered []Category
	index   map[Category]struct{}
}

// DefaultCategories returns Work, Personal, Other and Urgent.
func DefaultCategories() CategorySet {
	set, _ := NewCategorySet([]string{
		string(CategoryWork),
		string(CategoryPersonal),
		string(CategoryOther),
		string(CategoryUrgent),
	})
	return set
}

// NewCategorySet builds a set from labels, trimming blanks and dropping duplicates.
func NewCategorySet(labels []string) (CategorySet, error) {
	set := CategorySet{index: make(map[Category]struct{}, len(labels))}
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		if len(label) > 50 {
			return CategorySet{}, fmt.Errorf("category %q exceeds 50 characters", label)
		}
		c := Category(label)
		if _, exists := set.index[c]; exists {
			continue
		}
		set.index[c] = struct{}{}
		set.ordered = append(set.ordered, c)
	}
	if len(set.ordered) == 0 {
		return CategorySet{}, ErrEmptyCategories
	}
	return set, nil
}

// Parse returns the category matching raw exactly after trimming.
func (s CategorySet) Parse(raw string) (Category, error) {
	c := Category(strings.TrimSpace(raw))
	if !s.Contains(c) {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
	}
	return c, nil
}

func (s CategorySet) Contains(c Category) bool {
	_, ok := s.index[c]
	return ok
}

// List returns the categories in configuration order.
func (s CategorySet) List() []Category {
	out := make([]Category, len(s.ordered))
	copy(out, s.ordered)
	return out
}

func (s CategorySet) Len() int {
	return len(s.ordered)
}
