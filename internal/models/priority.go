package models

import (
	"errors"
	"strings"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

var ErrUnknownPriority = errors.New("unknown priority")

// Priorities lists every priority in ascending rank.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// ParsePriority accepts a priority label regardless of case and returns its canonical form.
func ParsePriority(raw string) (Priority, error) {
	value := strings.TrimSpace(raw)
	for _, p := range Priorities() {
		if strings.EqualFold(value, string(p)) {
			return p, nil
		}
	}
	return "", ErrUnknownPriority
}

// Rank orders priorities Low < Medium < High. Unknown labels rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	default:
		return 0
	}
}

func (p Priority) Valid() bool {
	return p.Rank() > 0
}
