package taskview

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/yukikurage/tasknest-api/internal/models"
)

type SortField string

const (
	SortNone        SortField = ""
	SortByDueDate   SortField = "due_date"
	SortByPriority  SortField = "priority"
	SortByCompleted SortField = "completed"
)

var ErrUnknownSortField = errors.New("unknown sort field")

// ParseSortField accepts due_date (or dueDate), priority, completed, or an empty value.
func ParseSortField(raw string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return SortNone, nil
	case "due_date", "duedate":
		return SortByDueDate, nil
	case "priority":
		return SortByPriority, nil
	case "completed":
		return SortByCompleted, nil
	default:
		return SortNone, fmt.Errorf("%w: %q", ErrUnknownSortField, raw)
	}
}

// QueryParams narrows and orders a task listing. Empty fields match everything.
type QueryParams struct {
	Search   string
	Category string
	SortBy   SortField
}

// Query returns ownerID's tasks matching params. Tasks owned by anyone else
// are discarded before filtering. Undated tasks sort after dated ones under
// SortByDueDate; every ordering is stable. The input slice is not modified.
func Query(ownerID uint64, tasks []models.Task, params QueryParams) ([]models.Task, error) {
	search := strings.ToLower(params.Search)
	category := models.Category(params.Category)

	result := make([]models.Task, 0, len(tasks))
	for _, task := range OwnedBy(ownerID, tasks) {
		if search != "" && !strings.Contains(strings.ToLower(task.Name), search) {
			continue
		}
		if category != "" && task.Category != category {
			continue
		}
		result = append(result, task)
	}

	switch params.SortBy {
	case SortNone:
	case SortByDueDate:
		return sortByDueDate(result)
	case SortByPriority:
		slices.SortStableFunc(result, func(a, b models.Task) int {
			return a.Priority.Rank() - b.Priority.Rank()
		})
	case SortByCompleted:
		slices.SortStableFunc(result, func(a, b models.Task) int {
			return boolRank(a.Completed) - boolRank(b.Completed)
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortField, params.SortBy)
	}

	return result, nil
}

type datedTask struct {
	task   models.Task
	due    time.Time
	hasDue bool
}

func sortByDueDate(tasks []models.Task) ([]models.Task, error) {
	entries := make([]datedTask, len(tasks))
	for i, task := range tasks {
		entries[i] = datedTask{task: task}
		if !task.HasDueDate() {
			continue
		}
		due, err := dueDateOf(task)
		if err != nil {
			return nil, err
		}
		entries[i].due = due
		entries[i].hasDue = true
	}

	slices.SortStableFunc(entries, func(a, b datedTask) int {
		switch {
		case a.hasDue && b.hasDue:
			return a.due.Compare(b.due)
		case a.hasDue:
			return -1
		case b.hasDue:
			return 1
		default:
			return 0
		}
	})

	for i, entry := range entries {
		tasks[i] = entry.task
	}
	return tasks, nil
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
