package taskview

import (
	"fmt"
	"time"

	"github.com/yukikurage/tasknest-api/internal/constants"
	"github.com/yukikurage/tasknest-api/internal/models"
)

// DateParseError reports a stored due date that is not a YYYY-MM-DD date.
type DateParseError struct {
	TaskID uint64
	Value  string
	Err    error
}

func (e *DateParseError) Error() string {
	if e.TaskID == 0 {
		return fmt.Sprintf("invalid due date %q: expected YYYY-MM-DD", e.Value)
	}
	return fmt.Sprintf("task %d has invalid due date %q: expected YYYY-MM-DD", e.TaskID, e.Value)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

// ParseDate parses a YYYY-MM-DD calendar date into UTC midnight.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(constants.DateLayout, value)
	if err != nil {
		return time.Time{}, &DateParseError{Value: value, Err: err}
	}
	return t, nil
}

// FormatDate renders t's calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateLayout)
}

func dueDateOf(task models.Task) (time.Time, error) {
	t, err := time.Parse(constants.DateLayout, *task.DueDate)
	if err != nil {
		return time.Time{}, &DateParseError{TaskID: task.ID, Value: *task.DueDate, Err: err}
	}
	return t, nil
}

// OwnedBy returns the tasks belonging to ownerID, in input order.
func OwnedBy(ownerID uint64, tasks []models.Task) []models.Task {
	owned := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.OwnerID == ownerID {
			owned = append(owned, task)
		}
	}
	return owned
}

func uniqueByID(tasks []models.Task) []models.Task {
	seen := make(map[uint64]struct{}, len(tasks))
	result := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if _, exists := seen[task.ID]; exists {
			continue
		}
		seen[task.ID] = struct{}{}
		result = append(result, task)
	}
	return result
}
