package taskview

import (
	"time"

	"github.com/yukikurage/tasknest-api/internal/models"
)

const ownerID uint64 = 1

func date(value string) time.Time {
	t, err := ParseDate(value)
	if err != nil {
		panic(err)
	}
	return t
}

func due(value string) *string {
	return &value
}

func newTask(id uint64, name string, dueDate *string, completed bool) models.Task {
	return models.Task{
		ID:        id,
		OwnerID:   ownerID,
		Name:      name,
		Category:  models.CategoryWork,
		Priority:  models.PriorityMedium,
		DueDate:   dueDate,
		Completed: completed,
	}
}

func ids(tasks []models.Task) []uint64 {
	out := make([]uint64, len(tasks))
	for i, task := range tasks {
		out[i] = task.ID
	}
	return out
}
