package taskview

import (
	"time"

	"github.com/yukikurage/tasknest-api/internal/models"
)

// Classification partitions a user's open, dated tasks by urgency.
type Classification struct {
	Overdue  []models.Task
	Upcoming []models.Task
}

// Classify marks incomplete tasks due before today as overdue and those due
// today or tomorrow as upcoming. Completed tasks and tasks without a due
// date are never classified. Each task ID appears at most once.
func Classify(tasks []models.Task, today time.Time) (Classification, error) {
	day := DateOf(today)
	result := Classification{
		Overdue:  []models.Task{},
		Upcoming: []models.Task{},
	}

	for _, task := range uniqueByID(openDated(tasks)) {
		due, err := dueDateOf(task)
		if err != nil {
			return Classification{}, err
		}

		switch diff := daysBetween(day, due); {
		case diff < 0:
			result.Overdue = append(result.Overdue, task)
		case diff <= 1:
			result.Upcoming = append(result.Upcoming, task)
		}
	}

	return result, nil
}

func openDated(tasks []models.Task) []models.Task {
	open := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Completed || !task.HasDueDate() {
			continue
		}
		open = append(open, task)
	}
	return open
}
