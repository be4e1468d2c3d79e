package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/tasknest-api/internal/models"
	"github.com/yukikurage/tasknest-api/internal/taskview"
)

func TestToNotificationsResponseNeverNil(t *testing.T) {
	resp := ToNotificationsResponse(taskview.Classification{})

	assert.NotNil(t, resp.Overdue)
	assert.NotNil(t, resp.Upcoming)
}

func TestToNotificationsResponse(t *testing.T) {
	due := "2024-03-14"
	resp := ToNotificationsResponse(taskview.Classification{
		Overdue: []models.Task{{ID: 3, Name: "Pay rent", DueDate: &due}},
	})

	assert.Equal(t, []NotificationDTO{{TaskID: 3, Name: "Pay rent", DueDate: "2024-03-14"}}, resp.Overdue)
}

func TestToTaskDTOOmitsUnloadedComments(t *testing.T) {
	dto := ToTaskDTO(models.Task{ID: 1, Name: "a"})
	assert.Nil(t, dto.Comments)

	dto = ToTaskDTO(models.Task{ID: 1, Name: "a", Comments: []models.Comment{{ID: 9, TaskID: 1, Content: "hi"}}})
	assert.Len(t, dto.Comments, 1)
}

func TestToMetaResponse(t *testing.T) {
	meta := ToMetaResponse(models.DefaultCategories())

	assert.Equal(t, []models.Category{"Work", "Personal", "Other", "Urgent"}, meta.Categories)
	assert.Equal(t, []models.Priority{"Low", "Medium", "High"}, meta.Priorities)
	assert.Equal(t, []string{"due_date", "priority", "completed"}, meta.SortFields)
}
