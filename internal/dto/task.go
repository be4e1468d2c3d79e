package dto

import (
	"time"

	"github.com/yukikurage/tasknest-api/internal/models"
	"github.com/yukikurage/tasknest-api/internal/services"
	"github.com/yukikurage/tasknest-api/internal/taskview"
	"github.com/yukikurage/tasknest-api/internal/utils"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID        uint64    `json:"id"`
	TaskID    uint64    `json:"task_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	Category  models.Category `json:"category"`
	Priority  models.Priority `json:"priority"`
	DueDate   *string         `json:"due_date"`
	Completed bool            `json:"completed"`
	OwnerID   uint64          `json:"owner_id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Comments  []CommentDTO    `json:"comments,omitempty"`
}

// TaskListResponse represents a filtered list of tasks
type TaskListResponse struct {
	Tasks []TaskDTO `json:"tasks"`
	Count int       `json:"count"`
}

// CommentListResponse represents a page of comments
type CommentListResponse struct {
	Comments   []CommentDTO             `json:"comments"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// NotificationDTO is a reminder about one task
type NotificationDTO struct {
	TaskID  uint64 `json:"task_id"`
	Name    string `json:"name"`
	DueDate string `json:"due_date"`
}

// NotificationsResponse groups reminders by urgency
type NotificationsResponse struct {
	Overdue  []NotificationDTO `json:"overdue"`
	Upcoming []NotificationDTO `json:"upcoming"`
}

// GeneratedTasksResponse wraps AI task drafts
type GeneratedTasksResponse struct {
	Tasks []services.GeneratedTask `json:"tasks"`
}

// MetaResponse lists the values accepted for task fields
type MetaResponse struct {
	Categories []models.Category `json:"categories"`
	Priorities []models.Priority `json:"priorities"`
	SortFields []string          `json:"sort_fields"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}

// ToCommentDTOs converts comments, never returning nil
func ToCommentDTOs(comments []models.Comment) []CommentDTO {
	out := make([]CommentDTO, len(comments))
	for i, comment := range comments {
		out[i] = ToCommentDTO(comment)
	}
	return out
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:        task.ID,
		Name:      task.Name,
		Category:  task.Category,
		Priority:  task.Priority,
		DueDate:   task.DueDate,
		Completed: task.Completed,
		OwnerID:   task.OwnerID,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}

	// Include comments if preloaded
	if len(task.Comments) > 0 {
		dto.Comments = ToCommentDTOs(task.Comments)
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks: items,
		Count: len(items),
	}
}

// ToCommentListResponse converts a comment page to CommentListResponse
func ToCommentListResponse(comments []models.Comment, params utils.PaginationParams, total int64) CommentListResponse {
	return CommentListResponse{
		Comments:   ToCommentDTOs(comments),
		Pagination: utils.NewPaginationResponse(params, total),
	}
}

// ToNotificationsResponse converts a classification to reminders
func ToNotificationsResponse(c taskview.Classification) NotificationsResponse {
	return NotificationsResponse{
		Overdue:  toNotifications(c.Overdue),
		Upcoming: toNotifications(c.Upcoming),
	}
}

func toNotifications(tasks []models.Task) []NotificationDTO {
	out := make([]NotificationDTO, len(tasks))
	for i, task := range tasks {
		out[i] = NotificationDTO{TaskID: task.ID, Name: task.Name}
		if task.DueDate != nil {
			out[i].DueDate = *task.DueDate
		}
	}
	return out
}

// ToMetaResponse lists the configured categories and every priority
func ToMetaResponse(categories models.CategorySet) MetaResponse {
	return MetaResponse{
		Categories: categories.List(),
		Priorities: models.Priorities(),
		SortFields: []string{
			string(taskview.SortByDueDate),
			string(taskview.SortByPriority),
			string(taskview.SortByCompleted),
		},
	}
}
