package repository

import (
	"errors"

	"github.com/yukikurage/tasknest-api/internal/models"
	"github.com/yukikurage/tasknest-api/internal/utils"
)

// ErrNotOwner is returned by owner-checked writes when the task belongs to someone else.
var ErrNotOwner = errors.New("task repository: task belongs to another user")

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create inserts a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID without relations
	FindByID(id uint64) (*models.Task, error)

	// FindWithComments finds a task by ID with its comments in creation order
	FindWithComments(id uint64) (*models.Task, error)

	// ListByOwner returns every task of an owner in ID order
	ListByOwner(ownerID uint64) ([]models.Task, error)

	// ToggleCompleted flips completion after re-checking ownership in the same transaction
	ToggleCompleted(id, ownerID uint64) (*models.Task, error)

	// DeleteOwned deletes a task and its comments after re-checking ownership
	DeleteOwned(id, ownerID uint64) error

	// AddComment attaches a comment after re-checking ownership of its task
	AddComment(ownerID uint64, comment *models.Comment) error

	// ListComments returns a page of a task's comments and the total count
	ListComments(taskID uint64, params utils.PaginationParams) ([]models.Comment, int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// DeleteWithTasks deletes a user together with all owned tasks and their comments
	DeleteWithTasks(id uint64) error
}
