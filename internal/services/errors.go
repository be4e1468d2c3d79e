package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/tasknest-api/internal/repository"
	"gorm.io/gorm"
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// AuthorizationError reports an action on a task the actor does not own.
type AuthorizationError struct {
	Action string
	TaskID uint64
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("not allowed to %s task %d", e.Action, e.TaskID)
}

// NotFoundError reports a missing resource. It is distinct from AuthorizationError.
type NotFoundError struct {
	Resource string
	ID       uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// StorageError wraps a failure of the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// taskStoreError maps repository errors for a task operation onto the typed errors above.
func taskStoreError(err error, action string, taskID uint64) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &NotFoundError{Resource: "task", ID: taskID}
	case errors.Is(err, repository.ErrNotOwner):
		return &AuthorizationError{Action: action, TaskID: taskID}
	default:
		return &StorageError{Op: action + " task", Err: err}
	}
}
