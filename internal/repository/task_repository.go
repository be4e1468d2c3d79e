package repository

import (
	"github.com/yukikurage/tasknest-api/internal/database"
	"github.com/yukikurage/tasknest-api/internal/models"
	"github.com/yukikurage/tasknest-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create inserts a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindWithComments finds a task by ID and preloads its comments
func (r *GormTaskRepository) FindWithComments(id uint64) (*models.Task, error) {
	var task models.Task
	err := r.db.
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC, comments.id ASC")
		}).
		First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByOwner returns an owner's tasks in insertion order
func (r *GormTaskRepository) ListByOwner(ownerID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Where("owner_id = ?", ownerID).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ToggleCompleted flips the completed flag of an owned task
func (r *GormTaskRepository) ToggleCompleted(id, ownerID uint64) (*models.Task, error) {
	var task models.Task
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := findOwnedForUpdate(tx, id, ownerID, &task); err != nil {
			return err
		}

		task.Completed = !task.Completed
		return tx.Model(&task).Update("completed", task.Completed).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteOwned deletes an owned task and its comments in a transaction
func (r *GormTaskRepository) DeleteOwned(id, ownerID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := findOwnedForUpdate(tx, id, ownerID, &task); err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// AddComment inserts a comment on an owned task
func (r *GormTaskRepository) AddComment(ownerID uint64, comment *models.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := findOwnedForUpdate(tx, comment.TaskID, ownerID, &task); err != nil {
			return err
		}

		return tx.Create(comment).Error
	})
}

// ListComments returns a page of comments, oldest first
func (r *GormTaskRepository) ListComments(taskID uint64, params utils.PaginationParams) ([]models.Comment, int64, error) {
	query := r.db.Model(&models.Comment{}).Where("task_id = ?", taskID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	if err := query.
		Order("created_at ASC, id ASC").
		Scopes(database.Paginate(params)).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// findOwnedForUpdate loads a task row, locking it where the driver supports
// row locks, and fails with ErrNotOwner when ownerID does not own it.
func findOwnedForUpdate(tx *gorm.DB, id, ownerID uint64, task *models.Task) error {
	query := tx
	if database.SupportsRowLocks(tx) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	if err := query.First(task, id).Error; err != nil {
		return err
	}
	if task.OwnerID != ownerID {
		return ErrNotOwner
	}
	return nil
}
