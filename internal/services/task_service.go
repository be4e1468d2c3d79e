package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/tasknest-api/internal/constants"
	"github.com/yukikurage/tasknest-api/internal/models"
	"github.com/yukikurage/tasknest-api/internal/repository"
	"github.com/yukikurage/tasknest-api/internal/taskview"
	"github.com/yukikurage/tasknest-api/internal/utils"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
	ErrAITooManyTasks         = fmt.Errorf("AI generated too many tasks (max %d)", constants.MaxAIGeneratedTasks)
)

const maxCommentLength = 2000

// StatsCache stores computed dashboards. Implementations may fail; the
// service logs and bypasses those failures.
type StatsCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	DeletePattern(ctx context.Context, pattern string) error
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo   repository.TaskRepository
	categories models.CategorySet
	clock      taskview.Clock
	cache      StatsCache
	drafter    TaskDrafter
	sfGroup    singleflight.Group

	// generations counts writes per owner; a dashboard computed under an
	// older generation is returned but never cached.
	generations sync.Map // uint64 -> *atomic.Uint64
}

// NewTaskService creates a new TaskService. cache and drafter may be nil.
func NewTaskService(
	taskRepo repository.TaskRepository,
	categories models.CategorySet,
	clock taskview.Clock,
	cache StatsCache,
	drafter TaskDrafter,
) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		categories: categories,
		clock:      clock,
		cache:      cache,
		drafter:    drafter,
	}
}

// Categories returns the configured category set.
func (s *TaskService) Categories() models.CategorySet {
	return s.categories
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Search   string
	Category string
	SortBy   string
}

// ListTasks returns the owner's tasks filtered and sorted by input.
func (s *TaskService) ListTasks(ownerID uint64, input ListTasksInput) ([]models.Task, error) {
	sortBy, err := taskview.ParseSortField(input.SortBy)
	if err != nil {
		return nil, invalid("sort_by", "must be one of due_date, priority, completed")
	}

	tasks, err := s.taskRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, &StorageError{Op: "list tasks", Err: err}
	}

	return taskview.Query(ownerID, tasks, taskview.QueryParams{
		Search:   strings.TrimSpace(input.Search),
		Category: strings.TrimSpace(input.Category),
		SortBy:   sortBy,
	})
}

// GetTask returns an owned task with its comments.
func (s *TaskService) GetTask(taskID, actorID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindWithComments(taskID)
	if err != nil {
		return nil, taskStoreError(err, "view", taskID)
	}
	if task.OwnerID != actorID {
		return nil, &AuthorizationError{Action: "view", TaskID: taskID}
	}

	return task, nil
}

// AuthorizeTask returns an owned task without its comments.
func (s *TaskService) AuthorizeTask(taskID, actorID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, taskStoreError(err, "view", taskID)
	}
	if task.OwnerID != actorID {
		return nil, &AuthorizationError{Action: "view", TaskID: taskID}
	}

	return task, nil
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	OwnerID  uint64
	Name     string
	Category string
	Priority string
	DueDate  *string
}

// CreateTask validates input and stores a new incomplete task.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	if utf8.RuneCountInString(name) > 150 {
		return nil, invalid("name", "must be at most 150 characters")
	}

	if strings.TrimSpace(input.Category) == "" {
		return nil, invalid("category", "is required")
	}
	category, err := s.categories.Parse(input.Category)
	if err != nil {
		return nil, invalid("category", err.Error())
	}

	if strings.TrimSpace(input.Priority) == "" {
		return nil, invalid("priority", "is required")
	}
	priority, err := models.ParsePriority(input.Priority)
	if err != nil {
		return nil, invalid("priority", err.Error())
	}

	dueDate, err := normalizeDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		OwnerID:  input.OwnerID,
		Name:     name,
		Category: category,
		Priority: priority,
		DueDate:  dueDate,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, &StorageError{Op: "create task", Err: err}
	}

	s.invalidateDashboard(ctx, input.OwnerID)
	return task, nil
}

// ToggleCompletion flips the completed flag of an owned task.
func (s *TaskService) ToggleCompletion(ctx context.Context, taskID, actorID uint64) (*models.Task, error) {
	task, err := s.taskRepo.ToggleCompleted(taskID, actorID)
	if err != nil {
		return nil, taskStoreError(err, "update", taskID)
	}

	s.invalidateDashboard(ctx, actorID)
	return task, nil
}

// DeleteTask deletes an owned task and its comments.
func (s *TaskService) DeleteTask(ctx context.Context, taskID, actorID uint64) error {
	if err := s.taskRepo.DeleteOwned(taskID, actorID); err != nil {
		return taskStoreError(err, "delete", taskID)
	}

	s.invalidateDashboard(ctx, actorID)
	return nil
}

// AddComment attaches a comment to an owned task.
func (s *TaskService) AddComment(taskID, actorID uint64, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("content", "is required")
	}
	if len(content) > maxCommentLength {
		return nil, invalid("content", fmt.Sprintf("must be at most %d characters", maxCommentLength))
	}

	comment := &models.Comment{TaskID: taskID, Content: content}
	if err := s.taskRepo.AddComment(actorID, comment); err != nil {
		return nil, taskStoreError(err, "comment on", taskID)
	}

	return comment, nil
}

// ListComments returns a page of comments on an owned task.
func (s *TaskService) ListComments(taskID, actorID uint64, params utils.PaginationParams) ([]models.Comment, int64, error) {
	if _, err := s.AuthorizeTask(taskID, actorID); err != nil {
		return nil, 0, err
	}

	comments, total, err := s.taskRepo.ListComments(taskID, params)
	if err != nil {
		return nil, 0, &StorageError{Op: "list comments", Err: err}
	}

	return comments, total, nil
}

// Notifications returns the owner's overdue and upcoming tasks as of today.
// Tasks of other users never appear; they are dropped rather than reported.
func (s *TaskService) Notifications(ownerID uint64) (taskview.Classification, error) {
	tasks, err := s.taskRepo.ListByOwner(ownerID)
	if err != nil {
		return taskview.Classification{}, &StorageError{Op: "list tasks", Err: err}
	}

	return taskview.Classify(taskview.OwnedBy(ownerID, tasks), s.clock.Today())
}

// Dashboard returns the owner's statistics for today, served from the cache when possible.
func (s *TaskService) Dashboard(ctx context.Context, ownerID uint64) (taskview.Dashboard, error) {
	today := s.clock.Today()
	key := dashboardCacheKey(ownerID, today)

	if s.cache != nil {
		var cached taskview.Dashboard
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Printf("[task] Cache error for %s: %v", key, err)
		}
		if found {
			return cached, nil
		}
	}

	gen := s.generation(ownerID)
	started := gen.Load()

	// Callers arriving after a write must not join a computation that read older rows.
	sfKey := fmt.Sprintf("%s:%d", key, started)
	val, err, _ := s.sfGroup.Do(sfKey, func() (any, error) {
		tasks, err := s.taskRepo.ListByOwner(ownerID)
		if err != nil {
			return nil, &StorageError{Op: "list tasks", Err: err}
		}
		return taskview.Aggregate(tasks, today, s.categories)
	})
	if err != nil {
		return taskview.Dashboard{}, err
	}
	dash := val.(taskview.Dashboard)

	if s.cache != nil && gen.Load() == started {
		if err := s.cache.Set(ctx, key, dash); err != nil {
			log.Printf("[task] Warning: failed to cache %s: %v", key, err)
		}
	}

	return dash, nil
}

// GenerateTasksInput represents input for AI task generation
type GenerateTasksInput struct {
	Text    string
	OwnerID uint64
}

// GenerateTasks asks the drafter for task suggestions and keeps only those
// that could be created as-is. Past or unreadable due dates are cleared.
func (s *TaskService) GenerateTasks(ctx context.Context, input GenerateTasksInput) ([]GeneratedTask, error) {
	if s.drafter == nil {
		return nil, ErrAIServiceNotConfigured
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, invalid("text", "is required")
	}

	today := s.clock.Today()
	drafts, err := s.drafter.DraftTasks(ctx, DraftRequest{
		Text:       input.Text,
		Today:      today,
		Categories: s.categories.List(),
		Priorities: models.Priorities(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(drafts) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(drafts) > constants.MaxAIGeneratedTasks {
		return nil, ErrAITooManyTasks
	}

	valid := make([]GeneratedTask, 0, len(drafts))
	for _, draft := range drafts {
		draft.Name = strings.TrimSpace(draft.Name)
		if draft.Name == "" {
			continue
		}

		category, err := s.categories.Parse(draft.Category)
		if err != nil {
			continue
		}
		priority, err := models.ParsePriority(draft.Priority)
		if err != nil {
			continue
		}
		draft.Category = string(category)
		draft.Priority = string(priority)

		if draft.DueDate != nil {
			due, err := taskview.ParseDate(strings.TrimSpace(*draft.DueDate))
			if err != nil || due.Before(today) {
				draft.DueDate = nil
			}
		}

		valid = append(valid, draft)
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidTasks
	}

	return valid, nil
}

// InvalidateDashboards drops every cached dashboard of the owner.
func (s *TaskService) InvalidateDashboards(ctx context.Context, ownerID uint64) {
	s.invalidateDashboard(ctx, ownerID)
}

func (s *TaskService) invalidateDashboard(ctx context.Context, ownerID uint64) {
	s.generation(ownerID).Add(1)
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, fmt.Sprintf("dashboard:%d:*", ownerID)); err != nil {
		log.Printf("[task] Warning: failed to invalidate dashboard cache for user %d: %v", ownerID, err)
	}
}

func (s *TaskService) generation(ownerID uint64) *atomic.Uint64 {
	if gen, ok := s.generations.Load(ownerID); ok {
		return gen.(*atomic.Uint64)
	}
	gen, _ := s.generations.LoadOrStore(ownerID, new(atomic.Uint64))
	return gen.(*atomic.Uint64)
}

func dashboardCacheKey(ownerID uint64, today time.Time) string {
	return fmt.Sprintf("dashboard:%d:%s", ownerID, today.Format(constants.DateLayout))
}

// normalizeDueDate treats a blank date as absent and rejects anything that is not YYYY-MM-DD.
func normalizeDueDate(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil, nil
	}
	if _, err := taskview.ParseDate(value); err != nil {
		return nil, invalid("due_date", "must be a date in YYYY-MM-DD format")
	}
	return &value, nil
}

// isRecordNotFound reports whether err means the row does not exist.
func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
