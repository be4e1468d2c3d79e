package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/yukikurage/tasknest-api/internal/models"
	"github.com/yukikurage/tasknest-api/internal/repository"
	"github.com/yukikurage/tasknest-api/internal/utils"
)

var fixedToday = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func strPtr(s string) *string {
	return &s
}

// memoryCache is a StatsCache backed by a map. Values round-trip through JSON.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	fail    error
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return false, c.fail
	}
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return c.fail
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	c.sets++
	return nil
}

func (c *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return c.fail
	}
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

func (c *memoryCache) keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.entries))
	for k := range c.entries {
		out = append(out, k)
	}
	return out
}

type stubDrafter struct {
	drafts []GeneratedTask
	err    error
	got    DraftRequest
}

func (d *stubDrafter) DraftTasks(_ context.Context, req DraftRequest) ([]GeneratedTask, error) {
	d.got = req
	return d.drafts, d.err
}

// failingTaskRepository fails every call with err.
type failingTaskRepository struct {
	err error
}

var _ repository.TaskRepository = failingTaskRepository{}

func (r failingTaskRepository) Create(*models.Task) error { return r.err }
func (r failingTaskRepository) FindByID(uint64) (*models.Task, error) { return nil, r.err }
func (r failingTaskRepository) FindWithComments(uint64) (*models.Task, error) { return nil, r.err }
func (r failingTaskRepository) ListByOwner(uint64) ([]models.Task, error) { return nil, r.err }
func (r failingTaskRepository) ToggleCompleted(uint64, uint64) (*models.Task, error) {
	return nil, r.err
}
func (r failingTaskRepository) DeleteOwned(uint64, uint64) error { return r.err }
func (r failingTaskRepository) AddComment(uint64, *models.Comment) error { return r.err }
func (r failingTaskRepository) ListComments(uint64, utils.PaginationParams) ([]models.Comment, int64, error) {
	return nil, 0, r.err
}

var errConnectionRefused = errors.New("dial tcp 127.0.0.1:3306: connection refused")

// gatedTaskRepository blocks the first ListByOwner call until release is closed.
type gatedTaskRepository struct {
	repository.TaskRepository
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGatedTaskRepository(inner repository.TaskRepository) *gatedTaskRepository {
	return &gatedTaskRepository{
		TaskRepository: inner,
		entered:        make(chan struct{}),
		release:        make(chan struct{}),
	}
}

func (r *gatedTaskRepository) ListByOwner(ownerID uint64) ([]models.Task, error) {
	tasks, err := r.TaskRepository.ListByOwner(ownerID)
	first := false
	r.once.Do(func() { first = true })
	if first {
		close(r.entered)
		<-r.release
	}
	return tasks, err
}
