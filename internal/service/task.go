package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-manager/internal/model"
	"github.com/BuzzLyutic/todo-manager/internal/query"
	"github.com/BuzzLyutic/todo-manager/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
)

// Stats summarizes the collection for the dashboard endpoint.
type Stats struct {
	TotalTasks int            `json:"total_tasks"`
	ByPriority map[string]int `json:"by_priority"`
	Completed  int            `json:"completed"`
	Open       int            `json:"open"`
	Overdue    int            `json:"overdue"`
}

// TaskService owns every load-modify-save sequence against the task
// store. The mutex is what makes that safe: the store itself is a
// single-writer wholesale file, so two concurrent HTTP requests could
// otherwise load the same snapshot, compute the same next ID and
// clobber each other on save.
type TaskService struct {
	repo   repo.TaskRepository
	logger *zap.Logger

	mu        sync.Mutex
	idempKeys map[string]int64
	now       func() time.Time
}

func NewTaskService(r repo.TaskRepository, logger *zap.Logger) *TaskService {
	return &TaskService{
		repo:      r,
		logger:    logger,
		idempKeys: make(map[string]int64),
		now:       time.Now,
	}
}

func (s *TaskService) Create(ctx context.Context, t model.Task, idempKey string) (model.Task, error) {
	if err := validate(t); err != nil {
		return t, err
	}
	t = normalize(t)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Replaying a known idempotency key returns the task created the
	// first time instead of creating a duplicate.
	if idempKey != "" {
		if existingID, ok := s.idempKeys[idempKey]; ok {
			if existing, err := s.find(existingID); err == nil {
				return existing, nil
			}
		}
	}

	tasks := s.repo.Load()
	t.ID = s.repo.NextID(tasks)
	t.CreatedAt = s.now()
	t.UpdatedAt = t.CreatedAt

	tasks = append(tasks, t)
	if err := s.repo.Save(tasks); err != nil {
		return t, err
	}

	if idempKey != "" {
		s.idempKeys[idempKey] = t.ID
	}
	return t, nil
}

func (s *TaskService) Get(ctx context.Context, id int64) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(id)
}

func (s *TaskService) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return query.Apply(s.repo.Load(), filter), nil
}

func (s *TaskService) Update(ctx context.Context, t model.Task) (model.Task, error) {
	if err := validate(t); err != nil {
		return t, err
	}
	t = normalize(t)

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.repo.Load()
	for i := range tasks {
		if tasks[i].ID != t.ID {
			continue
		}
		// Edits change content, not identity or completion state.
		t.CreatedAt = tasks[i].CreatedAt
		t.Completed = tasks[i].Completed
		t.UpdatedAt = s.now()
		tasks[i] = t
		if err := s.repo.Save(tasks); err != nil {
			return t, err
		}
		return t, nil
	}
	return t, repo.ErrorNotFound
}

func (s *TaskService) Toggle(ctx context.Context, id int64) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.repo.Load()
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		tasks[i].Completed = !tasks[i].Completed
		tasks[i].UpdatedAt = s.now()
		if err := s.repo.Save(tasks); err != nil {
			return tasks[i], err
		}
		return tasks[i], nil
	}
	return model.Task{}, repo.ErrorNotFound
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.repo.Load()
	kept := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		return repo.ErrorNotFound
	}
	return s.repo.Save(kept)
}

func (s *TaskService) Search(ctx context.Context, q string) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return query.Search(s.repo.Load(), q), nil
}

func (s *TaskService) Overdue(ctx context.Context) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return query.Overdue(s.repo.Load(), query.Today(s.now()), s.logger), nil
}

// Notifications returns the due-date partition plus rendered reminder
// messages for the current day.
func (s *TaskService) Notifications(ctx context.Context) (query.Notifications, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.repo.Load()
	today := query.Today(s.now())
	return query.Partition(tasks, today, s.logger), query.Messages(tasks, today, s.logger), nil
}

func (s *TaskService) GetStats(ctx context.Context) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.repo.Load()
	stats := Stats{
		TotalTasks: len(tasks),
		ByPriority: map[string]int{},
	}
	for _, t := range tasks {
		stats.ByPriority[t.Priority]++
		if t.Completed {
			stats.Completed++
		} else {
			stats.Open++
		}
	}
	stats.Overdue = len(query.Overdue(tasks, query.Today(s.now()), s.logger))
	return stats, nil
}

// find assumes the caller holds the mutex.
func (s *TaskService) find(id int64) (model.Task, error) {
	for _, t := range s.repo.Load() {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Task{}, repo.ErrorNotFound
}

func validate(t model.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrValidation
	}
	if t.DueDate != "" {
		if _, err := time.Parse(model.DueDateLayout, t.DueDate); err != nil {
			return ErrValidation
		}
	}
	return nil
}

// normalize applies the creation defaults: unknown priority becomes
// Low, a missing category becomes the default bucket.
func normalize(t model.Task) model.Task {
	if !model.ValidPriority(t.Priority) {
		t.Priority = model.PriorityLow
	}
	if strings.TrimSpace(t.Category) == "" {
		t.Category = model.DefaultCategory
	}
	return t
}
