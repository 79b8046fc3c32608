package service

import (
	"context"
	"strings"
	"sync"

	"github.com/BuzzLyutic/todo-manager/internal/repo"
)

// CategoryService guards the category file the same way TaskService
// guards the task file.
type CategoryService struct {
	repo repo.CategoryRepository

	mu sync.Mutex
}

func NewCategoryService(r repo.CategoryRepository) *CategoryService {
	return &CategoryService{repo: r}
}

func (s *CategoryService) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Load(), nil
}

// Add appends a new label unless it already exists. Adding a duplicate
// is a no-op, not an error; the caller gets the current list either
// way. An empty name is rejected.
func (s *CategoryService) Add(ctx context.Context, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	categories := s.repo.Load()
	updated := repo.AddCategory(categories, name)
	if len(updated) == len(categories) {
		return categories, nil
	}
	if err := s.repo.Save(updated); err != nil {
		return nil, err
	}
	return updated, nil
}
