package tests

import (
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-manager/internal/handler"
	"github.com/BuzzLyutic/todo-manager/internal/repo"
	"github.com/BuzzLyutic/todo-manager/internal/service"
)

// Env bundles the wired application pieces for a test, backed by JSON
// files in a per-test temp directory.
type Env struct {
	TaskStore     *repo.TaskStore
	CategoryStore *repo.CategoryStore
	TaskService   *service.TaskService
	Router        chi.Router
}

// SetupEnv wires stores, services, handlers and the API router the
// same way cmd/app does, against isolated temp-dir storage.
func SetupEnv(t *testing.T) *Env {
	t.Helper()

	dir := t.TempDir()
	logger := zap.NewNop()

	taskStore := repo.NewTaskStore(filepath.Join(dir, "tasks.json"), logger)
	categoryStore := repo.NewCategoryStore(filepath.Join(dir, "categories.json"), logger)

	taskService := service.NewTaskService(taskStore, logger)
	categoryService := service.NewCategoryService(categoryStore)

	taskHandler := handler.NewTaskHandler(taskService, logger)
	categoryHandler := handler.NewCategoryHandler(categoryService, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)
			r.Get("/overdue", taskHandler.Overdue)
			r.Get("/{id}", taskHandler.Get)
			r.Put("/{id}", taskHandler.Update)
			r.Delete("/{id}", taskHandler.Delete)
			r.Post("/{id}/toggle", taskHandler.Toggle)
		})
		r.Get("/notifications", taskHandler.Notifications)
		r.Get("/stats", taskHandler.Stats)
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.List)
			r.Post("/", categoryHandler.Add)
		})
	})

	return &Env{
		TaskStore:     taskStore,
		CategoryStore: categoryStore,
		TaskService:   taskService,
		Router:        r,
	}
}
