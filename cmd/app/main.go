package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-manager/internal/config"
	"github.com/BuzzLyutic/todo-manager/internal/handler"
	"github.com/BuzzLyutic/todo-manager/internal/repo"
	"github.com/BuzzLyutic/todo-manager/internal/service"
	"github.com/BuzzLyutic/todo-manager/internal/web"
	"github.com/BuzzLyutic/todo-manager/internal/worker"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.Load()

	taskStore := repo.NewTaskStore(cfg.TasksFile, logger)
	categoryStore := repo.NewCategoryStore(cfg.CategoriesFile, logger)

	taskService := service.NewTaskService(taskStore, logger)
	categoryService := service.NewCategoryService(categoryStore)

	taskHandler := handler.NewTaskHandler(taskService, logger)
	categoryHandler := handler.NewCategoryHandler(categoryService, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

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

	r.Handle("/*", web.Handler())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reminder := worker.NewReminder(taskStore, logger, cfg.ReminderInterval)
	reminder.Start(ctx)

	srv := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	reminder.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Shutdown error", zap.Error(err))
	}
	logger.Info("Server stopped")
}
