package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-manager/internal/query"
	"github.com/BuzzLyutic/todo-manager/internal/repo"
)

// Reminder periodically scans the task store and logs due-date
// notifications. It only reads; mutations stay with the service layer.
type Reminder struct {
	repo     repo.TaskRepository
	logger   *zap.Logger
	interval time.Duration
	wg       sync.WaitGroup
	stop     chan struct{}
}

func NewReminder(r repo.TaskRepository, logger *zap.Logger, interval time.Duration) *Reminder {
	return &Reminder{
		repo:     r,
		logger:   logger,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (r *Reminder) Start(ctx context.Context) {
	r.logger.Info("Starting reminder worker", zap.Duration("interval", r.interval))

	r.wg.Add(1)
	go r.run(ctx)
}

func (r *Reminder) Stop() {
	r.logger.Info("Stopping reminder worker...")
	close(r.stop)
	r.wg.Wait()
	r.logger.Info("Reminder worker stopped")
}

func (r *Reminder) run(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.scan(time.Now())
		}
	}
}

func (r *Reminder) scan(now time.Time) {
	tasks := r.repo.Load()
	for _, msg := range query.Messages(tasks, query.Today(now), r.logger) {
		r.logger.Info("Due date reminder", zap.String("reminder", msg))
	}
}
