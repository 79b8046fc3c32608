package repo

import "github.com/BuzzLyutic/todo-manager/internal/model"

// TaskRepository is the persistence contract for the task collection.
// Load never fails: a missing or unreadable file degrades to an empty
// collection. Save is the only operation allowed to surface an error.
type TaskRepository interface {
	Load() []model.Task
	Save(tasks []model.Task) error
	NextID(tasks []model.Task) int64
}

// CategoryRepository is the persistence contract for category labels.
type CategoryRepository interface {
	Load() []string
	Save(categories []string) error
}
