package repo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-manager/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
)

// TaskStore persists the whole task collection as one pretty-printed
// JSON file. The file path is an explicit constructor argument, never
// a package-level default.
type TaskStore struct {
	path   string
	logger *zap.Logger
}

func NewTaskStore(path string, logger *zap.Logger) *TaskStore {
	return &TaskStore{
		path:   path,
		logger: logger,
	}
}

// Load reads the persisted collection. A missing file means an empty
// list, not an error. A file that exists but does not hold valid JSON
// also degrades to an empty list with a warning, so a later Save can
// overwrite the corrupt content with a well-formed file.
func (s *TaskStore) Load() []model.Task {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read task file", zap.String("path", s.path), zap.Error(err))
		}
		return []model.Task{}
	}

	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		s.logger.Warn("task file is not valid JSON, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return []model.Task{}
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks
}

// Save writes the whole collection with 2-space indentation. The write
// goes through a temp file in the same directory followed by a rename,
// so readers never observe a half-written file. Failures are logged
// and returned: dropping a save silently would lose user data.
func (s *TaskStore) Save(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		s.logger.Error("failed to encode tasks", zap.Error(err))
		return fmt.Errorf("encode tasks: %w", err)
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		s.logger.Error("failed to write task file", zap.String("path", s.path), zap.Error(err))
		return fmt.Errorf("write task file: %w", err)
	}
	return nil
}

// NextID returns one greater than the largest existing identifier, or
// 1 for an empty collection. Deterministic: no clock, no randomness.
func (s *TaskStore) NextID(tasks []model.Task) int64 {
	var max int64
	for _, t := range tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
