package repo

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// DefaultCategories seed a fresh category store.
var DefaultCategories = []string{"Work", "Personal", "School", "Other"}

// CategoryStore persists category labels as a JSON array of strings,
// with the same tolerant-read/strict-write contract as TaskStore.
type CategoryStore struct {
	path   string
	logger *zap.Logger
}

func NewCategoryStore(path string, logger *zap.Logger) *CategoryStore {
	return &CategoryStore{
		path:   path,
		logger: logger,
	}
}

// Load returns the persisted labels, or the default set when the file
// is missing or corrupt.
func (s *CategoryStore) Load() []string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read category file", zap.String("path", s.path), zap.Error(err))
		}
		return defaults()
	}

	var categories []string
	if err := json.Unmarshal(data, &categories); err != nil {
		s.logger.Warn("category file is not valid JSON, using defaults",
			zap.String("path", s.path), zap.Error(err))
		return defaults()
	}
	if categories == nil {
		categories = []string{}
	}
	return categories
}

func (s *CategoryStore) Save(categories []string) error {
	if categories == nil {
		categories = []string{}
	}

	data, err := json.MarshalIndent(categories, "", "  ")
	if err != nil {
		s.logger.Error("failed to encode categories", zap.Error(err))
		return fmt.Errorf("encode categories: %w", err)
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		s.logger.Error("failed to write category file", zap.String("path", s.path), zap.Error(err))
		return fmt.Errorf("write category file: %w", err)
	}
	return nil
}

// AddCategory appends name to categories unless it is empty or already
// present (case-sensitive exact match). The no-op case is not an
// error; the caller gets the possibly-unchanged slice back.
func AddCategory(categories []string, name string) []string {
	if name == "" {
		return categories
	}
	for _, c := range categories {
		if c == name {
			return categories
		}
	}
	return append(categories, name)
}

func defaults() []string {
	out := make([]string, len(DefaultCategories))
	copy(out, DefaultCategories)
	return out
}
