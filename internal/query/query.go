// Package query holds pure, side-effect-free views over a task
// collection. Functions never mutate their input and always return
// fresh slices, so callers can chain them freely.
package query

import (
	"strings"
	"time"

	"github.com/BuzzLyutic/todo-manager/internal/model"
)

// ByPriority keeps tasks whose priority equals p exactly. An unknown
// priority value simply matches nothing.
func ByPriority(tasks []model.Task, p string) []model.Task {
	out := []model.Task{}
	for _, t := range tasks {
		if t.Priority == p {
			out = append(out, t)
		}
	}
	return out
}

// ByCategory keeps tasks whose category equals c exactly
// (case-sensitive).
func ByCategory(tasks []model.Task, c string) []model.Task {
	out := []model.Task{}
	for _, t := range tasks {
		if t.Category == c {
			out = append(out, t)
		}
	}
	return out
}

// ByCompletion keeps tasks whose completed flag matches done.
func ByCompletion(tasks []model.Task, done bool) []model.Task {
	out := []model.Task{}
	for _, t := range tasks {
		if t.Completed == done {
			out = append(out, t)
		}
	}
	return out
}

// Search performs a case-insensitive substring match against title or
// description. An empty or whitespace-only query returns an empty
// result rather than the whole collection; an empty search box must
// never expose everything by accident.
func Search(tasks []model.Task, q string) []model.Task {
	out := []model.Task{}
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return out
	}
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out
}

// Apply composes the list-view filters: completion, then category,
// then priority, then free-text search. Nil selectors and an empty
// query skip their stage, so an unfiltered call returns every task.
func Apply(tasks []model.Task, f model.TaskFilter) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)

	if f.Completed != nil {
		out = ByCompletion(out, *f.Completed)
	}
	if f.Category != nil && *f.Category != "" && *f.Category != "All" {
		out = ByCategory(out, *f.Category)
	}
	if f.Priority != nil && *f.Priority != "" && *f.Priority != "All" {
		out = ByPriority(out, *f.Priority)
	}
	if strings.TrimSpace(f.Query) != "" {
		out = Search(out, f.Query)
	}
	return out
}

// Today truncates now to its calendar day. Due dates parse as UTC
// midnights, so comparisons use the same convention.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
