package model

import "time"

// Priority levels. Stored as plain strings so the persisted file stays
// readable and hand-editable.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// DefaultCategory is assigned when a task is created without one.
const DefaultCategory = "Other"

// DueDateLayout is the calendar-date format used in the persisted file.
const DueDateLayout = "2006-01-02"

type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    string    `json:"priority"`
	Category    string    `json:"category"`
	DueDate     string    `json:"due_date,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ValidPriority reports whether p is one of the known levels.
func ValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Due parses the task's due date. ok is false when the date is absent
// or does not match DueDateLayout.
func (t Task) Due() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DueDateLayout, t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

type TaskFilter struct {
	Priority  *string
	Category  *string
	Completed *bool
	Query     string
}
