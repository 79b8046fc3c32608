package query

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-manager/internal/model"
)

// Notifications groups incomplete tasks by how their due date relates
// to a reference day. The groups are disjoint; a task lands in exactly
// one of them or in none.
type Notifications struct {
	Overdue  []model.Task `json:"overdue"`
	DueToday []model.Task `json:"today"`
	Upcoming []model.Task `json:"upcoming"`
}

// Overdue returns incomplete tasks whose due date falls strictly
// before today. Comparison happens on parsed dates, never on the raw
// strings: "2023-9-1" sorting after "2023-12-31" lexicographically is
// exactly the bug this avoids. Tasks with a missing or malformed due
// date are skipped with a warning.
func Overdue(tasks []model.Task, today time.Time, logger *zap.Logger) []model.Task {
	out := []model.Task{}
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		due, ok := t.Due()
		if !ok {
			warnBadDueDate(logger, t)
			continue
		}
		if due.Before(today) {
			out = append(out, t)
		}
	}
	return out
}

// Partition splits incomplete tasks into overdue / due today /
// upcoming relative to today. Tasks without a parseable due date are
// excluded from all three groups.
func Partition(tasks []model.Task, today time.Time, logger *zap.Logger) Notifications {
	n := Notifications{
		Overdue:  []model.Task{},
		DueToday: []model.Task{},
		Upcoming: []model.Task{},
	}
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		due, ok := t.Due()
		if !ok {
			warnBadDueDate(logger, t)
			continue
		}
		switch {
		case due.Before(today):
			n.Overdue = append(n.Overdue, t)
		case due.Equal(today):
			n.DueToday = append(n.DueToday, t)
		default:
			n.Upcoming = append(n.Upcoming, t)
		}
	}
	return n
}

// Messages renders human-readable reminders: every overdue task, every
// task due today, and upcoming tasks due within the next three days.
func Messages(tasks []model.Task, today time.Time, logger *zap.Logger) []string {
	msgs := []string{}
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		due, ok := t.Due()
		if !ok {
			warnBadDueDate(logger, t)
			continue
		}

		days := int(due.Sub(today).Hours() / 24)
		switch {
		case days < 0:
			msgs = append(msgs, fmt.Sprintf("Task %q is overdue by %d days!", t.Title, -days))
		case days == 0:
			msgs = append(msgs, fmt.Sprintf("Task %q is due today!", t.Title))
		case days <= 3:
			msgs = append(msgs, fmt.Sprintf("Task %q is due in %d days.", t.Title, days))
		}
	}
	return msgs
}

func warnBadDueDate(logger *zap.Logger, t model.Task) {
	if t.DueDate == "" {
		return
	}
	logger.Warn("skipping task with malformed due date",
		zap.Int64("id", t.ID),
		zap.String("due_date", t.DueDate),
	)
}
