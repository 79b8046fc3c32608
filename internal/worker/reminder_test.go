package worker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/BuzzLyutic/todo-manager/internal/model"
	"github.com/BuzzLyutic/todo-manager/internal/repo"
)

func TestReminder_Scan(t *testing.T) {
	store := repo.NewTaskStore(filepath.Join(t.TempDir(), "tasks.json"), zap.NewNop())
	require.NoError(t, store.Save([]model.Task{
		{ID: 1, Title: "Late", DueDate: "2020-01-01"},
		{ID: 2, Title: "Far out", DueDate: "2999-01-01"},
		{ID: 3, Title: "Done", DueDate: "2020-01-01", Completed: true},
	}))

	core, logs := observer.New(zap.InfoLevel)
	reminder := NewReminder(store, zap.New(core), time.Minute)

	reminder.scan(time.Now())

	entries := logs.FilterMessage("Due date reminder").All()
	require.Len(t, entries, 1, "only the overdue incomplete task should produce a reminder")
	assert.Contains(t, entries[0].ContextMap()["reminder"], "Late")
}

func TestReminder_GracefulStop(t *testing.T) {
	store := repo.NewTaskStore(filepath.Join(t.TempDir(), "tasks.json"), zap.NewNop())
	reminder := NewReminder(store, zap.NewNop(), 10*time.Millisecond)

	reminder.Start(context.Background())
	time.Sleep(30 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		reminder.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("reminder worker did not stop within 5 seconds")
	}
}
