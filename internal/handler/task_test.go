package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-manager/internal/model"
	"github.com/BuzzLyutic/todo-manager/internal/repo"
	"github.com/BuzzLyutic/todo-manager/internal/service"
)

func setupHandler(t *testing.T) *TaskHandler {
	t.Helper()

	store := repo.NewTaskStore(filepath.Join(t.TempDir(), "tasks.json"), zap.NewNop())
	taskService := service.NewTaskService(store, zap.NewNop())
	return NewTaskHandler(taskService, zap.NewNop())
}

func createTask(t *testing.T, h *TaskHandler, task model.Task) model.Task {
	t.Helper()

	body, _ := json.Marshal(task)
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	h.Create(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.Task
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	return created
}

func withID(req *http.Request, id int64) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", fmt.Sprintf("%d", id))
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestTaskHandler_Create(t *testing.T) {
	handler := setupHandler(t)

	tests := []struct {
		name          string
		body          interface{}
		idempKey      string
		wantCode      int
		checkResponse func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:     "successful creation",
			body:     model.Task{Title: "Test Task", Priority: model.PriorityHigh},
			wantCode: http.StatusCreated,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var task model.Task
				json.NewDecoder(w.Body).Decode(&task)
				assert.NotZero(t, task.ID)
				assert.Equal(t, "Test Task", task.Title)
				assert.Contains(t, w.Header().Get("Location"), "/api/tasks/")
			},
		},
		{
			name:     "empty body",
			body:     nil,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "validation error",
			body:     model.Task{Title: "", Priority: model.PriorityHigh},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed due date",
			body:     model.Task{Title: "Bad date", DueDate: "tomorrow"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "with idempotency key",
			body:     model.Task{Title: "Idempotent Task", Priority: model.PriorityMedium},
			idempKey: "test-key-123",
			wantCode: http.StatusCreated,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				body, _ := json.Marshal(model.Task{Title: "Idempotent Task", Priority: model.PriorityMedium})
				req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
				req.Header.Set("Idempotency-Key", "test-key-123")

				w2 := httptest.NewRecorder()
				handler.Create(w2, req)

				var task1, task2 model.Task
				json.NewDecoder(w.Body).Decode(&task1)
				json.NewDecoder(w2.Body).Decode(&task2)

				assert.Equal(t, task1.ID, task2.ID, "should return same task")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body []byte
			if tt.body != nil {
				body, _ = json.Marshal(tt.body)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			if tt.idempKey != "" {
				req.Header.Set("Idempotency-Key", tt.idempKey)
			}

			w := httptest.NewRecorder()
			handler.Create(w, req)

			assert.Equal(t, tt.wantCode, w.Code)

			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

func TestTaskHandler_Get(t *testing.T) {
	handler := setupHandler(t)
	created := createTask(t, handler, model.Task{Title: "Get Test", Priority: model.PriorityLow})

	t.Run("get existing task", func(t *testing.T) {
		req := withID(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/tasks/%d", created.ID), nil), created.ID)

		w := httptest.NewRecorder()
		handler.Get(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var task model.Task
		json.NewDecoder(w.Body).Decode(&task)
		assert.Equal(t, created.ID, task.ID)
	})

	t.Run("get non-existing task", func(t *testing.T) {
		req := withID(httptest.NewRequest(http.MethodGet, "/api/tasks/99999", nil), 99999)

		w := httptest.NewRecorder()
		handler.Get(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskHandler_List(t *testing.T) {
	handler := setupHandler(t)

	yesterday := time.Now().AddDate(0, 0, -1).Format(model.DueDateLayout)
	createTask(t, handler, model.Task{Title: "Buy Milk", Priority: model.PriorityHigh, Category: "Personal", DueDate: yesterday})
	createTask(t, handler, model.Task{Title: "Write report", Priority: model.PriorityMedium, Category: "Work"})
	createTask(t, handler, model.Task{Title: "Call dentist", Priority: model.PriorityLow, Category: "Personal"})

	list := func(t *testing.T, target string) []model.Task {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		handler.List(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var tasks []model.Task
		require.NoError(t, json.NewDecoder(w.Body).Decode(&tasks))
		return tasks
	}

	t.Run("list all tasks", func(t *testing.T) {
		assert.Len(t, list(t, "/api/tasks"), 3)
	})

	t.Run("filter by priority", func(t *testing.T) {
		tasks := list(t, "/api/tasks?priority=High")
		require.Len(t, tasks, 1)
		assert.Equal(t, "Buy Milk", tasks[0].Title)
	})

	t.Run("filter by category", func(t *testing.T) {
		assert.Len(t, list(t, "/api/tasks?category=Personal"), 2)
	})

	t.Run("unknown priority matches nothing", func(t *testing.T) {
		assert.Empty(t, list(t, "/api/tasks?priority=Urgent"))
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		tasks := list(t, "/api/tasks?q=MILK")
		require.Len(t, tasks, 1)
		assert.Equal(t, "Buy Milk", tasks[0].Title)
	})

	t.Run("invalid completed flag", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/tasks?completed=maybe", nil)
		w := httptest.NewRecorder()
		handler.List(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandler_Update(t *testing.T) {
	handler := setupHandler(t)
	created := createTask(t, handler, model.Task{Title: "Original", Priority: model.PriorityMedium})

	t.Run("successful update", func(t *testing.T) {
		body, _ := json.Marshal(model.Task{Title: "Updated", Priority: model.PriorityHigh, Category: "Work"})
		req := withID(httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/tasks/%d", created.ID), bytes.NewReader(body)), created.ID)
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		handler.Update(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var updated model.Task
		json.NewDecoder(w.Body).Decode(&updated)
		assert.Equal(t, "Updated", updated.Title)
		assert.Equal(t, model.PriorityHigh, updated.Priority)
	})

	t.Run("update non-existing task", func(t *testing.T) {
		body, _ := json.Marshal(model.Task{Title: "Ghost"})
		req := withID(httptest.NewRequest(http.MethodPut, "/api/tasks/99999", bytes.NewReader(body)), 99999)

		w := httptest.NewRecorder()
		handler.Update(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskHandler_Toggle(t *testing.T) {
	handler := setupHandler(t)
	created := createTask(t, handler, model.Task{Title: "Flip me", Priority: model.PriorityLow})

	req := withID(httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/tasks/%d/toggle", created.ID), nil), created.ID)
	w := httptest.NewRecorder()
	handler.Toggle(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var task model.Task
	json.NewDecoder(w.Body).Decode(&task)
	assert.True(t, task.Completed)
}

func TestTaskHandler_Delete(t *testing.T) {
	handler := setupHandler(t)
	created := createTask(t, handler, model.Task{Title: "To Delete", Priority: model.PriorityLow})

	t.Run("successful delete", func(t *testing.T) {
		req := withID(httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", created.ID), nil), created.ID)
		w := httptest.NewRecorder()
		handler.Delete(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("delete non-existing", func(t *testing.T) {
		req := withID(httptest.NewRequest(http.MethodDelete, "/api/tasks/99999", nil), 99999)
		w := httptest.NewRecorder()
		handler.Delete(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskHandler_Notifications(t *testing.T) {
	handler := setupHandler(t)

	yesterday := time.Now().AddDate(0, 0, -1).Format(model.DueDateLayout)
	today := time.Now().Format(model.DueDateLayout)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(model.DueDateLayout)

	createTask(t, handler, model.Task{Title: "Late", DueDate: yesterday})
	createTask(t, handler, model.Task{Title: "Now", DueDate: today})
	createTask(t, handler, model.Task{Title: "Soon", DueDate: tomorrow})

	req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	w := httptest.NewRecorder()
	handler.Notifications(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Overdue  []model.Task `json:"overdue"`
		Today    []model.Task `json:"today"`
		Upcoming []model.Task `json:"upcoming"`
		Messages []string     `json:"messages"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	assert.Len(t, resp.Overdue, 1)
	assert.Len(t, resp.Today, 1)
	assert.Len(t, resp.Upcoming, 1)
	assert.Len(t, resp.Messages, 3)
}

func TestTaskHandler_Overdue(t *testing.T) {
	handler := setupHandler(t)

	yesterday := time.Now().AddDate(0, 0, -1).Format(model.DueDateLayout)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(model.DueDateLayout)

	late := createTask(t, handler, model.Task{Title: "Late", DueDate: yesterday})
	createTask(t, handler, model.Task{Title: "Fine", DueDate: tomorrow})

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/overdue", nil)
	w := httptest.NewRecorder()
	handler.Overdue(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var tasks []model.Task
	require.NoError(t, json.NewDecoder(w.Body).Decode(&tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, late.ID, tasks[0].ID)
}

func TestTaskHandler_Stats(t *testing.T) {
	handler := setupHandler(t)

	createTask(t, handler, model.Task{Title: "A", Priority: model.PriorityHigh})
	createTask(t, handler, model.Task{Title: "B", Priority: model.PriorityHigh})
	createTask(t, handler, model.Task{Title: "C", Priority: model.PriorityLow})

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	handler.Stats(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stats service.Stats
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.Equal(t, 3, stats.TotalTasks)
	assert.Equal(t, 2, stats.ByPriority[model.PriorityHigh])
	assert.Equal(t, 3, stats.Open)
}
