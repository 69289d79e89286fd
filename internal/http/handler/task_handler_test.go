package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yuezh000/WisPaper-SEO-sub001/internal/domain"
	"github.com/yuezh000/WisPaper-SEO-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTaskStore struct {
	tasks map[uuid.UUID]*domain.Task
	logs  map[uuid.UUID][]domain.TaskLog

	err error

	lastFilter domain.TaskFilter
	storeCalls int
}

func newStubTaskStore() *stubTaskStore {
	return &stubTaskStore{
		tasks: make(map[uuid.UUID]*domain.Task),
		logs:  make(map[uuid.UUID][]domain.TaskLog),
	}
}

func (s *stubTaskStore) List(_ context.Context, f domain.TaskFilter, _ domain.TaskSort, _, _ int) ([]domain.Task, int64, error) {
	s.storeCalls++
	if s.err != nil {
		return nil, 0, s.err
	}
	s.lastFilter = f
	out := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if f.Type != nil && t.Type != *f.Type {
			continue
		}
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (s *stubTaskStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Task, error) {
	s.storeCalls++
	if s.err != nil {
		return nil, s.err
	}
	t, ok := s.tasks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *t
	return &cp, nil
}

func (s *stubTaskStore) Insert(_ context.Context, t *domain.Task) error {
	s.storeCalls++
	if s.err != nil {
		return s.err
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	cp := *t
	s.tasks[t.ID] = &cp
	return nil
}

func (s *stubTaskStore) Update(_ context.Context, id uuid.UUID, p domain.TaskPatch) (*domain.Task, error) {
	s.storeCalls++
	if s.err != nil {
		return nil, s.err
	}
	t, ok := s.tasks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	cp := *t
	return &cp, nil
}

func (s *stubTaskStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s.storeCalls++
	if s.err != nil {
		return false, s.err
	}
	if _, ok := s.tasks[id]; !ok {
		return false, nil
	}
	delete(s.tasks, id)
	return true, nil
}

func (s *stubTaskStore) ListLogs(_ context.Context, taskID uuid.UUID) ([]domain.TaskLog, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.logs[taskID], nil
}

func (s *stubTaskStore) seedTask(t *testing.T, taskType domain.TaskType) *domain.Task {
	t.Helper()
	task := &domain.Task{
		ID:         uuid.New(),
		Type:       taskType,
		Status:     domain.TaskStatusPending,
		Priority:   5,
		Payload:    json.RawMessage(`{"url":"https://example.org"}`),
		MaxRetries: 3,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	s.tasks[task.ID] = task
	return task
}

type testEnvelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Error      string          `json:"error"`
	Pagination *Pagination     `json:"pagination"`
}

func setupTaskRouter(store service.TaskStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTaskHandler(service.NewTaskService(store, nil, "seo_tasks"))
	r := gin.New()
	api := r.Group("/api/v1")
	api.GET("/tasks", h.ListTasks)
	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks/:id", h.GetTask)
	api.PUT("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, testEnvelope) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env testEnvelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestListTasksPaginationBlock(t *testing.T) {
	store := newStubTaskStore()
	store.seedTask(t, domain.TaskTypeCrawl)
	store.seedTask(t, domain.TaskTypeParsePDF)
	r := setupTaskRouter(store)

	w, env := doRequest(r, http.MethodGet, "/api/v1/tasks?page=1&limit=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.Page)
	assert.Equal(t, 10, env.Pagination.Limit)
	assert.Equal(t, int64(2), env.Pagination.Total)
	assert.Equal(t, 1, env.Pagination.TotalPages)
}

func TestListTasksEmptyIsSuccess(t *testing.T) {
	r := setupTaskRouter(newStubTaskStore())

	w, env := doRequest(r, http.MethodGet, "/api/v1/tasks", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, int64(0), env.Pagination.Total)
	assert.Equal(t, 0, env.Pagination.TotalPages)
}

func TestListTasksTypeFilterReachesStore(t *testing.T) {
	store := newStubTaskStore()
	crawl := store.seedTask(t, domain.TaskTypeCrawl)
	store.seedTask(t, domain.TaskTypeIndexPage)
	r := setupTaskRouter(store)

	w, env := doRequest(r, http.MethodGet, "/api/v1/tasks?type=CRAWL", "")
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, store.lastFilter.Type)
	assert.Equal(t, domain.TaskTypeCrawl, *store.lastFilter.Type)

	var tasks []domain.Task
	require.NoError(t, json.Unmarshal(env.Data, &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, crawl.ID, tasks[0].ID)
}

func TestCreateTaskReturns201(t *testing.T) {
	r := setupTaskRouter(newStubTaskStore())

	w, env := doRequest(r, http.MethodPost, "/api/v1/tasks",
		`{"type":"CRAWL","payload":{"url":"https://example.org"},"priority":7}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)

	var task domain.Task
	require.NoError(t, json.Unmarshal(env.Data, &task))
	assert.Equal(t, domain.TaskStatusPending, task.Status)
	assert.Equal(t, 0, task.RetryCount)
	assert.Equal(t, 7, task.Priority)
}

func TestCreateTaskMissingFieldsNamesBoth(t *testing.T) {
	r := setupTaskRouter(newStubTaskStore())

	w, env := doRequest(r, http.MethodPost, "/api/v1/tasks", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "type")
	assert.Contains(t, env.Error, "payload")
}

func TestCreateTaskValidationStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"bad type", `{"type":"OCR","payload":{}}`, "type"},
		{"priority out of range", `{"type":"CRAWL","payload":{},"priority":11}`, "priority"},
		{"scalar payload", `{"type":"CRAWL","payload":"not an object"}`, "payload"},
		{"numeric payload", `{"type":"CRAWL","payload":42}`, "payload"},
		{"null payload", `{"type":"CRAWL","payload":null}`, "payload"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupTaskRouter(newStubTaskStore())
			w, env := doRequest(r, http.MethodPost, "/api/v1/tasks", tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, env.Success)
			assert.Contains(t, env.Error, tc.want)
		})
	}
}

func TestGetTaskMalformedIDSkipsStore(t *testing.T) {
	store := newStubTaskStore()
	r := setupTaskRouter(store)

	w, env := doRequest(r, http.MethodGet, "/api/v1/tasks/not-a-uuid", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, 0, store.storeCalls)
}

func TestGetTaskNotFound(t *testing.T) {
	r := setupTaskRouter(newStubTaskStore())

	w, env := doRequest(r, http.MethodGet, "/api/v1/tasks/"+uuid.NewString(), "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}

func TestGetTaskIncludesLogs(t *testing.T) {
	store := newStubTaskStore()
	task := store.seedTask(t, domain.TaskTypeCrawl)
	store.logs[task.ID] = []domain.TaskLog{
		{ID: uuid.New(), TaskID: task.ID, Level: "error", Message: "fetch failed"},
	}
	r := setupTaskRouter(store)

	w, env := doRequest(r, http.MethodGet, "/api/v1/tasks/"+task.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Task domain.Task      `json:"task"`
		Logs []domain.TaskLog `json:"logs"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, task.ID, data.Task.ID)
	require.Len(t, data.Logs, 1)
	assert.Equal(t, "fetch failed", data.Logs[0].Message)
}

func TestUpdateTaskPartial(t *testing.T) {
	store := newStubTaskStore()
	task := store.seedTask(t, domain.TaskTypeCrawl)
	r := setupTaskRouter(store)

	w, env := doRequest(r, http.MethodPut, "/api/v1/tasks/"+task.ID.String(),
		`{"status":"RUNNING"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var updated domain.Task
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, domain.TaskStatusRunning, updated.Status)
	// 未提交的字段不变
	assert.Equal(t, 5, updated.Priority)
	assert.Equal(t, domain.TaskTypeCrawl, updated.Type)
}

func TestUpdateTaskMalformedAndMissing(t *testing.T) {
	store := newStubTaskStore()
	r := setupTaskRouter(store)

	w, _ := doRequest(r, http.MethodPut, "/api/v1/tasks/xyz", `{"status":"RUNNING"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, store.storeCalls)

	w, _ = doRequest(r, http.MethodPut, "/api/v1/tasks/"+uuid.NewString(), `{"status":"RUNNING"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTask(t *testing.T) {
	store := newStubTaskStore()
	task := store.seedTask(t, domain.TaskTypeCrawl)
	r := setupTaskRouter(store)

	w, env := doRequest(r, http.MethodDelete, "/api/v1/tasks/"+task.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Message)

	w, _ = doRequest(r, http.MethodDelete, "/api/v1/tasks/"+task.ID.String(), "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doRequest(r, http.MethodDelete, "/api/v1/tasks/123", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStoreFailureSurfacesAs500(t *testing.T) {
	store := newStubTaskStore()
	store.err = errors.New("dial tcp: connection refused")
	r := setupTaskRouter(store)

	w, env := doRequest(r, http.MethodGet, "/api/v1/tasks", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "connection refused")
}
