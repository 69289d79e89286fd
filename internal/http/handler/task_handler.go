package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/yuezh000/WisPaper-SEO-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// GET /api/v1/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	page, limit := parsePageLimit(c)

	p := service.ListTasksParams{
		Page:   page,
		Limit:  limit,
		Type:   c.Query("type"),
		Status: c.Query("status"),
		SortBy: c.Query("sort_by"),
		Order:  c.Query("order"),
	}
	if v := c.Query("priority"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(c, http.StatusBadRequest, "priority filter must be an integer")
			return
		}
		p.Priority = &n
	}

	tasks, total, err := h.svc.ListTasks(c.Request.Context(), p)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, tasks, newPagination(page, limit, total))
}

type createTaskRequest struct {
	Type        string          `json:"type"`
	Payload     json.RawMessage `json:"payload"`
	Priority    *int            `json:"priority"`
	MaxRetries  *int            `json:"max_retries"`
	ScheduledAt *time.Time      `json:"scheduled_at"`
}

// POST /api/v1/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	t, err := h.svc.CreateTask(c.Request.Context(), service.CreateTaskParams{
		Type:        req.Type,
		Payload:     req.Payload,
		Priority:    req.Priority,
		MaxRetries:  req.MaxRetries,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, t)
}

// GET /api/v1/tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, logs, err := h.svc.GetTaskWithLogs(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"task": t, "logs": logs})
}

type updateTaskRequest struct {
	Type         *string         `json:"type"`
	Status       *string         `json:"status"`
	Priority     *int            `json:"priority"`
	Payload      json.RawMessage `json:"payload"`
	Result       json.RawMessage `json:"result"`
	ErrorMessage *string         `json:"error_message"`
	StartedAt    *time.Time      `json:"started_at"`
	CompletedAt  *time.Time      `json:"completed_at"`
}

// PUT /api/v1/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	t, err := h.svc.UpdateTask(c.Request.Context(), id, service.UpdateTaskParams{
		Type:         req.Type,
		Status:       req.Status,
		Priority:     req.Priority,
		Payload:      req.Payload,
		Result:       req.Result,
		ErrorMessage: req.ErrorMessage,
		StartedAt:    req.StartedAt,
		CompletedAt:  req.CompletedAt,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, t)
}

// DELETE /api/v1/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteTask(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "task deleted")
}
