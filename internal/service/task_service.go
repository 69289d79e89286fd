package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yuezh000/WisPaper-SEO-sub001/internal/domain"
	"github.com/yuezh000/WisPaper-SEO-sub001/internal/queue"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
)

// TaskStore 是任务记录的持久化接口，由 repo.TaskRepo 实现
type TaskStore interface {
	List(ctx context.Context, f domain.TaskFilter, sort domain.TaskSort, page, limit int) ([]domain.Task, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	Insert(ctx context.Context, t *domain.Task) error
	Update(ctx context.Context, id uuid.UUID, p domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	ListLogs(ctx context.Context, taskID uuid.UUID) ([]domain.TaskLog, error)
}

type TaskService struct {
	store     TaskStore
	rdb       *redis.Client // 可为 nil，此时不做就绪队列通知
	queueName string
}

func NewTaskService(store TaskStore, rdb *redis.Client, queueName string) *TaskService {
	return &TaskService{store: store, rdb: rdb, queueName: queueName}
}

const (
	defaultPriority   = 5
	defaultMaxRetries = 3
	defaultPageLimit  = 10
)

type ListTasksParams struct {
	Page     int
	Limit    int
	Type     string
	Status   string
	Priority *int
	SortBy   string
	Order    string // asc / desc
}

func (s *TaskService) ListTasks(ctx context.Context, p ListTasksParams) ([]domain.Task, int64, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultPageLimit
	}

	var f domain.TaskFilter
	if p.Type != "" {
		t := domain.TaskType(p.Type)
		f.Type = &t
	}
	if p.Status != "" {
		st := domain.TaskStatus(p.Status)
		f.Status = &st
	}
	f.Priority = p.Priority

	sort := domain.TaskSort{Field: p.SortBy, Desc: p.Order != "asc"}
	return s.store.List(ctx, f, sort, p.Page, p.Limit)
}

type CreateTaskParams struct {
	Type        string
	Payload     json.RawMessage
	Priority    *int
	MaxRetries  *int
	ScheduledAt *time.Time
}

// CreateTask 校验并持久化一条新任务记录
// status 强制为 PENDING，retry_count 强制为 0，调用方传入的值会被忽略
func (s *TaskService) CreateTask(ctx context.Context, p CreateTaskParams) (*domain.Task, error) {
	// 缺失的必填字段先合并成一个错误一起上报
	var missing []string
	if p.Type == "" {
		missing = append(missing, "type")
	}
	if len(p.Payload) == 0 {
		missing = append(missing, "payload")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{
			Fields:  missing,
			Message: "missing required fields: " + strings.Join(missing, ", "),
		}
	}

	taskType := domain.TaskType(p.Type)
	if !taskType.Valid() {
		return nil, invalidField("type", "type must be one of CRAWL, PARSE_PDF, GENERATE_ABSTRACT, INDEX_PAGE")
	}
	if err := validatePayload(p.Payload); err != nil {
		return nil, err
	}

	priority := defaultPriority
	if p.Priority != nil {
		if *p.Priority < 1 || *p.Priority > 10 {
			return nil, invalidField("priority", "priority must be between 1 and 10")
		}
		priority = *p.Priority
	}
	maxRetries := defaultMaxRetries
	if p.MaxRetries != nil {
		if *p.MaxRetries < 0 {
			return nil, invalidField("max_retries", "max_retries must be >= 0")
		}
		maxRetries = *p.MaxRetries
	}

	t := &domain.Task{
		ID:          uuid.New(),
		Type:        taskType,
		Status:      domain.TaskStatusPending,
		Priority:    priority,
		Payload:     p.Payload,
		RetryCount:  0,
		MaxRetries:  maxRetries,
		ScheduledAt: p.ScheduledAt,
	}
	if err := s.store.Insert(ctx, t); err != nil {
		return nil, err
	}

	s.notifyReady(ctx, t)
	return t, nil
}

// notifyReady 入队一条通知给外部 worker 流水线
// 记录已落库，通知失败只记日志不影响请求结果（worker 也会轮询 PENDING）
func (s *TaskService) notifyReady(ctx context.Context, t *domain.Task) {
	if s.rdb == nil {
		return
	}
	msg, _ := json.Marshal(struct {
		TaskID   uuid.UUID       `json:"task_id"`
		Type     domain.TaskType `json:"type"`
		Priority int             `json:"priority"`
	}{TaskID: t.ID, Type: t.Type, Priority: t.Priority})
	if err := queue.EnqueueReady(ctx, s.rdb, s.queueName, string(msg)); err != nil {
		log.Printf("task %s: ready queue notify failed: %v", t.ID, err)
	}
}

// GetTaskWithLogs 查询任务及其日志（日志按时间倒序）
func (s *TaskService) GetTaskWithLogs(ctx context.Context, id uuid.UUID) (*domain.Task, []domain.TaskLog, error) {
	t, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	logs, err := s.store.ListLogs(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return t, logs, nil
}

type UpdateTaskParams struct {
	Type         *string
	Status       *string
	Priority     *int
	Payload      json.RawMessage
	Result       json.RawMessage
	ErrorMessage *string
	StartedAt    *time.Time
	CompletedAt  *time.Time
}

// UpdateTask 合并式部分更新：只有请求中出现的字段会被写入
// 不做状态迁移合法性检查，任意状态间的跳转由外部 worker 负责约束
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, p UpdateTaskParams) (*domain.Task, error) {
	// 先做存在性检查再写
	if _, err := s.store.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var patch domain.TaskPatch
	if p.Type != nil {
		t := domain.TaskType(*p.Type)
		if !t.Valid() {
			return nil, invalidField("type", "type must be one of CRAWL, PARSE_PDF, GENERATE_ABSTRACT, INDEX_PAGE")
		}
		patch.Type = &t
	}
	if p.Status != nil {
		st := domain.TaskStatus(*p.Status)
		if !st.Valid() {
			return nil, invalidField("status", "status must be one of PENDING, RUNNING, COMPLETED, FAILED, CANCELLED")
		}
		patch.Status = &st
	}
	if p.Priority != nil {
		if *p.Priority < 1 || *p.Priority > 10 {
			return nil, invalidField("priority", "priority must be between 1 and 10")
		}
		patch.Priority = p.Priority
	}
	if p.Payload != nil {
		if err := validatePayload(p.Payload); err != nil {
			return nil, err
		}
		patch.Payload = p.Payload
	}
	patch.Result = p.Result
	patch.ErrorMessage = p.ErrorMessage
	patch.StartedAt = p.StartedAt
	patch.CompletedAt = p.CompletedAt

	t, err := s.store.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// validatePayload 要求 payload 是非 null 的 JSON 对象，标量和数组都拒绝
func validatePayload(raw json.RawMessage) error {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return invalidField("payload", fmt.Sprintf("payload must be a JSON object, got %s", previewJSON(raw)))
	}
	if obj == nil {
		return invalidField("payload", "payload must be a JSON object, got null")
	}
	return nil
}

func previewJSON(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return s
}
