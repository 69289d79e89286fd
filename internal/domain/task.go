package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type TaskType string

const (
	TaskTypeCrawl            TaskType = "CRAWL"
	TaskTypeParsePDF         TaskType = "PARSE_PDF"
	TaskTypeGenerateAbstract TaskType = "GENERATE_ABSTRACT"
	TaskTypeIndexPage        TaskType = "INDEX_PAGE"
)

func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeCrawl, TaskTypeParsePDF, TaskTypeGenerateAbstract, TaskTypeIndexPage:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "PENDING"
	TaskStatusRunning   TaskStatus = "RUNNING"
	TaskStatusCompleted TaskStatus = "COMPLETED"
	TaskStatusFailed    TaskStatus = "FAILED"
	TaskStatusCancelled TaskStatus = "CANCELLED"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusRunning, TaskStatusCompleted, TaskStatusFailed, TaskStatusCancelled:
		return true
	}
	return false
}

type Task struct {
	ID           uuid.UUID       `json:"id"`           // 唯一标识符ID
	Type         TaskType        `json:"type"`         // 任务类型
	Status       TaskStatus      `json:"status"`       // 任务状态
	Priority     int             `json:"priority"`     // 优先级 1-10
	Payload      json.RawMessage `json:"payload"`      // 任务负载
	Result       json.RawMessage `json:"result,omitempty"`
	ErrorMessage *string         `json:"error_message,omitempty"`
	RetryCount   int             `json:"retry_count"`
	MaxRetries   int             `json:"max_retries"`
	ScheduledAt  *time.Time      `json:"scheduled_at,omitempty"`
	StartedAt    *time.Time      `json:"started_at,omitempty"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TaskFilter 列表查询过滤条件，nil 表示不过滤
type TaskFilter struct {
	Type     *TaskType
	Status   *TaskStatus
	Priority *int
}

type TaskSort struct {
	Field string
	Desc  bool
}

// TaskPatch 部分更新，只有非 nil 字段会被写入
type TaskPatch struct {
	Type         *TaskType
	Status       *TaskStatus
	Priority     *int
	Payload      json.RawMessage
	Result       json.RawMessage
	ErrorMessage *string
	StartedAt    *time.Time
	CompletedAt  *time.Time
}
