package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TaskLog 由外部 worker 写入，本服务只读
type TaskLog struct {
	ID        uuid.UUID       `json:"id"`
	TaskID    uuid.UUID       `json:"task_id"`
	Level     string          `json:"level"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
