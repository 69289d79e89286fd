package service

import (
	"errors"
)

// ErrNotFound 表示 id 格式合法但记录不存在
var ErrNotFound = errors.New("record not found")

// ValidationError 携带违反约束的字段名，供响应层拼装 400 消息
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidField(field, message string) *ValidationError {
	return &ValidationError{Fields: []string{field}, Message: message}
}
