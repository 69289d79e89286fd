package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskTypeValid(t *testing.T) {
	for _, v := range []TaskType{TaskTypeCrawl, TaskTypeParsePDF, TaskTypeGenerateAbstract, TaskTypeIndexPage} {
		assert.True(t, v.Valid(), "%s", v)
	}
	assert.False(t, TaskType("").Valid())
	assert.False(t, TaskType("crawl").Valid()) // 枚举值区分大小写
	assert.False(t, TaskType("SUMMARIZE").Valid())
}

func TestTaskStatusValid(t *testing.T) {
	for _, v := range []TaskStatus{TaskStatusPending, TaskStatusRunning, TaskStatusCompleted, TaskStatusFailed, TaskStatusCancelled} {
		assert.True(t, v.Valid(), "%s", v)
	}
	assert.False(t, TaskStatus("").Valid())
	assert.False(t, TaskStatus("DONE").Valid())
}
