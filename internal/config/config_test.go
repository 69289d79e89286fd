package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("TASK_QUEUE_NAME", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, "seo_tasks", cfg.TaskQueueName)
	assert.NotEmpty(t, cfg.PostgresDSN)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_URL", "host=db port=5432 user=u dbname=d")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("TASK_QUEUE_NAME", "crawl_tasks")

	cfg := Load()
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "host=db port=5432 user=u dbname=d", cfg.PostgresDSN)
	assert.Equal(t, "redis://cache:6379/1", cfg.RedisURL)
	assert.Equal(t, "crawl_tasks", cfg.TaskQueueName)
}
