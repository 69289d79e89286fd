package config

import (
	"os"
)

type AppConfig struct {
	HTTPPort      string
	PostgresDSN   string
	RedisURL      string
	TaskQueueName string
}

func Load() AppConfig {
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=wispaper dbname=wispaper_seo sslmode=disable"
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	// 外部 worker 流水线监听的就绪队列名
	queueName := os.Getenv("TASK_QUEUE_NAME")
	if queueName == "" {
		queueName = "seo_tasks"
	}

	return AppConfig{
		HTTPPort:      port,
		PostgresDSN:   dsn,
		RedisURL:      redisURL,
		TaskQueueName: queueName,
	}
}
