// Package queue 提供基于 Redis List 的就绪队列通知
// 任务创建成功后入队一条通知消息，外部 worker 流水线通过 BLPOP 消费
package queue

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// ReadyKey 生成就绪队列的 Redis key，格式为 "queue:{queueName}:ready"
func ReadyKey(queueName string) string {
	return "queue:" + queueName + ":ready"
}

// EnqueueReady 将消息加入就绪队列尾部，保证 FIFO 顺序
func EnqueueReady(ctx context.Context, rdb *redis.Client, queueName string, payload string) error {
	return rdb.RPush(ctx, ReadyKey(queueName), payload).Err()
}

// Connect 建立 Redis 连接并通过 PING 验证
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}
