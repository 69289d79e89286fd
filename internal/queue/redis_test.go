package queue

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadyKey(t *testing.T) {
	assert.Equal(t, "queue:seo_tasks:ready", ReadyKey("seo_tasks"))
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := Connect(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer rdb.Close()

	require.NoError(t, rdb.Ping(context.Background()).Err())
}

func TestConnectBadURL(t *testing.T) {
	_, err := Connect(context.Background(), "not-a-redis-url")
	require.Error(t, err)
}

func TestEnqueueReadyKeepsFIFOOrder(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx := context.Background()
	require.NoError(t, EnqueueReady(ctx, rdb, "seo_tasks", `{"task_id":"a"}`))
	require.NoError(t, EnqueueReady(ctx, rdb, "seo_tasks", `{"task_id":"b"}`))

	items, err := rdb.LRange(ctx, ReadyKey("seo_tasks"), 0, -1).Result()
	require.NoError(t, err)
	assert.Equal(t, []string{`{"task_id":"a"}`, `{"task_id":"b"}`}, items)
}
