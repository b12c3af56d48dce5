package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 创建测试用的 Redis 客户端
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis, func()) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr, func() {
		client.Close()
		mr.Close()
	}
}

func TestNoticeService_PushAndDrain(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	svc := NewNoticeService(client, 0)
	ctx := context.Background()

	n, err := svc.Push(ctx, "screen-1", NoticeSuccess, "提交成功，等待审核")
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, 3*time.Second, n.ExpiresAt.Sub(n.CreatedAt))

	_, err = svc.Push(ctx, "screen-1", NoticeError, "驳回原因不能为空")
	require.NoError(t, err)

	notices, err := svc.Drain(ctx, "screen-1")
	require.NoError(t, err)
	require.Len(t, notices, 2)
	assert.Equal(t, "提交成功，等待审核", notices[0].Message)
	assert.Equal(t, NoticeError, notices[1].Level)

	// 取出后即删除
	notices, err = svc.Drain(ctx, "screen-1")
	require.NoError(t, err)
	assert.Empty(t, notices)
}

func TestNoticeService_Isolation(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	svc := NewNoticeService(client, time.Minute)
	ctx := context.Background()

	_, err := svc.Push(ctx, "screen-1", NoticeSuccess, "保存成功")
	require.NoError(t, err)

	notices, err := svc.Drain(ctx, "screen-2")
	require.NoError(t, err)
	assert.Empty(t, notices)
}

func TestNoticeService_Expired(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	svc := NewNoticeService(client, 3*time.Second)
	ctx := context.Background()

	_, err := svc.Push(ctx, "screen-1", NoticeSuccess, "提交成功，等待审核")
	require.NoError(t, err)

	mr.FastForward(4 * time.Second)

	notices, err := svc.Drain(ctx, "screen-1")
	require.NoError(t, err)
	assert.Empty(t, notices)
}
