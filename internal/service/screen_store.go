package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pu-ac-cn/geo-console/internal/console"
	"github.com/redis/go-redis/v9"
)

var ErrScreenNotFound = errors.New("页面会话不存在或已过期")

// ScreenStore 页面会话存储接口
type ScreenStore interface {
	Save(ctx context.Context, screen *console.Screen) error
	Get(ctx context.Context, screenID string) (*console.Screen, error)
	Delete(ctx context.Context, screenID string) error
}

type screenStore struct {
	redis *redis.Client
	ttl   time.Duration
}

const screenKeyPrefix = "screen:"

// NewScreenStore 创建页面会话存储，ttl 为 0 时默认 2 小时
func NewScreenStore(redisClient *redis.Client, ttl time.Duration) ScreenStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &screenStore{
		redis: redisClient,
		ttl:   ttl,
	}
}

// Save 保存页面会话并刷新过期时间
func (s *screenStore) Save(ctx context.Context, screen *console.Screen) error {
	screen.UpdatedAt = time.Now()

	data, err := json.Marshal(screen)
	if err != nil {
		return fmt.Errorf("序列化页面会话失败: %w", err)
	}

	key := screenKeyPrefix + screen.ID
	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("存储页面会话失败: %w", err)
	}
	return nil
}

// Get 获取页面会话，读取时顺延过期时间
func (s *screenStore) Get(ctx context.Context, screenID string) (*console.Screen, error) {
	key := screenKeyPrefix + screenID
	data, err := s.redis.GetEx(ctx, key, s.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrScreenNotFound
		}
		return nil, fmt.Errorf("获取页面会话失败: %w", err)
	}

	var screen console.Screen
	if err := json.Unmarshal(data, &screen); err != nil {
		return nil, fmt.Errorf("反序列化页面会话失败: %w", err)
	}
	if _, ok := console.Lookup(screen.Path); !ok {
		s.redis.Del(ctx, key)
		return nil, ErrScreenNotFound
	}
	return &screen, nil
}

// Delete 删除页面会话
func (s *screenStore) Delete(ctx context.Context, screenID string) error {
	if err := s.redis.Del(ctx, screenKeyPrefix+screenID, noticeKeyPrefix+screenID).Err(); err != nil {
		return fmt.Errorf("删除页面会话失败: %w", err)
	}
	return nil
}
