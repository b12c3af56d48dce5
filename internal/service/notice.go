package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pu-ac-cn/geo-console/internal/metrics"
	"github.com/redis/go-redis/v9"
)

// NoticeLevel 提示级别
type NoticeLevel string

// 提示级别常量
const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeWarning NoticeLevel = "warning"
)

// Notice 页面提示，对应前端的短暂提示框
type Notice struct {
	ID        string      `json:"id"`
	Level     NoticeLevel `json:"level"`
	Message   string      `json:"message"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// IsExpired 检查提示是否过期
func (n *Notice) IsExpired() bool {
	return time.Now().After(n.ExpiresAt)
}

// NoticeService 页面提示服务接口
type NoticeService interface {
	Push(ctx context.Context, screenID string, level NoticeLevel, message string) (*Notice, error)
	Drain(ctx context.Context, screenID string) ([]*Notice, error)
}

type noticeService struct {
	redis *redis.Client
	ttl   time.Duration
}

const noticeKeyPrefix = "notice:"

// NewNoticeService 创建提示服务，ttl 为 0 时默认 3 秒
func NewNoticeService(redisClient *redis.Client, ttl time.Duration) NoticeService {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &noticeService{
		redis: redisClient,
		ttl:   ttl,
	}
}

// Push 追加提示
func (s *noticeService) Push(ctx context.Context, screenID string, level NoticeLevel, message string) (*Notice, error) {
	now := time.Now()
	n := &Notice{
		ID:        uuid.New().String(),
		Level:     level,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	data, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("序列化提示失败: %w", err)
	}

	key := noticeKeyPrefix + screenID
	pipe := s.redis.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("存储提示失败: %w", err)
	}

	metrics.RecordNotice(string(level))
	return n, nil
}

// Drain 取出全部未过期的提示，取出后即删除
func (s *noticeService) Drain(ctx context.Context, screenID string) ([]*Notice, error) {
	key := noticeKeyPrefix + screenID
	pipe := s.redis.TxPipeline()
	rng := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("获取提示失败: %w", err)
	}

	notices := make([]*Notice, 0, len(rng.Val()))
	for _, raw := range rng.Val() {
		var n Notice
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			continue
		}
		if n.IsExpired() {
			continue
		}
		notices = append(notices, &n)
	}
	return notices, nil
}
