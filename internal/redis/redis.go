package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pu-ac-cn/geo-console/internal/config"
	"github.com/redis/go-redis/v9"
)

var (
	client   *redis.Client
	embedded *miniredis.Miniredis
)

// Init 初始化 Redis 连接
// Embedded 为 true 时启动进程内 Redis，仅用于本地演示
func Init(cfg *config.RedisConfig) error {
	addr := cfg.Addr
	if cfg.Embedded {
		s, err := miniredis.Run()
		if err != nil {
			return fmt.Errorf("启动内置 Redis 失败: %w", err)
		}
		embedded = s
		addr = s.Addr()
	}

	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("连接 Redis 失败: %w", err)
	}

	return nil
}

// GetClient 获取 Redis 客户端实例
func GetClient() *redis.Client {
	return client
}

// Close 关闭 Redis 连接
func Close() error {
	if embedded != nil {
		defer func() {
			embedded.Close()
			embedded = nil
		}()
	}
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}

// Ping 测试 Redis 连接
func Ping(ctx context.Context) error {
	if client == nil {
		return fmt.Errorf("Redis 未初始化")
	}
	return client.Ping(ctx).Err()
}
