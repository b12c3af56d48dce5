// Package storage 缩略图对象存储
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pu-ac-cn/geo-console/internal/config"
)

// ErrDisabled 未配置对象存储
var ErrDisabled = errors.New("未配置对象存储，无法上传文件")

// ObjectStorage 对象存储接口
type ObjectStorage interface {
	// Put 上传对象，返回可访问的地址
	Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}

// MinIOStorage MinIO 实现
type MinIOStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinIO 创建 MinIO 存储，Endpoint 为空时返回 ErrDisabled
func NewMinIO(ctx context.Context, cfg config.MinIOConfig) (*MinIOStorage, error) {
	if cfg.Endpoint == "" {
		return nil, ErrDisabled
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 MinIO 客户端失败: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("检查存储桶失败: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("创建存储桶失败: %w", err)
		}
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = scheme + "://" + cfg.Endpoint
	}

	return &MinIOStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

// Put 上传对象
func (s *MinIOStorage) Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("上传文件失败: %w", err)
	}
	return ObjectURL(s.publicURL, s.bucket, objectName), nil
}

// ObjectURL 拼接对象访问地址
func ObjectURL(base, bucket, objectName string) string {
	return strings.TrimSuffix(base, "/") + "/" + bucket + "/" + strings.TrimPrefix(objectName, "/")
}
