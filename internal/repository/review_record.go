package repository

import (
	"context"

	"github.com/pu-ac-cn/geo-console/internal/model"
	"gorm.io/gorm"
)

// ReviewRecordRepository 审核流转记录数据访问接口，记录只追加
type ReviewRecordRepository interface {
	Append(ctx context.Context, record *model.ReviewRecord) error
	ListByResource(ctx context.Context, kind model.ResourceKind, resourceID string) ([]*model.ReviewRecord, error)
}

type reviewRecordRepository struct {
	db *gorm.DB
}

// NewReviewRecordRepository 创建流转记录数据访问实例
func NewReviewRecordRepository(db *gorm.DB) ReviewRecordRepository {
	return &reviewRecordRepository{db: db}
}

// Append 追加记录
func (r *reviewRecordRepository) Append(ctx context.Context, record *model.ReviewRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListByResource 查询资源的流转记录，按时间正序
func (r *reviewRecordRepository) ListByResource(ctx context.Context, kind model.ResourceKind, resourceID string) ([]*model.ReviewRecord, error) {
	var records []*model.ReviewRecord
	err := r.db.WithContext(ctx).
		Where("resource_id = ? AND kind = ?", resourceID, kind).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
