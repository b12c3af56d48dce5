package repository

import (
	"context"
	"errors"

	"github.com/pu-ac-cn/geo-console/internal/model"
	"gorm.io/gorm"
)

// 错误定义
var (
	ErrResourceNotFound = errors.New("资源不存在")
	ErrResourceExists   = errors.New("资源 ID 已存在")
	ErrVersionConflict  = errors.New("资源已被其他人修改，请刷新后重试")
)

// ResourceRepository 资源数据访问接口
// 同一 ID 只属于一个资源类别，跨类别查询返回 ErrResourceNotFound
// 已删除资源的 ID 不再复用
type ResourceRepository interface {
	Get(ctx context.Context, kind model.ResourceKind, id string) (*model.Resource, error)
	// List 按创建时间排列，时间相同时按 ID
	List(ctx context.Context, kind model.ResourceKind) ([]*model.Resource, error)
	// Save Version 为 0 时新建，否则按版本号更新并递增版本号
	Save(ctx context.Context, item *model.Resource) error
	// Delete 版本号与读取时一致才删除，否则返回 ErrVersionConflict
	Delete(ctx context.Context, kind model.ResourceKind, id string, version int64) error
}

// resourceRepository 资源数据访问实现
type resourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository 创建资源数据访问实例
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

// Get 根据类别和 ID 获取资源
func (r *resourceRepository) Get(ctx context.Context, kind model.ResourceKind, id string) (*model.Resource, error) {
	var item model.Resource
	err := r.db.WithContext(ctx).Where("id = ? AND kind = ?", id, kind).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	return &item, nil
}

// List 查询类别下全部资源，按创建顺序排列
func (r *resourceRepository) List(ctx context.Context, kind model.ResourceKind) ([]*model.Resource, error) {
	var items []*model.Resource
	err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Save 保存资源
func (r *resourceRepository) Save(ctx context.Context, item *model.Resource) error {
	if item.Version == 0 {
		return r.create(ctx, item)
	}

	// 乐观锁：只有版本号一致时才更新
	result := r.db.WithContext(ctx).Model(&model.Resource{}).
		Where("id = ? AND kind = ? AND version = ?", item.ID, item.Kind, item.Version).
		Updates(map[string]interface{}{
			"name":           item.Name,
			"category":       item.Category,
			"type":           item.Type,
			"description":    item.Description,
			"status":         item.Status,
			"submitter":      item.Submitter,
			"submit_time":    item.SubmitTime,
			"process_result": item.ProcessResult,
			"reviewed_by":    item.ReviewedBy,
			"reviewed_at":    item.ReviewedAt,
			"publish_time":   item.PublishTime,
			"thumbnail":      item.Thumbnail,
			"url":            item.URL,
			"copyright":      item.Copyright,
			"tags":           item.Tags,
			"layers":         item.Layers,
			"attributes":     item.Attributes,
			"version":        item.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.Get(ctx, item.Kind, item.ID); err != nil {
			return err
		}
		return ErrVersionConflict
	}
	item.Version++
	return nil
}

func (r *resourceRepository) create(ctx context.Context, item *model.Resource) error {
	if item.ID != "" {
		// 软删除的行仍占用主键
		var count int64
		if err := r.db.WithContext(ctx).Unscoped().Model(&model.Resource{}).Where("id = ?", item.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrResourceExists
		}
	}
	item.Version = 1
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		item.Version = 0
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrResourceExists
		}
		return err
	}
	return nil
}

// Delete 删除资源（软删除）
func (r *resourceRepository) Delete(ctx context.Context, kind model.ResourceKind, id string, version int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND kind = ? AND version = ?", id, kind, version).
		Delete(&model.Resource{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.Get(ctx, kind, id); err != nil {
			return err
		}
		return ErrVersionConflict
	}
	return nil
}
