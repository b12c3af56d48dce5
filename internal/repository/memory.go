package repository

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/pu-ac-cn/geo-console/internal/model"
)

// MemoryStore 进程内存储，未配置数据库时使用
// 每个类别一个集合，读写都使用副本，调用方无法修改已存储的数据
// 删除的 ID 保留在 deleted 中，与数据库软删除一样不再复用
type MemoryStore struct {
	mu      sync.RWMutex
	items   map[model.ResourceKind]map[string]*model.Resource
	order   map[model.ResourceKind][]string
	deleted map[string]struct{}
	records []*model.ReviewRecord
	now     func() time.Time
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:   make(map[model.ResourceKind]map[string]*model.Resource),
		order:   make(map[model.ResourceKind][]string),
		deleted: make(map[string]struct{}),
		now:     time.Now,
	}
}

// Resources 资源数据访问视图
func (s *MemoryStore) Resources() ResourceRepository {
	return memoryResources{s}
}

// Records 流转记录数据访问视图
func (s *MemoryStore) Records() ReviewRecordRepository {
	return memoryRecords{s}
}

type memoryResources struct {
	s *MemoryStore
}

// Get 根据类别和 ID 获取资源
func (r memoryResources) Get(ctx context.Context, kind model.ResourceKind, id string) (*model.Resource, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.s.items[kind][id]
	if !ok {
		return nil, ErrResourceNotFound
	}
	return item.Clone(), nil
}

// List 查询类别下全部资源，排序与数据库一致
func (r memoryResources) List(ctx context.Context, kind model.ResourceKind) ([]*model.Resource, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := r.s.order[kind]
	out := make([]*model.Resource, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.s.items[kind][id].Clone())
	}
	slices.SortStableFunc(out, func(a, b *model.Resource) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

// Save 保存资源
func (r memoryResources) Save(ctx context.Context, item *model.Resource) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	if item.Version == 0 {
		item.EnsureID()
		if r.s.exists(item.ID) {
			return ErrResourceExists
		}
		if r.s.items[item.Kind] == nil {
			r.s.items[item.Kind] = make(map[string]*model.Resource)
		}
		item.Version = 1
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		item.UpdatedAt = now
		r.s.items[item.Kind][item.ID] = item.Clone()
		r.s.order[item.Kind] = append(r.s.order[item.Kind], item.ID)
		return nil
	}

	stored, ok := r.s.items[item.Kind][item.ID]
	if !ok {
		return ErrResourceNotFound
	}
	if stored.Version != item.Version {
		return ErrVersionConflict
	}
	item.Version++
	item.CreatedAt = stored.CreatedAt
	item.UpdatedAt = now
	r.s.items[item.Kind][item.ID] = item.Clone()
	return nil
}

// Delete 删除资源
func (r memoryResources) Delete(ctx context.Context, kind model.ResourceKind, id string, version int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.items[kind][id]
	if !ok {
		return ErrResourceNotFound
	}
	if stored.Version != version {
		return ErrVersionConflict
	}
	delete(r.s.items[kind], id)
	r.s.deleted[id] = struct{}{}

	ids := r.s.order[kind]
	for i, v := range ids {
		if v == id {
			r.s.order[kind] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

// exists ID 在所有类别中唯一，已删除的 ID 也算存在
func (s *MemoryStore) exists(id string) bool {
	if _, ok := s.deleted[id]; ok {
		return true
	}
	for _, items := range s.items {
		if _, ok := items[id]; ok {
			return true
		}
	}
	return false
}

type memoryRecords struct {
	s *MemoryStore
}

// Append 追加记录
func (r memoryRecords) Append(ctx context.Context, record *model.ReviewRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	record.EnsureID()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = r.s.now()
	}
	record.UpdatedAt = record.CreatedAt
	cp := *record
	r.s.records = append(r.s.records, &cp)
	return nil
}

// ListByResource 查询资源的流转记录
func (r memoryRecords) ListByResource(ctx context.Context, kind model.ResourceKind, resourceID string) ([]*model.ReviewRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.ReviewRecord
	for _, rec := range r.s.records {
		if rec.Kind == kind && rec.ResourceID == resourceID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}
