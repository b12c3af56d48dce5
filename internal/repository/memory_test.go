package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pu-ac-cn/geo-console/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(kind model.ResourceKind, id, name string) *model.Resource {
	r := &model.Resource{Kind: kind, Name: name, Status: model.StatusDraft}
	r.ID = id
	return r
}

func TestMemoryResources_SaveAndGet(t *testing.T) {
	repo := NewMemoryStore().Resources()
	ctx := context.Background()

	item := newItem(model.KindMap, "1", "武汉市全要素电子地图")
	require.NoError(t, repo.Save(ctx, item))
	assert.Equal(t, int64(1), item.Version)

	got, err := repo.Get(ctx, model.KindMap, "1")
	require.NoError(t, err)
	assert.Equal(t, "武汉市全要素电子地图", got.Name)

	// 返回副本，修改不影响存储
	got.Name = "已修改"
	again, _ := repo.Get(ctx, model.KindMap, "1")
	assert.Equal(t, "武汉市全要素电子地图", again.Name)
}

func TestMemoryResources_GenerateID(t *testing.T) {
	repo := NewMemoryStore().Resources()

	item := newItem(model.KindData, "", "长江流域遥感影像")
	require.NoError(t, repo.Save(context.Background(), item))
	assert.NotEmpty(t, item.ID)
}

func TestMemoryResources_CrossKindNotFound(t *testing.T) {
	repo := NewMemoryStore().Resources()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newItem(model.KindMap, "1", "地图")))

	_, err := repo.Get(ctx, model.KindData, "1")
	assert.ErrorIs(t, err, ErrResourceNotFound)

	err = repo.Save(ctx, newItem(model.KindData, "1", "数据"))
	assert.ErrorIs(t, err, ErrResourceExists)
}

func TestMemoryResources_VersionConflict(t *testing.T) {
	repo := NewMemoryStore().Resources()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newItem(model.KindMap, "1", "地图")))

	first, _ := repo.Get(ctx, model.KindMap, "1")
	second, _ := repo.Get(ctx, model.KindMap, "1")

	first.Name = "第一次修改"
	require.NoError(t, repo.Save(ctx, first))
	assert.Equal(t, int64(2), first.Version)

	second.Name = "第二次修改"
	assert.ErrorIs(t, repo.Save(ctx, second), ErrVersionConflict)

	got, _ := repo.Get(ctx, model.KindMap, "1")
	assert.Equal(t, "第一次修改", got.Name)
}

func TestMemoryResources_SaveMissing(t *testing.T) {
	repo := NewMemoryStore().Resources()
	item := newItem(model.KindMap, "9", "不存在")
	item.Version = 3
	assert.ErrorIs(t, repo.Save(context.Background(), item), ErrResourceNotFound)
}

func TestMemoryResources_ListOrderAndDelete(t *testing.T) {
	repo := NewMemoryStore().Resources()
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3", "4"} {
		require.NoError(t, repo.Save(ctx, newItem(model.KindMap, id, "地图"+id)))
	}
	require.NoError(t, repo.Delete(ctx, model.KindMap, "2", 1))

	items, err := repo.List(ctx, model.KindMap)
	require.NoError(t, err)
	var ids []string
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"1", "3", "4"}, ids)

	assert.ErrorIs(t, repo.Delete(ctx, model.KindMap, "2", 1), ErrResourceNotFound)

	empty, err := repo.List(ctx, model.KindApp)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryResources_DeleteStaleVersion(t *testing.T) {
	repo := NewMemoryStore().Resources()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newItem(model.KindMap, "1", "地图")))
	item, _ := repo.Get(ctx, model.KindMap, "1")
	item.Status = model.StatusPendingReview
	require.NoError(t, repo.Save(ctx, item))

	// 删除方读到的是版本 1
	assert.ErrorIs(t, repo.Delete(ctx, model.KindMap, "1", 1), ErrVersionConflict)

	got, err := repo.Get(ctx, model.KindMap, "1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPendingReview, got.Status)
}

func TestMemoryResources_DeletedIDNotReused(t *testing.T) {
	repo := NewMemoryStore().Resources()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newItem(model.KindMap, "1", "地图")))
	require.NoError(t, repo.Delete(ctx, model.KindMap, "1", 1))

	assert.ErrorIs(t, repo.Save(ctx, newItem(model.KindMap, "1", "重建")), ErrResourceExists)
	assert.ErrorIs(t, repo.Save(ctx, newItem(model.KindData, "1", "重建")), ErrResourceExists)

	_, err := repo.Get(ctx, model.KindMap, "1")
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestMemoryResources_ListByCreatedAt(t *testing.T) {
	repo := NewMemoryStore().Resources()
	ctx := context.Background()
	base := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, c := range []struct {
		id     string
		offset time.Duration
	}{
		{"b", 2 * time.Hour},
		{"c", time.Hour},
		{"a", 2 * time.Hour},
	} {
		item := newItem(model.KindMap, c.id, "地图"+c.id)
		item.CreatedAt = base.Add(c.offset)
		require.NoError(t, repo.Save(ctx, item))
	}

	items, err := repo.List(ctx, model.KindMap)
	require.NoError(t, err)
	var ids []string
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestMemoryRecords(t *testing.T) {
	store := NewMemoryStore()
	records := store.Records()
	ctx := context.Background()

	require.NoError(t, records.Append(ctx, &model.ReviewRecord{ResourceID: "3", Kind: model.KindMap, Action: model.ActionSubmit}))
	require.NoError(t, records.Append(ctx, &model.ReviewRecord{ResourceID: "3", Kind: model.KindMap, Action: model.ActionReject, Opinion: "图例不规范"}))
	require.NoError(t, records.Append(ctx, &model.ReviewRecord{ResourceID: "3", Kind: model.KindData, Action: model.ActionSubmit}))

	list, err := records.ListByResource(ctx, model.KindMap, "3")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, model.ActionSubmit, list[0].Action)
	assert.NotEmpty(t, list[0].ID)

	decisions := model.Decisions(list)
	require.Len(t, decisions, 1)
	assert.Equal(t, "图例不规范", decisions[0].Opinion)
}
