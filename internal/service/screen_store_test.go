package service

import (
	"context"
	"testing"
	"time"

	"github.com/pu-ac-cn/geo-console/internal/console"
	"github.com/pu-ac-cn/geo-console/internal/form"
	"github.com/pu-ac-cn/geo-console/internal/listview"
	"github.com/pu-ac-cn/geo-console/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenStore_SaveAndGet(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewScreenStore(client, 0)
	ctx := context.Background()

	screen, err := console.NewScreen("/resource/map", 10)
	require.NoError(t, err)
	require.NoError(t, screen.SetQuery(listview.Query{Keyword: "武汉"}))
	require.NoError(t, screen.OpenAdd())
	require.NoError(t, screen.Draft.Set(form.FieldName, "光谷三维白模"))
	require.NoError(t, store.Save(ctx, screen))
	assert.False(t, screen.UpdatedAt.IsZero())

	got, err := store.Get(ctx, screen.ID)
	require.NoError(t, err)
	assert.Equal(t, console.ViewAdd, got.View)
	assert.Equal(t, "武汉", got.Query.Keyword)
	require.NotNil(t, got.Draft)
	assert.Equal(t, form.ModeAdd, got.Draft.Mode)
	assert.Equal(t, model.KindMap, got.Draft.Kind)
	assert.Equal(t, "光谷三维白模", got.Draft.Current.Name)
	assert.Len(t, got.Draft.Current.Layers, 1)
}

func TestScreenStore_NotFound(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewScreenStore(client, 0)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrScreenNotFound)
}

func TestScreenStore_SlidingTTL(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewScreenStore(client, time.Minute)
	ctx := context.Background()

	screen, err := console.NewScreen("/dashboard", 10)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, screen))

	mr.FastForward(40 * time.Second)
	_, err = store.Get(ctx, screen.ID)
	require.NoError(t, err)

	// 读取后顺延
	mr.FastForward(40 * time.Second)
	_, err = store.Get(ctx, screen.ID)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	_, err = store.Get(ctx, screen.ID)
	assert.ErrorIs(t, err, ErrScreenNotFound)
}

func TestScreenStore_Delete(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewScreenStore(client, 0)
	notices := NewNoticeService(client, 0)
	ctx := context.Background()

	screen, err := console.NewScreen("/review/map", 10)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, screen))
	_, err = notices.Push(ctx, screen.ID, NoticeSuccess, "审核通过")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, screen.ID))
	_, err = store.Get(ctx, screen.ID)
	assert.ErrorIs(t, err, ErrScreenNotFound)
	assert.False(t, mr.Exists(noticeKeyPrefix+screen.ID))
}
