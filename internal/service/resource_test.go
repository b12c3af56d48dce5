package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/pu-ac-cn/geo-console/internal/listview"
	"github.com/pu-ac-cn/geo-console/internal/metrics"
	"github.com/pu-ac-cn/geo-console/internal/model"
	"github.com/pu-ac-cn/geo-console/internal/repository"
	"github.com/pu-ac-cn/geo-console/internal/review"
	"github.com/pu-ac-cn/geo-console/internal/seed"
	"github.com/pu-ac-cn/geo-console/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOperator = "运营管理员"

// 创建带演示数据的资源服务
func setupResourceService(t *testing.T) (ResourceService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	_, err := seed.Load(context.Background(), store.Resources())
	require.NoError(t, err)
	return NewResourceService(store.Resources(), store.Records(), nil), store
}

type fakeStorage struct {
	objects map[string][]byte
	err     error
}

func (f *fakeStorage) Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[objectName] = data
	return "http://minio.local/geo-console/" + objectName, nil
}

func TestResourceService_RejectFlow(t *testing.T) {
	svc, _ := setupResourceService(t)
	ctx := context.Background()

	item, err := svc.Submit(ctx, model.KindMap, "3", testOperator)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPendingReview, item.Status)
	assert.NotNil(t, item.SubmitTime)

	item, err = svc.Reject(ctx, model.KindMap, "3", "图例不规范", "审核员")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, item.Status)
	assert.Equal(t, "图例不规范", item.ProcessResult)
	assert.Equal(t, "图例不规范", item.RejectReason())
	assert.Equal(t, "审核员", item.ReviewedBy)

	got, err := svc.Get(ctx, model.KindMap, "3")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, got.Status)
	assert.Equal(t, "图例不规范", got.ProcessResult)
}

func TestResourceService_RejectEmptyReason(t *testing.T) {
	svc, _ := setupResourceService(t)
	ctx := context.Background()

	_, err := svc.Reject(ctx, model.KindMap, "2", "   ", "审核员")
	assert.ErrorIs(t, err, review.ErrValidation)

	got, err := svc.Get(ctx, model.KindMap, "2")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPendingReview, got.Status)
}

func TestResourceService_Resubmit(t *testing.T) {
	svc, _ := setupResourceService(t)
	ctx := context.Background()

	name := "长江流域水系专题图（修订）"
	_, err := svc.Edit(ctx, model.KindMap, "4", 0, model.ResourcePatch{Name: &name}, testOperator)
	require.NoError(t, err)

	item, err := svc.Submit(ctx, model.KindMap, "4", testOperator)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPendingReview, item.Status)
	assert.Empty(t, item.ProcessResult)
	assert.Empty(t, item.ReviewedBy)
	assert.Equal(t, name, item.Name)

	history, err := svc.History(ctx, model.KindMap, "4")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.ActionEdit, history[0].Action)
	assert.Equal(t, model.ActionResubmit, history[1].Action)
	assert.Equal(t, model.StatusRejected, history[1].FromStatus)
	assert.Equal(t, model.StatusPendingReview, history[1].ToStatus)
}

func TestResourceService_ResubmitKeepsDecisionHistory(t *testing.T) {
	svc, _ := setupResourceService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, model.KindMap, "3", testOperator)
	require.NoError(t, err)
	_, err = svc.Reject(ctx, model.KindMap, "3", "图例不规范", "审核员")
	require.NoError(t, err)
	_, err = svc.Submit(ctx, model.KindMap, "3", testOperator)
	require.NoError(t, err)

	detail, err := svc.Detail(ctx, model.KindMap, "3")
	require.NoError(t, err)
	assert.Empty(t, detail.Resource.ProcessResult)
	require.Len(t, detail.Opinions, 1)
	assert.Equal(t, "图例不规范", detail.Opinions[0].Opinion)
	assert.Equal(t, []model.Action{model.ActionApprove, model.ActionReject}, detail.Actions)
}

func TestResourceService_Approve(t *testing.T) {
	svc, _ := setupResourceService(t)
	ctx := context.Background()

	item, err := svc.Approve(ctx, model.KindMap, "2", "", "审核员")
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, item.Status)
	assert.NotNil(t, item.PublishTime)

	// 重复审核
	_, err = svc.Approve(ctx, model.KindMap, "2", "", "审核员")
	assert.ErrorIs(t, err, review.ErrInvalidTransition)
	var te *review.TransitionError
	assert.True(t, errors.As(err, &te))
}

func TestResourceService_SubmitInvalid(t *testing.T) {
	svc, _ := setupResourceService(t)
	ctx := context.Background()

	for _, id := range []string{"1", "2"} {
		before, err := svc.Get(ctx, model.KindMap, id)
		require.NoError(t, err)

		_, err = svc.Submit(ctx, model.KindMap, id, testOperator)
		assert.ErrorIs(t, err, review.ErrInvalidTransition, id)

		after, err := svc.Get(ctx, model.KindMap, id)
		require.NoError(t, err)
		assert.Equal(t, before.Status, after.Status)
		assert.Equal(t, before.Version, after.Version)
	}
}

func TestResourceService_Delete(t *testing.T) {
	svc, _ := setupResourceService(t)
	ctx := context.Background()

	err := svc.Delete(ctx, model.KindMap, "2", testOperator)
	assert.ErrorIs(t, err, review.ErrInvalidTransition)
	assert.EqualError(t, err, "待审核状态下不允许删除")

	require.NoError(t, svc.Delete(ctx, model.KindMap, "4", testOperator))
	_, err = svc.Get(ctx, model.KindMap, "4")
	assert.ErrorIs(t, err, repository.ErrResourceNotFound)

	items, err := svc.Query(ctx, model.KindMap, listview.ScopeAll, listview.Query{})
	require.NoError(t, err)
	for _, item := range items {
		assert.NotEqual(t, "4", item.ID)
	}
}

// submitOnDelete 删除前先让另一方提交审核
type submitOnDelete struct {
	repository.ResourceRepository
	before func()
}

func (r *submitOnDelete) Delete(ctx context.Context, kind model.ResourceKind, id string, version int64) error {
	r.before()
	return r.ResourceRepository.Delete(ctx, kind, id, version)
}

func TestResourceService_DeleteRacesSubmit(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()
	_, err := seed.Load(ctx, store.Resources())
	require.NoError(t, err)

	other := NewResourceService(store.Resources(), store.Records(), nil)
	repo := &submitOnDelete{ResourceRepository: store.Resources()}
	repo.before = func() {
		_, err := other.Submit(ctx, model.KindMap, "4", "审核员")
		require.NoError(t, err)
	}
	svc := NewResourceService(repo, store.Records(), nil)

	err = svc.Delete(ctx, model.KindMap, "4", testOperator)
	assert.ErrorIs(t, err, repository.ErrVersionConflict)

	item, err := other.Get(ctx, model.KindMap, "4")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPendingReview, item.Status)
}

func TestResourceService_EditKeepsStatus(t *testing.T) {
	svc, _ := setupResourceService(t)
	ctx := context.Background()

	before, err := svc.Get(ctx, model.KindMap, "1")
	require.NoError(t, err)

	desc := "更新后的描述"
	item, err := svc.Edit(ctx, model.KindMap, "1", before.Version, model.ResourcePatch{
		Description: &desc,
		Attributes:  model.StringMap{model.AttrZoomLevel: "1-20"},
	}, testOperator)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, item.Status)
	assert.Equal(t, desc, item.Description)
	assert.Equal(t, before.Name, item.Name)
	assert.Equal(t, before.Submitter, item.Submitter)
	assert.Equal(t, "1-20", item.Attribute(model.AttrZoomLevel))
	assert.Equal(t, before.Version+1, item.Version)

	history, err := svc.History(ctx, model.KindMap, "1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, model.StatusApproved, history[0].FromStatus)
	assert.Equal(t, model.StatusApproved, history[0].ToStatus)
}

func TestResourceService_EditPending(t *testing.T) {
	svc, _ := setupResourceService(t)

	name := "新名称"
	_, err := svc.Edit(context.Background(), model.KindMap, "2", 0, model.ResourcePatch{Name: &name}, testOperator)
	assert.ErrorIs(t, err, review.ErrInvalidTransition)
}

func TestResourceService_EditUnknownAttribute(t *testing.T) {
	svc, _ := setupResourceService(t)

	_, err := svc.Edit(context.Background(), model.KindData, "data-3", 0, model.ResourcePatch{
		Attributes: model.StringMap{model.AttrPlatform: "Android"},
	}, testOperator)
	assert.ErrorIs(t, err, review.ErrValidation)
}

func TestResourceService_VersionConflict(t *testing.T) {
	svc, _ := setupResourceService(t)
	ctx := context.Background()

	item, err := svc.Get(ctx, model.KindMap, "3")
	require.NoError(t, err)
	stale := item.Version

	name := "第一次修改"
	_, err = svc.Edit(ctx, model.KindMap, "3", stale, model.ResourcePatch{Name: &name}, testOperator)
	require.NoError(t, err)

	name = "第二次修改"
	_, err = svc.Edit(ctx, model.KindMap, "3", stale, model.ResourcePatch{Name: &name}, testOperator)
	assert.ErrorIs(t, err, repository.ErrVersionConflict)

	got, _ := svc.Get(ctx, model.KindMap, "3")
	assert.Equal(t, "第一次修改", got.Name)
}

func TestResourceService_Create(t *testing.T) {
	svc, _ := setupResourceService(t)
	ctx := context.Background()

	item := &model.Resource{Kind: model.KindService, Name: "  坐标转换服务  ", Status: model.StatusApproved}
	require.NoError(t, svc.Create(ctx, item, testOperator))
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "坐标转换服务", item.Name)
	assert.Equal(t, model.StatusDraft, item.Status)
	assert.Equal(t, testOperator, item.Submitter)

	err := svc.Create(ctx, &model.Resource{Kind: model.KindService, Name: " "}, testOperator)
	assert.ErrorIs(t, err, review.ErrValidation)

	err = svc.Create(ctx, &model.Resource{Kind: "satellite", Name: "影像"}, testOperator)
	assert.ErrorIs(t, err, ErrKindNotFound)
}

func TestResourceService_CrossKind(t *testing.T) {
	svc, _ := setupResourceService(t)

	_, err := svc.Get(context.Background(), model.KindData, "3")
	assert.ErrorIs(t, err, repository.ErrResourceNotFound)
}

func TestResourceService_ListAndStats(t *testing.T) {
	svc, _ := setupResourceService(t)
	ctx := context.Background()

	page, err := svc.List(ctx, model.KindMap, listview.ScopeAll, listview.Query{Status: "all"}, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 2)

	queue, err := svc.Stats(ctx, model.KindMap, listview.ScopeReview)
	require.NoError(t, err)
	assert.Equal(t, 3, queue.Total)
	assert.Zero(t, queue.Draft)

	published, err := svc.Query(ctx, model.KindMap, listview.ScopePublished, listview.Query{})
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "1", published[0].ID)
}

func TestResourceService_UploadThumbnail(t *testing.T) {
	store := repository.NewMemoryStore()
	_, err := seed.Load(context.Background(), store.Resources())
	require.NoError(t, err)
	objects := &fakeStorage{}
	svc := NewResourceService(store.Resources(), store.Records(), objects)
	ctx := context.Background()

	item, err := svc.UploadThumbnail(ctx, model.KindMap, "3", "cover.PNG", bytes.NewReader([]byte("png")), 3, testOperator)
	require.NoError(t, err)
	assert.Contains(t, item.Thumbnail, "thumbnails/map/3/")
	assert.Len(t, objects.objects, 1)

	_, err = svc.UploadThumbnail(ctx, model.KindMap, "3", "cover.gif", bytes.NewReader(nil), 0, testOperator)
	assert.ErrorIs(t, err, ErrThumbnailType)

	_, err = svc.UploadThumbnail(ctx, model.KindMap, "2", "cover.png", bytes.NewReader(nil), 0, testOperator)
	assert.ErrorIs(t, err, review.ErrInvalidTransition)
}

func TestResourceService_UploadThumbnailDisabled(t *testing.T) {
	svc, _ := setupResourceService(t)

	_, err := svc.UploadThumbnail(context.Background(), model.KindMap, "3", "cover.png", bytes.NewReader(nil), 0, testOperator)
	assert.ErrorIs(t, err, storage.ErrDisabled)
}

func TestTransitionResult(t *testing.T) {
	assert.Equal(t, metrics.ResultSuccess, TransitionResult(nil))
	assert.Equal(t, metrics.ResultInvalid, TransitionResult(&review.TransitionError{Action: model.ActionSubmit, From: model.StatusApproved}))
	assert.Equal(t, metrics.ResultValidation, TransitionResult(review.ErrRejectReasonEmpty))
	assert.Equal(t, metrics.ResultConflict, TransitionResult(repository.ErrVersionConflict))
	assert.Equal(t, metrics.ResultError, TransitionResult(errors.New("boom")))
}
