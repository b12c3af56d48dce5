// Package service 业务逻辑层
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pu-ac-cn/geo-console/internal/listview"
	"github.com/pu-ac-cn/geo-console/internal/logging"
	"github.com/pu-ac-cn/geo-console/internal/metrics"
	"github.com/pu-ac-cn/geo-console/internal/model"
	"github.com/pu-ac-cn/geo-console/internal/repository"
	"github.com/pu-ac-cn/geo-console/internal/review"
	"github.com/pu-ac-cn/geo-console/internal/storage"
	"go.uber.org/zap"
)

var (
	ErrKindNotFound  = errors.New("资源类别不存在")
	ErrIDEmpty       = errors.New("资源 ID 不能为空")
	ErrThumbnailType = fmt.Errorf("%w: 缩略图仅支持 png、jpg、webp", review.ErrValidation)
)

// Detail 资源详情，包含可执行操作和审核历史
type Detail struct {
	Resource *model.Resource       `json:"resource"`
	Label    string                `json:"status_label"`
	Actions  []model.Action        `json:"actions"`
	History  []*model.ReviewRecord `json:"history"`
	Opinions []*model.ReviewRecord `json:"opinions"`
}

// ResourceService 资源服务接口
type ResourceService interface {
	Create(ctx context.Context, item *model.Resource, operator string) error
	Get(ctx context.Context, kind model.ResourceKind, id string) (*model.Resource, error)
	Detail(ctx context.Context, kind model.ResourceKind, id string) (*Detail, error)
	Query(ctx context.Context, kind model.ResourceKind, scope listview.Scope, q listview.Query) ([]*model.Resource, error)
	List(ctx context.Context, kind model.ResourceKind, scope listview.Scope, q listview.Query, pageIndex, pageSize int) (listview.Page, error)
	Stats(ctx context.Context, kind model.ResourceKind, scope listview.Scope) (listview.Stats, error)
	Edit(ctx context.Context, kind model.ResourceKind, id string, version int64, patch model.ResourcePatch, operator string) (*model.Resource, error)
	Submit(ctx context.Context, kind model.ResourceKind, id, operator string) (*model.Resource, error)
	Approve(ctx context.Context, kind model.ResourceKind, id, opinion, operator string) (*model.Resource, error)
	Reject(ctx context.Context, kind model.ResourceKind, id, reason, operator string) (*model.Resource, error)
	Delete(ctx context.Context, kind model.ResourceKind, id, operator string) error
	History(ctx context.Context, kind model.ResourceKind, id string) ([]*model.ReviewRecord, error)
	UploadThumbnail(ctx context.Context, kind model.ResourceKind, id, filename string, reader io.Reader, size int64, operator string) (*model.Resource, error)
}

type resourceService struct {
	repo    repository.ResourceRepository
	records repository.ReviewRecordRepository
	store   storage.ObjectStorage
	now     func() time.Time
}

// NewResourceService 创建资源服务，store 为 nil 时不支持缩略图上传
func NewResourceService(repo repository.ResourceRepository, records repository.ReviewRecordRepository, store storage.ObjectStorage) ResourceService {
	return &resourceService{
		repo:    repo,
		records: records,
		store:   store,
		now:     time.Now,
	}
}

func checkKind(kind model.ResourceKind) error {
	if _, ok := model.DescriptorOf(kind); !ok {
		return ErrKindNotFound
	}
	return nil
}

// Create 新建草稿
func (s *resourceService) Create(ctx context.Context, item *model.Resource, operator string) error {
	if err := checkKind(item.Kind); err != nil {
		return err
	}
	item.Name = strings.TrimSpace(item.Name)
	if err := review.Validate(item); err != nil {
		return err
	}

	item.Status = model.StatusDraft
	item.ProcessResult = ""
	item.ReviewedBy = ""
	item.ReviewedAt = nil
	item.PublishTime = nil
	item.Version = 0
	if item.Submitter == "" {
		item.Submitter = operator
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return err
	}
	s.record(ctx, item, model.ActionCreate, "", item.Status, "", operator)
	logging.L().Info("资源已创建",
		zap.String("kind", string(item.Kind)),
		zap.String("id", item.ID),
		zap.String("operator", operator),
	)
	return nil
}

// Get 获取资源
func (s *resourceService) Get(ctx context.Context, kind model.ResourceKind, id string) (*model.Resource, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrIDEmpty
	}
	return s.repo.Get(ctx, kind, id)
}

// Detail 获取资源详情
func (s *resourceService) Detail(ctx context.Context, kind model.ResourceKind, id string) (*Detail, error) {
	item, err := s.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	history, err := s.records.ListByResource(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return &Detail{
		Resource: item,
		Label:    item.Status.Label(),
		Actions:  review.AvailableActions(item.Status),
		History:  history,
		Opinions: model.Decisions(history),
	}, nil
}

// Query 按范围和条件筛选
func (s *resourceService) Query(ctx context.Context, kind model.ResourceKind, scope listview.Scope, q listview.Query) ([]*model.Resource, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	items, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	return listview.Filter(scope.Apply(items), q), nil
}

// List 分页查询
func (s *resourceService) List(ctx context.Context, kind model.ResourceKind, scope listview.Scope, q listview.Query, pageIndex, pageSize int) (listview.Page, error) {
	items, err := s.Query(ctx, kind, scope, q)
	if err != nil {
		return listview.Page{}, err
	}
	return listview.Paginate(items, pageIndex, pageSize), nil
}

// Stats 统计卡片，不受筛选条件影响
func (s *resourceService) Stats(ctx context.Context, kind model.ResourceKind, scope listview.Scope) (listview.Stats, error) {
	items, err := s.Query(ctx, kind, scope, listview.Query{})
	if err != nil {
		return listview.Stats{}, err
	}
	return listview.Count(items), nil
}

// Edit 编辑资源，version 不为 0 时校验版本号
func (s *resourceService) Edit(ctx context.Context, kind model.ResourceKind, id string, version int64, patch model.ResourcePatch, operator string) (*model.Resource, error) {
	return s.apply(ctx, kind, id, "", operator, func(item *model.Resource) (*model.Resource, model.Action, error) {
		if version != 0 && version != item.Version {
			return nil, model.ActionEdit, repository.ErrVersionConflict
		}
		next, err := review.Edit(item, patch)
		return next, model.ActionEdit, err
	})
}

// Submit 提交审核，已驳回的资源按重新提交处理
func (s *resourceService) Submit(ctx context.Context, kind model.ResourceKind, id, operator string) (*model.Resource, error) {
	return s.apply(ctx, kind, id, "", operator, func(item *model.Resource) (*model.Resource, model.Action, error) {
		action := review.SubmitActionFor(item.Status)
		if action == model.ActionResubmit {
			next, err := review.Resubmit(item, s.now())
			return next, action, err
		}
		next, err := review.SubmitForReview(item, s.now())
		return next, action, err
	})
}

// Approve 审核通过
func (s *resourceService) Approve(ctx context.Context, kind model.ResourceKind, id, opinion, operator string) (*model.Resource, error) {
	return s.apply(ctx, kind, id, strings.TrimSpace(opinion), operator, func(item *model.Resource) (*model.Resource, model.Action, error) {
		next, err := review.Approve(item, opinion, operator, s.now())
		return next, model.ActionApprove, err
	})
}

// Reject 审核驳回
func (s *resourceService) Reject(ctx context.Context, kind model.ResourceKind, id, reason, operator string) (*model.Resource, error) {
	return s.apply(ctx, kind, id, strings.TrimSpace(reason), operator, func(item *model.Resource) (*model.Resource, model.Action, error) {
		next, err := review.Reject(item, reason, operator, s.now())
		return next, model.ActionReject, err
	})
}

// Delete 删除资源，待审核的资源不可删除
func (s *resourceService) Delete(ctx context.Context, kind model.ResourceKind, id, operator string) error {
	item, err := s.Get(ctx, kind, id)
	if err != nil {
		return err
	}
	if err := review.CheckDelete(item); err != nil {
		s.observe(kind, model.ActionDelete, id, err)
		return err
	}
	if err := s.repo.Delete(ctx, kind, id, item.Version); err != nil {
		s.observe(kind, model.ActionDelete, id, err)
		return err
	}
	s.record(ctx, item, model.ActionDelete, item.Status, "", "", operator)
	s.observe(kind, model.ActionDelete, id, nil)
	return nil
}

// History 审核流转记录
func (s *resourceService) History(ctx context.Context, kind model.ResourceKind, id string) ([]*model.ReviewRecord, error) {
	if _, err := s.Get(ctx, kind, id); err != nil {
		return nil, err
	}
	return s.records.ListByResource(ctx, kind, id)
}

var thumbnailTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// UploadThumbnail 上传缩略图，按编辑操作记录
func (s *resourceService) UploadThumbnail(ctx context.Context, kind model.ResourceKind, id, filename string, reader io.Reader, size int64, operator string) (*model.Resource, error) {
	if s.store == nil {
		return nil, storage.ErrDisabled
	}
	ext := strings.ToLower(path.Ext(filename))
	contentType, ok := thumbnailTypes[ext]
	if !ok {
		return nil, ErrThumbnailType
	}
	item, err := s.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if !review.Can(item.Status, model.ActionEdit) {
		return nil, &review.TransitionError{Action: model.ActionEdit, From: item.Status}
	}

	objectName := fmt.Sprintf("thumbnails/%s/%s/%s%s", kind, id, uuid.New().String(), ext)
	url, err := s.store.Put(ctx, objectName, reader, size, contentType)
	if err != nil {
		return nil, err
	}
	return s.Edit(ctx, kind, id, item.Version, model.ResourcePatch{Thumbnail: &url}, operator)
}

// transitionFunc 计算流转结果，同时返回实际执行的操作
type transitionFunc func(item *model.Resource) (*model.Resource, model.Action, error)

// apply 读取资源、计算流转结果、写回并记录历史
func (s *resourceService) apply(ctx context.Context, kind model.ResourceKind, id, opinion, operator string, fn transitionFunc) (*model.Resource, error) {
	item, err := s.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	next, action, err := fn(item)
	if err != nil {
		s.observe(kind, action, id, err)
		return nil, err
	}

	if err := s.repo.Save(ctx, next); err != nil {
		s.observe(kind, action, id, err)
		return nil, err
	}
	s.record(ctx, next, action, item.Status, next.Status, opinion, operator)
	s.observe(kind, action, id, nil)
	return next, nil
}

func (s *resourceService) record(ctx context.Context, item *model.Resource, action model.Action, from, to model.ReviewStatus, opinion, operator string) {
	rec := &model.ReviewRecord{
		ResourceID: item.ID,
		Kind:       item.Kind,
		Action:     action,
		FromStatus: from,
		ToStatus:   to,
		Opinion:    opinion,
		Operator:   operator,
	}
	if err := s.records.Append(ctx, rec); err != nil {
		logging.L().Error("写入审核记录失败",
			zap.String("kind", string(item.Kind)),
			zap.String("id", item.ID),
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
}

func (s *resourceService) observe(kind model.ResourceKind, action model.Action, id string, err error) {
	result := TransitionResult(err)
	metrics.RecordTransition(string(kind), string(action), result)

	fields := []zap.Field{
		zap.String("kind", string(kind)),
		zap.String("id", id),
		zap.String("action", string(action)),
		zap.String("result", result),
	}
	if err != nil {
		logging.L().Warn("资源操作失败", append(fields, zap.Error(err))...)
		return
	}
	logging.L().Info("资源操作完成", fields...)
}

// TransitionResult 将错误归类为指标标签
func TransitionResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, review.ErrInvalidTransition):
		return metrics.ResultInvalid
	case errors.Is(err, review.ErrValidation):
		return metrics.ResultValidation
	case errors.Is(err, repository.ErrVersionConflict):
		return metrics.ResultConflict
	default:
		return metrics.ResultError
	}
}
