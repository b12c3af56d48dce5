package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pu-ac-cn/geo-console/internal/console"
	"github.com/pu-ac-cn/geo-console/internal/form"
	"github.com/pu-ac-cn/geo-console/internal/listview"
	"github.com/pu-ac-cn/geo-console/internal/logging"
	"github.com/pu-ac-cn/geo-console/internal/model"
	"github.com/pu-ac-cn/geo-console/internal/repository"
	"github.com/pu-ac-cn/geo-console/internal/review"
	"go.uber.org/zap"
)

// 表单修改操作
const (
	FormOpSet         = "set"
	FormOpTags        = "tags"
	FormOpAddLayer    = "add_layer"
	FormOpRemoveLayer = "remove_layer"
	FormOpUpdateLayer = "update_layer"
	FormOpReset       = "reset"
)

var ErrUnknownFormOp = fmt.Errorf("%w: 未知的表单操作", review.ErrValidation)

// FormChange 单个表单修改
type FormChange struct {
	Op    string      `json:"op" binding:"required"`
	Field string      `json:"field,omitempty"`
	Value string      `json:"value,omitempty"`
	Tags  []string    `json:"tags,omitempty"`
	Index int         `json:"index,omitempty"`
	Layer model.Layer `json:"layer"`
}

// ScreenView 页面渲染数据
type ScreenView struct {
	Screen    *console.Screen  `json:"screen"`
	Route     console.Route    `json:"route"`
	Views     []console.View   `json:"views"`
	Page      *listview.Page   `json:"page,omitempty"`
	Stats     *listview.Stats  `json:"stats,omitempty"`
	Detail    *Detail          `json:"detail,omitempty"`
	Dirty     bool             `json:"dirty"`
	Dashboard *model.Dashboard `json:"dashboard,omitempty"`
	Notices   []*Notice        `json:"notices"`
}

// ConsoleService 控制台页面服务接口
// 每个页面会话保存当前视图、筛选条件和表单草稿，每次操作后返回最新的渲染数据
type ConsoleService interface {
	Open(ctx context.Context, path string) (*ScreenView, error)
	View(ctx context.Context, screenID string) (*ScreenView, error)
	Discard(ctx context.Context, screenID string) error
	Navigate(ctx context.Context, screenID string, q listview.Query, pageIndex int) (*ScreenView, error)
	OpenDetail(ctx context.Context, screenID, id string) (*ScreenView, error)
	OpenEdit(ctx context.Context, screenID, id string) (*ScreenView, error)
	OpenApprove(ctx context.Context, screenID, id string) (*ScreenView, error)
	OpenAdd(ctx context.Context, screenID string) (*ScreenView, error)
	Back(ctx context.Context, screenID string) (*ScreenView, error)
	UpdateForm(ctx context.Context, screenID string, changes []FormChange) (*ScreenView, error)
	SaveForm(ctx context.Context, screenID, operator string) (*ScreenView, error)
	Decide(ctx context.Context, screenID string, approve bool, opinion, operator string) (*ScreenView, error)
	Submit(ctx context.Context, screenID, id, operator string) (*ScreenView, error)
	DeleteItem(ctx context.Context, screenID, id, operator string) (*ScreenView, error)
}

type consoleService struct {
	screens   ScreenStore
	notices   NoticeService
	resources ResourceService
	dashboard DashboardService
	pageSize  int
}

// NewConsoleService 创建控制台页面服务
func NewConsoleService(screens ScreenStore, notices NoticeService, resources ResourceService, dashboard DashboardService, pageSize int) ConsoleService {
	if pageSize <= 0 {
		pageSize = listview.DefaultPageSize
	}
	return &consoleService{
		screens:   screens,
		notices:   notices,
		resources: resources,
		dashboard: dashboard,
		pageSize:  pageSize,
	}
}

// Open 打开页面
func (s *consoleService) Open(ctx context.Context, path string) (*ScreenView, error) {
	screen, err := console.NewScreen(path, s.pageSize)
	if err != nil {
		return nil, err
	}
	if err := s.screens.Save(ctx, screen); err != nil {
		return nil, err
	}
	return s.render(ctx, screen)
}

// View 获取页面当前渲染数据
func (s *consoleService) View(ctx context.Context, screenID string) (*ScreenView, error) {
	screen, err := s.screens.Get(ctx, screenID)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, screen)
}

// Discard 关闭页面会话
func (s *consoleService) Discard(ctx context.Context, screenID string) error {
	return s.screens.Delete(ctx, screenID)
}

// Navigate 修改筛选条件或翻页，筛选条件变化时回到第一页
func (s *consoleService) Navigate(ctx context.Context, screenID string, q listview.Query, pageIndex int) (*ScreenView, error) {
	return s.mutate(ctx, screenID, func(screen *console.Screen, route console.Route) error {
		if q != screen.Query {
			return screen.SetQuery(q)
		}
		return screen.SetPage(pageIndex)
	})
}

// OpenDetail 从列表打开详情，资源不存在时停留在列表
// 操作失败时会话不会保存，视图保持原样
func (s *consoleService) OpenDetail(ctx context.Context, screenID, id string) (*ScreenView, error) {
	return s.mutate(ctx, screenID, func(screen *console.Screen, route console.Route) error {
		if err := screen.OpenDetail(id); err != nil {
			return err
		}
		_, err := s.resources.Get(ctx, route.Kind, id)
		return err
	})
}

// OpenEdit 从列表打开编辑表单
func (s *consoleService) OpenEdit(ctx context.Context, screenID, id string) (*ScreenView, error) {
	return s.mutate(ctx, screenID, func(screen *console.Screen, route console.Route) error {
		item, err := s.resources.Get(ctx, route.Kind, id)
		if err != nil {
			return err
		}
		if !review.Can(item.Status, model.ActionEdit) {
			return &review.TransitionError{Action: model.ActionEdit, From: item.Status}
		}
		return screen.OpenEdit(item)
	})
}

// OpenApprove 从审核列表打开审核弹窗，仅待审核资源可以打开
func (s *consoleService) OpenApprove(ctx context.Context, screenID, id string) (*ScreenView, error) {
	return s.mutate(ctx, screenID, func(screen *console.Screen, route console.Route) error {
		if err := screen.OpenApprove(id); err != nil {
			return err
		}
		item, err := s.resources.Get(ctx, route.Kind, id)
		if err != nil {
			return err
		}
		if !review.Can(item.Status, model.ActionApprove) {
			return &review.TransitionError{Action: model.ActionApprove, From: item.Status}
		}
		return nil
	})
}

// OpenAdd 从列表打开新增表单
func (s *consoleService) OpenAdd(ctx context.Context, screenID string) (*ScreenView, error) {
	return s.mutate(ctx, screenID, func(screen *console.Screen, route console.Route) error {
		return screen.OpenAdd()
	})
}

// Back 回到列表，丢弃未保存的表单
func (s *consoleService) Back(ctx context.Context, screenID string) (*ScreenView, error) {
	return s.mutate(ctx, screenID, func(screen *console.Screen, route console.Route) error {
		screen.Close()
		return nil
	})
}

// UpdateForm 逐项修改表单草稿，任一修改失败时整批不生效
func (s *consoleService) UpdateForm(ctx context.Context, screenID string, changes []FormChange) (*ScreenView, error) {
	return s.mutate(ctx, screenID, func(screen *console.Screen, route console.Route) error {
		if !screen.HasForm() {
			return console.ErrInvalidView
		}
		working := screen.Draft.Clone()
		for _, c := range changes {
			if err := applyFormChange(working, c); err != nil {
				return err
			}
		}
		screen.Draft = working
		return nil
	})
}

func applyFormChange(d *form.Draft, c FormChange) error {
	switch c.Op {
	case FormOpSet:
		return d.Set(c.Field, c.Value)
	case FormOpTags:
		d.SetTags(c.Tags)
		return nil
	case FormOpAddLayer:
		return d.AddLayer()
	case FormOpRemoveLayer:
		return d.RemoveLayer(c.Index)
	case FormOpUpdateLayer:
		return d.UpdateLayer(c.Index, c.Layer)
	case FormOpReset:
		d.Reset()
		return nil
	default:
		return ErrUnknownFormOp
	}
}

// SaveForm 保存表单，成功后回到列表；失败时保留表单内容
func (s *consoleService) SaveForm(ctx context.Context, screenID, operator string) (*ScreenView, error) {
	return s.mutate(ctx, screenID, func(screen *console.Screen, route console.Route) error {
		if !screen.HasForm() {
			return console.ErrInvalidView
		}
		draft := screen.Draft

		switch draft.Mode {
		case form.ModeAdd:
			item, err := draft.Build(operator)
			if err != nil {
				return err
			}
			if err := s.resources.Create(ctx, item, operator); err != nil {
				return err
			}
			s.notify(ctx, screen.ID, NoticeSuccess, "新增成功")
		case form.ModeEdit:
			patch, err := draft.Patch()
			if err != nil {
				return err
			}
			_, err = s.resources.Edit(ctx, draft.Kind, draft.TargetID, draft.Version, patch, operator)
			switch {
			case errors.Is(err, repository.ErrResourceNotFound):
				// 编辑对象已被删除，表单无法再保存，回到列表
				screen.Close()
				s.notify(ctx, screen.ID, NoticeWarning, err.Error())
				return nil
			case err != nil:
				return err
			}
			s.notify(ctx, screen.ID, NoticeSuccess, "保存成功")
		default:
			return form.ErrModeMismatch
		}

		screen.Close()
		return nil
	})
}

// Decide 在审核弹窗中通过或驳回，驳回原因为空时停留在弹窗
func (s *consoleService) Decide(ctx context.Context, screenID string, approve bool, opinion, operator string) (*ScreenView, error) {
	return s.mutate(ctx, screenID, func(screen *console.Screen, route console.Route) error {
		if screen.View != console.ViewApprove {
			return console.ErrInvalidView
		}
		if approve {
			if _, err := s.resources.Approve(ctx, route.Kind, screen.SelectedID, opinion, operator); err != nil {
				return err
			}
			s.notify(ctx, screen.ID, NoticeSuccess, "审核通过")
		} else {
			if _, err := s.resources.Reject(ctx, route.Kind, screen.SelectedID, opinion, operator); err != nil {
				return err
			}
			s.notify(ctx, screen.ID, NoticeSuccess, "已驳回")
		}
		screen.Close()
		return nil
	})
}

// Submit 在资源列表中提交审核
func (s *consoleService) Submit(ctx context.Context, screenID, id, operator string) (*ScreenView, error) {
	return s.mutate(ctx, screenID, func(screen *console.Screen, route console.Route) error {
		if err := listAction(screen, route); err != nil {
			return err
		}
		if _, err := s.resources.Submit(ctx, route.Kind, id, operator); err != nil {
			return err
		}
		s.notify(ctx, screen.ID, NoticeSuccess, "提交成功，等待审核")
		return nil
	})
}

// DeleteItem 在资源列表中删除
func (s *consoleService) DeleteItem(ctx context.Context, screenID, id, operator string) (*ScreenView, error) {
	return s.mutate(ctx, screenID, func(screen *console.Screen, route console.Route) error {
		if err := listAction(screen, route); err != nil {
			return err
		}
		if err := s.resources.Delete(ctx, route.Kind, id, operator); err != nil {
			return err
		}
		s.notify(ctx, screen.ID, NoticeSuccess, "删除成功")
		return nil
	})
}

// listAction 提交和删除只能在资源管理页的列表视图中操作
func listAction(screen *console.Screen, route console.Route) error {
	if screen.View != console.ViewList {
		return console.ErrInvalidView
	}
	if route.Domain != console.DomainResource {
		return console.ErrViewUnsupported
	}
	return nil
}

// mutate 读取页面会话、执行操作并保存
// 操作失败时会话保持原样，并推送一条错误提示
func (s *consoleService) mutate(ctx context.Context, screenID string, fn func(screen *console.Screen, route console.Route) error) (*ScreenView, error) {
	screen, err := s.screens.Get(ctx, screenID)
	if err != nil {
		return nil, err
	}
	route := screen.Route()

	if err := fn(screen, route); err != nil {
		s.notify(ctx, screenID, NoticeError, err.Error())
		return nil, err
	}

	if err := s.screens.Save(ctx, screen); err != nil {
		return nil, err
	}
	return s.render(ctx, screen)
}

func (s *consoleService) notify(ctx context.Context, screenID string, level NoticeLevel, message string) {
	if _, err := s.notices.Push(ctx, screenID, level, message); err != nil {
		logging.L().Warn("推送页面提示失败",
			zap.String("screen_id", screenID),
			zap.String("message", message),
			zap.Error(err),
		)
	}
}

// render 生成页面渲染数据
// 选中的资源已不存在时回到列表
func (s *consoleService) render(ctx context.Context, screen *console.Screen) (*ScreenView, error) {
	route := screen.Route()
	view := &ScreenView{
		Screen: screen,
		Route:  route,
		Views:  route.Views(),
	}

	if route.Domain == console.DomainDashboard {
		d, err := s.dashboard.Summary(ctx)
		if err != nil {
			return nil, err
		}
		view.Dashboard = d
	}

	if route.HasCatalog() {
		if screen.SelectedID != "" && !screen.HasForm() {
			detail, err := s.resources.Detail(ctx, route.Kind, screen.SelectedID)
			switch {
			case err == nil:
				view.Detail = detail
			case errors.Is(err, repository.ErrResourceNotFound):
				screen.Close()
				s.notify(ctx, screen.ID, NoticeWarning, err.Error())
				if err := s.screens.Save(ctx, screen); err != nil {
					return nil, err
				}
			default:
				return nil, err
			}
		}

		page, err := s.resources.List(ctx, route.Kind, route.Scope(), screen.Query, screen.PageIndex, screen.PageSize)
		if err != nil {
			return nil, err
		}
		stats, err := s.resources.Stats(ctx, route.Kind, route.Scope())
		if err != nil {
			return nil, err
		}
		view.Page = &page
		view.Stats = &stats
	}

	if screen.HasForm() {
		view.Dirty = screen.Draft.Dirty()
	}

	notices, err := s.notices.Drain(ctx, screen.ID)
	if err != nil {
		return nil, err
	}
	view.Notices = notices
	return view, nil
}
