package console

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pu-ac-cn/geo-console/internal/form"
	"github.com/pu-ac-cn/geo-console/internal/listview"
	"github.com/pu-ac-cn/geo-console/internal/model"
)

// View 页面视图
type View string

// 视图常量
const (
	ViewList    View = "list"
	ViewDetail  View = "detail"
	ViewAdd     View = "add"
	ViewEdit    View = "edit"
	ViewApprove View = "approve"
)

// Valid 是否为合法视图
func (v View) Valid() bool {
	switch v {
	case ViewList, ViewDetail, ViewAdd, ViewEdit, ViewApprove:
		return true
	default:
		return false
	}
}

// 错误定义
var (
	ErrInvalidView     = errors.New("当前视图不允许该操作")
	ErrViewUnsupported = fmt.Errorf("%w: 页面不支持该视图", ErrInvalidView)
	ErrRouteNotFound   = errors.New("页面不存在")
)

// Screen 单个页面的视图状态
// 列表视图是唯一入口：详情、新增、编辑、审核都只能从列表打开，关闭后回到列表
type Screen struct {
	ID         string         `json:"id"`
	Path       string         `json:"path"`
	View       View           `json:"view"`
	SelectedID string         `json:"selected_id,omitempty"`
	Draft      *form.Draft    `json:"draft,omitempty"`
	Query      listview.Query `json:"query"`
	PageIndex  int            `json:"page_index"`
	PageSize   int            `json:"page_size"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// NewScreen 打开页面，初始为列表视图
func NewScreen(path string, pageSize int) (*Screen, error) {
	route, ok := Lookup(path)
	if !ok {
		return nil, ErrRouteNotFound
	}
	if pageSize <= 0 {
		pageSize = listview.DefaultPageSize
	}
	return &Screen{
		ID:       uuid.New().String(),
		Path:     route.Path,
		View:     ViewList,
		PageSize: pageSize,
	}, nil
}

// Route 页面对应的路由
func (s *Screen) Route() Route {
	r, _ := Lookup(s.Path)
	return r
}

func (s *Screen) open(v View) error {
	if s.View != ViewList {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidView, s.View, v)
	}
	if !s.Route().Supports(v) {
		return ErrViewUnsupported
	}
	return nil
}

// OpenDetail 打开详情
func (s *Screen) OpenDetail(id string) error {
	if err := s.open(ViewDetail); err != nil {
		return err
	}
	s.View = ViewDetail
	s.SelectedID = id
	return nil
}

// OpenApprove 打开审核
func (s *Screen) OpenApprove(id string) error {
	if err := s.open(ViewApprove); err != nil {
		return err
	}
	s.View = ViewApprove
	s.SelectedID = id
	return nil
}

// OpenAdd 打开新增表单
func (s *Screen) OpenAdd() error {
	if err := s.open(ViewAdd); err != nil {
		return err
	}
	s.View = ViewAdd
	s.SelectedID = ""
	s.Draft = form.NewAddDraft(s.Route().Kind)
	return nil
}

// OpenEdit 打开编辑表单，表单内容是资源的副本
func (s *Screen) OpenEdit(item *model.Resource) error {
	if err := s.open(ViewEdit); err != nil {
		return err
	}
	s.View = ViewEdit
	s.SelectedID = item.ID
	s.Draft = form.NewEditDraft(item)
	return nil
}

// Close 回到列表，丢弃未保存的表单
func (s *Screen) Close() {
	s.View = ViewList
	s.SelectedID = ""
	s.Draft = nil
}

// HasForm 当前视图是否为表单
func (s *Screen) HasForm() bool {
	switch s.View {
	case ViewAdd, ViewEdit:
		return s.Draft != nil
	case ViewList, ViewDetail, ViewApprove:
		return false
	default:
		return false
	}
}

// SetQuery 修改筛选条件并回到第一页
func (s *Screen) SetQuery(q listview.Query) error {
	if s.View != ViewList {
		return ErrInvalidView
	}
	s.Query = q
	s.PageIndex = 0
	return nil
}

// SetPage 翻页
func (s *Screen) SetPage(pageIndex int) error {
	if s.View != ViewList {
		return ErrInvalidView
	}
	if pageIndex < 0 {
		pageIndex = 0
	}
	s.PageIndex = pageIndex
	return nil
}
