// Package listview 列表页的筛选、统计与分页
//
// 所有函数都是纯函数，不修改入参，保持输入顺序。
package listview

import (
	"strings"

	"github.com/pu-ac-cn/geo-console/internal/model"
)

// DefaultPageSize 默认每页条数
const DefaultPageSize = 10

// 下拉框中表示不筛选的选项
var allOptions = map[string]bool{
	"":     true,
	"all":  true,
	"全部状态": true,
	"全部类目": true,
	"全部类型": true,
}

// Query 列表筛选条件
type Query struct {
	Keyword  string `json:"keyword" form:"keyword"`
	Status   string `json:"status" form:"status"`
	Category string `json:"category" form:"category"`
	Type     string `json:"type" form:"type"`
}

// IsAll 选项是否表示全部
func IsAll(v string) bool {
	return allOptions[strings.TrimSpace(v)]
}

// Matches 单条资源是否满足筛选条件
// 关键字对名称做不区分大小写的子串匹配，状态同时接受状态码和中文名
func (q Query) Matches(item *model.Resource) bool {
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		if !strings.Contains(strings.ToLower(item.Name), strings.ToLower(kw)) {
			return false
		}
	}
	if !IsAll(q.Status) {
		status, ok := model.ParseStatus(strings.TrimSpace(q.Status))
		if !ok || item.Status != status {
			return false
		}
	}
	if !IsAll(q.Category) && item.Category != strings.TrimSpace(q.Category) {
		return false
	}
	if !IsAll(q.Type) && item.Type != strings.TrimSpace(q.Type) {
		return false
	}
	return true
}

// Filter 按条件筛选
func Filter(items []*model.Resource, q Query) []*model.Resource {
	out := make([]*model.Resource, 0, len(items))
	for _, item := range items {
		if q.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}

// Scope 列表范围
type Scope string

// 列表范围常量
const (
	ScopeAll       Scope = "all"       // 资源管理页：全部资源
	ScopeReview    Scope = "review"    // 审核页：已提交过的资源
	ScopePublished Scope = "published" // 产品页：已通过的资源
)

// Includes 资源是否属于该范围
func (s Scope) Includes(item *model.Resource) bool {
	switch s {
	case ScopeReview:
		return item.Status != model.StatusDraft
	case ScopePublished:
		return item.Status == model.StatusApproved
	default:
		return true
	}
}

// Apply 按范围筛选
func (s Scope) Apply(items []*model.Resource) []*model.Resource {
	out := make([]*model.Resource, 0, len(items))
	for _, item := range items {
		if s.Includes(item) {
			out = append(out, item)
		}
	}
	return out
}

// Page 分页结果
type Page struct {
	Items      []*model.Resource `json:"items"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
	PageIndex  int               `json:"page_index"`
	PageSize   int               `json:"page_size"`
}

// Paginate 分页，页码从 0 开始，超出范围时取最近的有效页
func Paginate(items []*model.Resource, pageIndex, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if pageIndex >= totalPages {
		pageIndex = totalPages - 1
	}
	if pageIndex < 0 {
		pageIndex = 0
	}

	start := pageIndex * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	pageItems := make([]*model.Resource, 0, end-start)
	pageItems = append(pageItems, items[start:end]...)

	return Page{
		Items:      pageItems,
		Total:      total,
		TotalPages: totalPages,
		PageIndex:  pageIndex,
		PageSize:   pageSize,
	}
}

// Stats 列表页统计卡片
type Stats struct {
	Total    int `json:"total"`
	Draft    int `json:"draft"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// Count 统计各状态数量
func Count(items []*model.Resource) Stats {
	var s Stats
	for _, item := range items {
		s.Total++
		switch item.Status {
		case model.StatusDraft:
			s.Draft++
		case model.StatusPendingReview:
			s.Pending++
		case model.StatusApproved:
			s.Approved++
		case model.StatusRejected:
			s.Rejected++
		}
	}
	return s
}
