// Package console 控制台路由表、菜单和页面视图状态
package console

import (
	"strings"

	"github.com/pu-ac-cn/geo-console/internal/listview"
	"github.com/pu-ac-cn/geo-console/internal/model"
)

// Domain 页面所属业务域
type Domain string

// 业务域常量
const (
	DomainDashboard Domain = "dashboard" // 首页
	DomainProduct   Domain = "product"   // 产品管理
	DomainResource  Domain = "resource"  // 资源管理
	DomainReview    Domain = "review"    // 资源审核
	DomainOrder     Domain = "order"     // 订单管理
	DomainCustom    Domain = "custom"    // 定制管理
	DomainPrice     Domain = "price"     // 价格管理
)

// HomePath 根路径重定向的目标
const HomePath = "/dashboard"

// Route 路由，每条路由挂载一个页面
type Route struct {
	Path   string             `json:"path"`
	Title  string             `json:"title"`
	Domain Domain             `json:"domain"`
	Kind   model.ResourceKind `json:"kind,omitempty"`
}

// Views 页面支持的视图
func (r Route) Views() []View {
	switch r.Domain {
	case DomainResource:
		return []View{ViewList, ViewDetail, ViewAdd, ViewEdit}
	case DomainReview:
		return []View{ViewList, ViewApprove}
	case DomainProduct:
		return []View{ViewList, ViewDetail}
	case DomainDashboard, DomainOrder, DomainCustom, DomainPrice:
		return []View{ViewList}
	default:
		return []View{ViewList}
	}
}

// Supports 是否支持该视图
func (r Route) Supports(v View) bool {
	for _, rv := range r.Views() {
		if rv == v {
			return true
		}
	}
	return false
}

// Scope 页面列表范围
func (r Route) Scope() listview.Scope {
	switch r.Domain {
	case DomainReview:
		return listview.ScopeReview
	case DomainProduct:
		return listview.ScopePublished
	default:
		return listview.ScopeAll
	}
}

// HasCatalog 页面是否展示资源列表
func (r Route) HasCatalog() bool {
	return r.Kind != "" && (r.Domain == DomainResource || r.Domain == DomainReview || r.Domain == DomainProduct)
}

var routes = buildRoutes()

func buildRoutes() []Route {
	out := []Route{{Path: "/dashboard", Title: "首页", Domain: DomainDashboard}}
	for _, d := range model.Descriptors() {
		out = append(out, Route{Path: "/product/" + string(d.Kind), Title: d.ProductTitle, Domain: DomainProduct, Kind: d.Kind})
	}
	for _, d := range model.Descriptors() {
		out = append(out, Route{Path: "/resource/" + string(d.Kind), Title: d.Title, Domain: DomainResource, Kind: d.Kind})
	}
	for _, d := range model.Descriptors() {
		out = append(out, Route{Path: "/review/" + string(d.Kind), Title: d.ReviewTitle, Domain: DomainReview, Kind: d.Kind})
	}
	return append(out,
		Route{Path: "/order/data", Title: "订单流转", Domain: DomainOrder},
		Route{Path: "/order/service", Title: "订单处理", Domain: DomainOrder},
		Route{Path: "/custom", Title: "定制管理", Domain: DomainCustom},
		Route{Path: "/price/satellite", Title: "卫星影像价格", Domain: DomainPrice},
		Route{Path: "/price/service", Title: "算子服务价格", Domain: DomainPrice},
	)
}

// Routes 返回全部路由
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Lookup 查找路由，根路径指向首页
func Lookup(path string) (Route, bool) {
	path = strings.TrimSuffix(strings.TrimSpace(path), "/")
	if path == "" {
		path = HomePath
	}
	for _, r := range routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// MenuItem 导航菜单项
type MenuItem struct {
	Label    string     `json:"label"`
	Path     string     `json:"path,omitempty"`
	Children []MenuItem `json:"children,omitempty"`
}

// Menu 导航菜单树
func Menu() []MenuItem {
	group := func(label string, domain Domain) MenuItem {
		item := MenuItem{Label: label}
		for _, r := range routes {
			if r.Domain == domain {
				item.Children = append(item.Children, MenuItem{Label: r.Title, Path: r.Path})
			}
		}
		return item
	}
	return []MenuItem{
		{Label: "首页", Path: "/dashboard"},
		group("产品管理", DomainProduct),
		group("资源管理", DomainResource),
		group("资源审核", DomainReview),
		group("订单管理", DomainOrder),
		{Label: "定制管理", Path: "/custom"},
		group("价格管理", DomainPrice),
	}
}
