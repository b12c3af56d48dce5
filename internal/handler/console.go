package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pu-ac-cn/geo-console/internal/console"
	"github.com/pu-ac-cn/geo-console/internal/model"
	"github.com/pu-ac-cn/geo-console/internal/service"
	"github.com/pu-ac-cn/geo-console/pkg/response"
)

// ConsoleHandler 路由表、菜单、资源类别和首页汇总
type ConsoleHandler struct {
	dashboard service.DashboardService
}

// NewConsoleHandler 创建控制台处理器
func NewConsoleHandler(dashboard service.DashboardService) *ConsoleHandler {
	return &ConsoleHandler{dashboard: dashboard}
}

// routeResponse 路由及其支持的视图
type routeResponse struct {
	console.Route
	Views []console.View `json:"views"`
}

// Routes 获取路由表
// GET /api/v1/console/routes
func (h *ConsoleHandler) Routes(c *gin.Context) {
	routes := console.Routes()
	list := make([]routeResponse, 0, len(routes))
	for _, r := range routes {
		list = append(list, routeResponse{Route: r, Views: r.Views()})
	}
	response.Success(c, gin.H{
		"home":   console.HomePath,
		"routes": list,
	})
}

// Menu 获取导航菜单
// GET /api/v1/console/menu
func (h *ConsoleHandler) Menu(c *gin.Context) {
	response.Success(c, console.Menu())
}

// Kinds 获取全部资源类别
// GET /api/v1/kinds
func (h *ConsoleHandler) Kinds(c *gin.Context) {
	response.Success(c, gin.H{
		"kinds":    model.Descriptors(),
		"statuses": statusOptions(),
	})
}

// Kind 获取资源类别描述，包含类目和类型下拉选项
// GET /api/v1/kinds/:kind
func (h *ConsoleHandler) Kind(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	desc, _ := model.DescriptorOf(kind)
	response.Success(c, desc)
}

// Dashboard 获取首页汇总
// GET /api/v1/dashboard
func (h *ConsoleHandler) Dashboard(c *gin.Context) {
	d, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, d)
}

func statusOptions() []gin.H {
	statuses := model.AllStatuses()
	out := make([]gin.H, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, gin.H{"value": s, "label": s.Label()})
	}
	return out
}
