package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pu-ac-cn/geo-console/internal/listview"
	"github.com/pu-ac-cn/geo-console/internal/middleware"
	"github.com/pu-ac-cn/geo-console/internal/service"
	"github.com/pu-ac-cn/geo-console/pkg/response"
)

// ScreenHandler 页面会话处理器
type ScreenHandler struct {
	console service.ConsoleService
}

// NewScreenHandler 创建页面会话处理器
func NewScreenHandler(consoleSvc service.ConsoleService) *ScreenHandler {
	return &ScreenHandler{console: consoleSvc}
}

// OpenScreenRequest 打开页面请求
type OpenScreenRequest struct {
	Path string `json:"path"`
}

// Open 打开页面
// POST /api/v1/screens
func (h *ScreenHandler) Open(c *gin.Context) {
	var req OpenScreenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}
	h.reply(c)(h.console.Open(c.Request.Context(), req.Path))
}

// Get 获取页面渲染数据
// GET /api/v1/screens/:sid
func (h *ScreenHandler) Get(c *gin.Context) {
	h.reply(c)(h.console.View(c.Request.Context(), c.Param("sid")))
}

// Close 关闭页面
// DELETE /api/v1/screens/:sid
func (h *ScreenHandler) Close(c *gin.Context) {
	if err := h.console.Discard(c.Request.Context(), c.Param("sid")); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

// NavigateRequest 筛选和翻页请求
type NavigateRequest struct {
	listview.Query
	PageIndex int `json:"page_index"`
}

// Navigate 修改筛选条件或翻页
// PUT /api/v1/screens/:sid/query
func (h *ScreenHandler) Navigate(c *gin.Context) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}
	h.reply(c)(h.console.Navigate(c.Request.Context(), c.Param("sid"), req.Query, req.PageIndex))
}

// OpenDetail 打开详情
// POST /api/v1/screens/:sid/detail/:id
func (h *ScreenHandler) OpenDetail(c *gin.Context) {
	h.reply(c)(h.console.OpenDetail(c.Request.Context(), c.Param("sid"), c.Param("id")))
}

// OpenEdit 打开编辑表单
// POST /api/v1/screens/:sid/edit/:id
func (h *ScreenHandler) OpenEdit(c *gin.Context) {
	h.reply(c)(h.console.OpenEdit(c.Request.Context(), c.Param("sid"), c.Param("id")))
}

// OpenApprove 打开审核弹窗
// POST /api/v1/screens/:sid/approve/:id
func (h *ScreenHandler) OpenApprove(c *gin.Context) {
	h.reply(c)(h.console.OpenApprove(c.Request.Context(), c.Param("sid"), c.Param("id")))
}

// OpenAdd 打开新增表单
// POST /api/v1/screens/:sid/add
func (h *ScreenHandler) OpenAdd(c *gin.Context) {
	h.reply(c)(h.console.OpenAdd(c.Request.Context(), c.Param("sid")))
}

// Back 回到列表
// POST /api/v1/screens/:sid/back
func (h *ScreenHandler) Back(c *gin.Context) {
	h.reply(c)(h.console.Back(c.Request.Context(), c.Param("sid")))
}

// UpdateFormRequest 表单修改请求
type UpdateFormRequest struct {
	Changes []service.FormChange `json:"changes" binding:"required,dive"`
}

// UpdateForm 修改表单
// PATCH /api/v1/screens/:sid/form
func (h *ScreenHandler) UpdateForm(c *gin.Context) {
	var req UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}
	h.reply(c)(h.console.UpdateForm(c.Request.Context(), c.Param("sid"), req.Changes))
}

// SaveForm 保存表单
// POST /api/v1/screens/:sid/save
func (h *ScreenHandler) SaveForm(c *gin.Context) {
	h.reply(c)(h.console.SaveForm(c.Request.Context(), c.Param("sid"), middleware.GetOperator(c)))
}

// DecideRequest 审核决定请求，驳回时 opinion 为驳回原因
type DecideRequest struct {
	Approve bool   `json:"approve"`
	Opinion string `json:"opinion"`
}

// Decide 审核通过或驳回
// POST /api/v1/screens/:sid/decide
func (h *ScreenHandler) Decide(c *gin.Context) {
	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}
	h.reply(c)(h.console.Decide(c.Request.Context(), c.Param("sid"), req.Approve, req.Opinion, middleware.GetOperator(c)))
}

// Submit 提交审核
// POST /api/v1/screens/:sid/submit/:id
func (h *ScreenHandler) Submit(c *gin.Context) {
	h.reply(c)(h.console.Submit(c.Request.Context(), c.Param("sid"), c.Param("id"), middleware.GetOperator(c)))
}

// DeleteItem 删除资源
// DELETE /api/v1/screens/:sid/items/:id
func (h *ScreenHandler) DeleteItem(c *gin.Context) {
	h.reply(c)(h.console.DeleteItem(c.Request.Context(), c.Param("sid"), c.Param("id"), middleware.GetOperator(c)))
}

func (h *ScreenHandler) reply(c *gin.Context) func(*service.ScreenView, error) {
	return func(view *service.ScreenView, err error) {
		if err != nil {
			respondError(c, err)
			return
		}
		response.Success(c, view)
	}
}
