package handler

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/pu-ac-cn/geo-console/internal/listview"
	"github.com/pu-ac-cn/geo-console/internal/middleware"
	"github.com/pu-ac-cn/geo-console/internal/model"
	"github.com/pu-ac-cn/geo-console/internal/service"
	"github.com/pu-ac-cn/geo-console/pkg/response"
)

// 缩略图大小上限
const maxThumbnailSize = 5 << 20

// ResourceHandler 资源管理处理器
type ResourceHandler struct {
	resources service.ResourceService
	export    service.ExportService
	pageSize  int
}

// NewResourceHandler 创建资源管理处理器
func NewResourceHandler(resources service.ResourceService, export service.ExportService, pageSize int) *ResourceHandler {
	return &ResourceHandler{resources: resources, export: export, pageSize: pageSize}
}

// list 按范围分页查询，资源、审核、产品列表共用
func list(c *gin.Context, resources service.ResourceService, scope listview.Scope, defaultSize int) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	q, ok := queryParams(c)
	if !ok {
		return
	}
	page, pageSize := pageParams(c, defaultSize)

	result, err := resources.List(c.Request.Context(), kind, scope, q, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}

// ListResources 获取资源列表
// GET /api/v1/resources/:kind
func (h *ResourceHandler) ListResources(c *gin.Context) {
	list(c, h.resources, listview.ScopeAll, h.pageSize)
}

// Stats 获取统计卡片
// GET /api/v1/resources/:kind/stats?scope=all|review|published
func (h *ResourceHandler) Stats(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	scope := listview.Scope(c.DefaultQuery("scope", string(listview.ScopeAll)))

	stats, err := h.resources.Stats(c.Request.Context(), kind, scope)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, stats)
}

// Export 按筛选条件导出 Excel
// GET /api/v1/resources/:kind/export
func (h *ResourceHandler) Export(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	q, ok := queryParams(c)
	if !ok {
		return
	}
	scope := listview.Scope(c.DefaultQuery("scope", string(listview.ScopeAll)))

	f, filename, err := h.export.Export(c.Request.Context(), kind, scope, q)
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", attachment(kind, filename))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		respondError(c, err)
	}
}

// GetResource 获取资源详情
// GET /api/v1/resources/:kind/:id
func (h *ResourceHandler) GetResource(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}

	detail, err := h.resources.Detail(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, detail)
}

// CreateResourceRequest 新建资源请求
type CreateResourceRequest struct {
	ID          string            `json:"id"`
	Name        string            `json:"name" binding:"required"`
	Category    string            `json:"category"`
	Type        string            `json:"type"`
	Description string            `json:"description"`
	Thumbnail   string            `json:"thumbnail"`
	URL         string            `json:"url"`
	Copyright   string            `json:"copyright"`
	Tags        model.StringSlice `json:"tags"`
	Layers      model.LayerList   `json:"layers"`
	Attributes  model.StringMap   `json:"attributes"`
}

// CreateResource 新建草稿
// POST /api/v1/resources/:kind
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}

	item := &model.Resource{
		Kind:        kind,
		Name:        req.Name,
		Category:    req.Category,
		Type:        req.Type,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		URL:         req.URL,
		Copyright:   req.Copyright,
		Tags:        req.Tags,
		Layers:      req.Layers,
		Attributes:  req.Attributes,
	}
	item.ID = req.ID

	if err := h.resources.Create(c.Request.Context(), item, middleware.GetOperator(c)); err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMsg(c, "创建成功", item)
}

// UpdateResourceRequest 编辑资源请求，version 用于检测并发修改
type UpdateResourceRequest struct {
	Version int64 `json:"version"`
	model.ResourcePatch
}

// UpdateResource 编辑资源
// PUT /api/v1/resources/:kind/:id
func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	var req UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}
	if req.IsEmpty() {
		response.ErrorWithMsg(c, response.CodeMissingParam, "没有需要修改的字段")
		return
	}

	item, err := h.resources.Edit(c.Request.Context(), kind, c.Param("id"), req.Version, req.ResourcePatch, middleware.GetOperator(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMsg(c, "保存成功", item)
}

// DeleteResource 删除资源
// DELETE /api/v1/resources/:kind/:id
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}

	if err := h.resources.Delete(c.Request.Context(), kind, c.Param("id"), middleware.GetOperator(c)); err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}

// SubmitResource 提交审核，已驳回的资源重新提交
// POST /api/v1/resources/:kind/:id/submit
func (h *ResourceHandler) SubmitResource(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}

	item, err := h.resources.Submit(c.Request.Context(), kind, c.Param("id"), middleware.GetOperator(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMsg(c, "提交成功，等待审核", item)
}

// UploadThumbnail 上传缩略图
// POST /api/v1/resources/:kind/:id/thumbnail
func (h *ResourceHandler) UploadThumbnail(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		response.ErrorWithMsg(c, response.CodeMissingParam, "请上传缩略图文件")
		return
	}
	if header.Size > maxThumbnailSize {
		response.ErrorWithMsg(c, response.CodeValidation, "缩略图不能超过 5MB")
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	item, err := h.resources.UploadThumbnail(c.Request.Context(), kind, c.Param("id"), header.Filename, file, header.Size, middleware.GetOperator(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMsg(c, "上传成功", item)
}

// History 获取流转记录
// GET /api/v1/resources/:kind/:id/history
func (h *ResourceHandler) History(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}

	records, err := h.resources.History(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, records)
}

// attachment 下载头，中文文件名按 RFC 5987 编码，filename 只保留 ASCII 作为兼容
func attachment(kind model.ResourceKind, filename string) string {
	fallback := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII || r == '"' || r == '\\' {
			return -1
		}
		return r
	}, filename)
	fallback = string(kind) + "_" + strings.TrimLeft(fallback, "_")
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", fallback, url.PathEscape(filename))
}
