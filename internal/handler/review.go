package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pu-ac-cn/geo-console/internal/listview"
	"github.com/pu-ac-cn/geo-console/internal/middleware"
	"github.com/pu-ac-cn/geo-console/internal/service"
	"github.com/pu-ac-cn/geo-console/pkg/response"
)

// ReviewHandler 资源审核处理器
type ReviewHandler struct {
	resources service.ResourceService
	pageSize  int
}

// NewReviewHandler 创建资源审核处理器
func NewReviewHandler(resources service.ResourceService, pageSize int) *ReviewHandler {
	return &ReviewHandler{resources: resources, pageSize: pageSize}
}

// ListReviews 获取审核列表，不含草稿
// GET /api/v1/reviews/:kind
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	list(c, h.resources, listview.ScopeReview, h.pageSize)
}

// ApproveRequest 审核通过请求
type ApproveRequest struct {
	Opinion string `json:"opinion"`
}

// Approve 审核通过
// POST /api/v1/reviews/:kind/:id/approve
func (h *ReviewHandler) Approve(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	var req ApproveRequest
	// 审核意见可以为空，允许不带请求体
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
			return
		}
	}

	item, err := h.resources.Approve(c.Request.Context(), kind, c.Param("id"), req.Opinion, middleware.GetOperator(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMsg(c, "审核通过", item)
}

// RejectRequest 驳回请求
type RejectRequest struct {
	Reason string `json:"reason"`
}

// Reject 审核驳回
// POST /api/v1/reviews/:kind/:id/reject
func (h *ReviewHandler) Reject(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}

	item, err := h.resources.Reject(c.Request.Context(), kind, c.Param("id"), req.Reason, middleware.GetOperator(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMsg(c, "已驳回", item)
}

// ProductHandler 产品管理处理器，只展示已通过的资源
type ProductHandler struct {
	resources service.ResourceService
	pageSize  int
}

// NewProductHandler 创建产品管理处理器
func NewProductHandler(resources service.ResourceService, pageSize int) *ProductHandler {
	return &ProductHandler{resources: resources, pageSize: pageSize}
}

// ListProducts 获取产品列表
// GET /api/v1/products/:kind
func (h *ProductHandler) ListProducts(c *gin.Context) {
	list(c, h.resources, listview.ScopePublished, h.pageSize)
}
