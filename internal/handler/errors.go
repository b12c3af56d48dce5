// Package handler HTTP 处理器
package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pu-ac-cn/geo-console/internal/console"
	"github.com/pu-ac-cn/geo-console/internal/form"
	"github.com/pu-ac-cn/geo-console/internal/listview"
	"github.com/pu-ac-cn/geo-console/internal/logging"
	"github.com/pu-ac-cn/geo-console/internal/model"
	"github.com/pu-ac-cn/geo-console/internal/repository"
	"github.com/pu-ac-cn/geo-console/internal/review"
	"github.com/pu-ac-cn/geo-console/internal/service"
	"github.com/pu-ac-cn/geo-console/internal/storage"
	"github.com/pu-ac-cn/geo-console/pkg/response"
	"go.uber.org/zap"
)

// ErrorCode 错误转业务码
func ErrorCode(err error) int {
	var te *review.TransitionError
	switch {
	case errors.As(err, &te), errors.Is(err, review.ErrInvalidTransition):
		return response.CodeInvalidTransition
	case errors.Is(err, review.ErrValidation):
		return response.CodeValidation
	case errors.Is(err, console.ErrInvalidView), errors.Is(err, form.ErrModeMismatch):
		return response.CodeInvalidView
	case errors.Is(err, repository.ErrResourceNotFound):
		return response.CodeResourceNotFound
	case errors.Is(err, service.ErrKindNotFound):
		return response.CodeKindNotFound
	case errors.Is(err, console.ErrRouteNotFound):
		return response.CodeRouteNotFound
	case errors.Is(err, service.ErrScreenNotFound):
		return response.CodeScreenNotFound
	case errors.Is(err, service.ErrIDEmpty):
		return response.CodeMissingParam
	case errors.Is(err, repository.ErrVersionConflict):
		return response.CodeVersionConflict
	case errors.Is(err, repository.ErrResourceExists):
		return response.CodeResourceExists
	case errors.Is(err, storage.ErrDisabled):
		return response.CodeUnavailable
	default:
		return response.CodeServerError
	}
}

// respondError 按错误类型返回响应，服务器错误不暴露内部信息
func respondError(c *gin.Context, err error) {
	code := ErrorCode(err)
	if code == response.CodeServerError {
		requestID, _ := c.Get("request_id")
		logging.L().Error("请求处理失败",
			zap.Any("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		response.Error(c, code)
		return
	}
	response.ErrorWithMsg(c, code, err.Error())
}

// kindParam 解析路径中的资源类别
func kindParam(c *gin.Context) (model.ResourceKind, bool) {
	kind, ok := model.ParseKind(c.Param("kind"))
	if !ok {
		response.Error(c, response.CodeKindNotFound)
		return "", false
	}
	return kind, true
}

// pageParams 解析分页参数，page 从 0 开始
func pageParams(c *gin.Context, defaultSize int) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultSize)))
	return page, pageSize
}

// queryParams 解析列表筛选条件
func queryParams(c *gin.Context) (listview.Query, bool) {
	var q listview.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidFormat, "参数错误: "+err.Error())
		return q, false
	}
	return q, true
}
