package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pu-ac-cn/geo-console/internal/console"
	"github.com/pu-ac-cn/geo-console/internal/form"
	"github.com/pu-ac-cn/geo-console/internal/model"
	"github.com/pu-ac-cn/geo-console/internal/repository"
	"github.com/pu-ac-cn/geo-console/internal/review"
	"github.com/pu-ac-cn/geo-console/internal/service"
	"github.com/pu-ac-cn/geo-console/internal/storage"
	"github.com/pu-ac-cn/geo-console/pkg/response"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"状态不允许", &review.TransitionError{Action: model.ActionApprove, From: model.StatusDraft}, response.CodeInvalidTransition},
		{"包装后的状态错误", fmt.Errorf("提交: %w", review.ErrInvalidTransition), response.CodeInvalidTransition},
		{"驳回原因为空", review.ErrRejectReasonEmpty, response.CodeValidation},
		{"未知属性", review.ErrUnknownAttribute, response.CodeValidation},
		{"视图不支持", console.ErrViewUnsupported, response.CodeInvalidView},
		{"表单模式错误", form.ErrModeMismatch, response.CodeInvalidView},
		{"资源不存在", repository.ErrResourceNotFound, response.CodeResourceNotFound},
		{"类别不存在", service.ErrKindNotFound, response.CodeKindNotFound},
		{"页面不存在", console.ErrRouteNotFound, response.CodeRouteNotFound},
		{"会话过期", service.ErrScreenNotFound, response.CodeScreenNotFound},
		{"ID 为空", service.ErrIDEmpty, response.CodeMissingParam},
		{"版本冲突", repository.ErrVersionConflict, response.CodeVersionConflict},
		{"ID 重复", repository.ErrResourceExists, response.CodeResourceExists},
		{"未配置存储", storage.ErrDisabled, response.CodeUnavailable},
		{"其它错误", errors.New("connection reset"), response.CodeServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}
