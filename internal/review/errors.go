package review

import (
	"errors"
	"fmt"

	"github.com/pu-ac-cn/geo-console/internal/model"
)

// 错误定义
var (
	ErrInvalidTransition = errors.New("当前状态不允许该操作")
	ErrValidation        = errors.New("参数校验失败")

	ErrRejectReasonEmpty = fmt.Errorf("%w: 驳回原因不能为空", ErrValidation)
	ErrNameEmpty         = fmt.Errorf("%w: 资源名称不能为空", ErrValidation)
	ErrUnknownKind       = fmt.Errorf("%w: 未知的资源类别", ErrValidation)
	ErrUnknownAttribute  = fmt.Errorf("%w: 该类别不支持此属性", ErrValidation)
)

// TransitionError 非法状态流转
type TransitionError struct {
	Action model.Action
	From   model.ReviewStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s状态下不允许%s", e.From.Label(), e.Action.Label())
}

// Unwrap 支持 errors.Is(err, ErrInvalidTransition)
func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
