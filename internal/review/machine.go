// Package review 资源审核状态机
//
// 所有流转函数都是纯函数：读取一条资源，返回流转后的新副本，不修改入参，
// 也不访问资源集合。调用方负责把结果写回仓储。
package review

import (
	"fmt"
	"strings"
	"time"

	"github.com/pu-ac-cn/geo-console/internal/model"
)

// transitions 状态流转表，删除操作没有目标状态，用空值表示允许
var transitions = map[model.ReviewStatus]map[model.Action]model.ReviewStatus{
	model.StatusDraft: {
		model.ActionSubmit: model.StatusPendingReview,
		model.ActionEdit:   model.StatusDraft,
		model.ActionDelete: "",
	},
	model.StatusPendingReview: {
		model.ActionApprove: model.StatusApproved,
		model.ActionReject:  model.StatusRejected,
	},
	model.StatusApproved: {
		model.ActionEdit:   model.StatusApproved,
		model.ActionDelete: "",
	},
	model.StatusRejected: {
		model.ActionResubmit: model.StatusPendingReview,
		model.ActionEdit:     model.StatusRejected,
		model.ActionDelete:   "",
	},
}

// actionOrder 页面按钮顺序
var actionOrder = []model.Action{
	model.ActionEdit,
	model.ActionDelete,
	model.ActionSubmit,
	model.ActionResubmit,
	model.ActionApprove,
	model.ActionReject,
}

// Can 检查状态下是否允许该操作
func Can(status model.ReviewStatus, action model.Action) bool {
	_, ok := transitions[status][action]
	return ok
}

// Next 计算流转后的状态
func Next(status model.ReviewStatus, action model.Action) (model.ReviewStatus, error) {
	next, ok := transitions[status][action]
	if !ok {
		return status, &TransitionError{Action: action, From: status}
	}
	if next == "" {
		return status, nil
	}
	return next, nil
}

// AvailableActions 返回状态下可执行的操作
func AvailableActions(status model.ReviewStatus) []model.Action {
	var out []model.Action
	for _, a := range actionOrder {
		if Can(status, a) {
			out = append(out, a)
		}
	}
	return out
}

// SubmitActionFor 提交审核时根据当前状态选择首次提交或重新提交
func SubmitActionFor(status model.ReviewStatus) model.Action {
	if status == model.StatusRejected {
		return model.ActionResubmit
	}
	return model.ActionSubmit
}

// SubmitForReview 草稿提交审核
func SubmitForReview(item *model.Resource, now time.Time) (*model.Resource, error) {
	next, err := Next(item.Status, model.ActionSubmit)
	if err != nil {
		return nil, err
	}
	out := item.Clone()
	out.Status = next
	out.SubmitTime = &now
	return out, nil
}

// Resubmit 驳回后修改并重新提交
// 当前审核意见被清空，历史意见保留在流转记录中
func Resubmit(item *model.Resource, now time.Time) (*model.Resource, error) {
	next, err := Next(item.Status, model.ActionResubmit)
	if err != nil {
		return nil, err
	}
	out := item.Clone()
	out.Status = next
	out.SubmitTime = &now
	out.ProcessResult = ""
	out.ReviewedBy = ""
	out.ReviewedAt = nil
	return out, nil
}

// Approve 审核通过，审核意见可以为空
func Approve(item *model.Resource, opinion, reviewer string, now time.Time) (*model.Resource, error) {
	next, err := Next(item.Status, model.ActionApprove)
	if err != nil {
		return nil, err
	}
	out := item.Clone()
	out.Status = next
	out.ProcessResult = strings.TrimSpace(opinion)
	out.ReviewedBy = reviewer
	out.ReviewedAt = &now
	out.PublishTime = &now
	return out, nil
}

// Reject 审核驳回，驳回原因必填
func Reject(item *model.Resource, reason, reviewer string, now time.Time) (*model.Resource, error) {
	next, err := Next(item.Status, model.ActionReject)
	if err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrRejectReasonEmpty
	}
	out := item.Clone()
	out.Status = next
	out.ProcessResult = reason
	out.ReviewedBy = reviewer
	out.ReviewedAt = &now
	return out, nil
}

// CheckDelete 检查是否允许删除，审核中的资源不可删除
func CheckDelete(item *model.Resource) error {
	_, err := Next(item.Status, model.ActionDelete)
	return err
}

// Edit 合并编辑字段，状态保持不变
func Edit(item *model.Resource, patch model.ResourcePatch) (*model.Resource, error) {
	if _, err := Next(item.Status, model.ActionEdit); err != nil {
		return nil, err
	}
	out := item.Clone()
	patch.ApplyTo(out)
	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate 校验资源字段
func Validate(item *model.Resource) error {
	desc, ok := model.DescriptorOf(item.Kind)
	if !ok {
		return ErrUnknownKind
	}
	if strings.TrimSpace(item.Name) == "" {
		return ErrNameEmpty
	}
	for key := range item.Attributes {
		if !desc.AllowsAttribute(key) {
			return fmt.Errorf("%w: %s", ErrUnknownAttribute, key)
		}
	}
	return nil
}
