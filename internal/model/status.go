package model

// ReviewStatus 审核状态
type ReviewStatus string

// 审核状态常量
const (
	StatusDraft         ReviewStatus = "draft"          // 草稿中
	StatusPendingReview ReviewStatus = "pending_review" // 待审核
	StatusApproved      ReviewStatus = "approved"       // 已通过
	StatusRejected      ReviewStatus = "rejected"       // 已驳回
)

var statusLabels = map[ReviewStatus]string{
	StatusDraft:         "草稿中",
	StatusPendingReview: "待审核",
	StatusApproved:      "已通过",
	StatusRejected:      "已驳回",
}

// AllStatuses 返回全部审核状态，顺序与页面筛选下拉一致
func AllStatuses() []ReviewStatus {
	return []ReviewStatus{StatusDraft, StatusPendingReview, StatusApproved, StatusRejected}
}

// Label 状态中文名
func (s ReviewStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Valid 是否为合法状态
func (s ReviewStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Decided 是否已有审核结论（已通过或已驳回）
func (s ReviewStatus) Decided() bool {
	return s == StatusApproved || s == StatusRejected
}

// ParseStatus 解析状态，同时接受状态码和中文名
func ParseStatus(v string) (ReviewStatus, bool) {
	s := ReviewStatus(v)
	if s.Valid() {
		return s, true
	}
	for status, label := range statusLabels {
		if label == v {
			return status, true
		}
	}
	return "", false
}

// Action 操作类型
type Action string

// 操作常量
const (
	ActionCreate   Action = "create"   // 新建
	ActionSubmit   Action = "submit"   // 提交审核
	ActionResubmit Action = "resubmit" // 驳回后重新提交
	ActionApprove  Action = "approve"  // 审核通过
	ActionReject   Action = "reject"   // 审核驳回
	ActionEdit     Action = "edit"     // 编辑
	ActionDelete   Action = "delete"   // 删除
)

var actionLabels = map[Action]string{
	ActionCreate:   "新建",
	ActionSubmit:   "提交审核",
	ActionResubmit: "重新提交",
	ActionApprove:  "通过",
	ActionReject:   "驳回",
	ActionEdit:     "编辑",
	ActionDelete:   "删除",
}

// Label 操作中文名
func (a Action) Label() string {
	if label, ok := actionLabels[a]; ok {
		return label
	}
	return string(a)
}

// IsDecision 是否为审核结论操作
func (a Action) IsDecision() bool {
	return a == ActionApprove || a == ActionReject
}
