package model

// ReviewRecord 审核流转记录，只追加不修改
type ReviewRecord struct {
	BaseModel
	ResourceID string       `gorm:"type:varchar(64);index;not null" json:"resource_id"` // 资源 ID
	Kind       ResourceKind `gorm:"type:varchar(20);not null" json:"kind"`             // 资源类别
	Action     Action       `gorm:"type:varchar(20);not null" json:"action"`           // 操作
	FromStatus ReviewStatus `gorm:"type:varchar(20)" json:"from_status"`               // 操作前状态
	ToStatus   ReviewStatus `gorm:"type:varchar(20)" json:"to_status"`                 // 操作后状态
	Opinion    string       `gorm:"type:text" json:"opinion"`                          // 审核意见或驳回原因
	Operator   string       `gorm:"type:varchar(100)" json:"operator"`                 // 操作人
}

// TableName 指定表名
func (ReviewRecord) TableName() string {
	return "review_records"
}

// Decisions 筛选审核结论记录
func Decisions(records []*ReviewRecord) []*ReviewRecord {
	var out []*ReviewRecord
	for _, rec := range records {
		if rec.Action.IsDecision() {
			out = append(out, rec)
		}
	}
	return out
}
