package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Resource 可审核资源
// 数据、服务、应用、地图四类资源共用同一结构，变体字段放在 Layers 和 Attributes 中
type Resource struct {
	BaseModel
	Kind          ResourceKind `gorm:"type:varchar(20);index;not null" json:"kind"`              // 资源类别
	Name          string       `gorm:"type:varchar(255);not null" json:"name"`                  // 资源名称
	Category      string       `gorm:"type:varchar(100);index" json:"category"`                 // 所属类目
	Type          string       `gorm:"type:varchar(100)" json:"type"`                           // 资源类型
	Description   string       `gorm:"type:text" json:"description"`                            // 资源描述
	Status        ReviewStatus `gorm:"type:varchar(20);index;default:draft" json:"status"`      // 审核状态
	Submitter     string       `gorm:"type:varchar(100)" json:"submitter"`                      // 提交人
	SubmitTime    *time.Time   `json:"submit_time"`                                             // 最近一次提交时间
	ProcessResult string       `gorm:"type:text" json:"process_result"`                         // 当前审核意见
	ReviewedBy    string       `gorm:"type:varchar(100)" json:"reviewed_by"`                    // 审核人
	ReviewedAt    *time.Time   `json:"reviewed_at"`                                             // 审核时间
	PublishTime   *time.Time   `json:"publish_time"`                                            // 发布时间
	Thumbnail     string       `gorm:"type:varchar(500)" json:"thumbnail"`                      // 缩略图
	URL           string       `gorm:"type:varchar(500)" json:"url"`                            // 服务地址
	Copyright     string       `gorm:"type:varchar(255)" json:"copyright"`                      // 版权信息
	Tags          StringSlice  `gorm:"type:json" json:"tags"`                                   // 标签
	Layers        LayerList    `gorm:"type:json" json:"layers"`                                 // 图层信息
	Attributes    StringMap    `gorm:"type:json" json:"attributes"`                             // 变体属性
	Version       int64        `gorm:"not null;default:1" json:"version"`                       // 乐观锁版本
}

// TableName 指定表名
func (Resource) TableName() string {
	return "resources"
}

// Clone 深拷贝
func (r *Resource) Clone() *Resource {
	if r == nil {
		return nil
	}
	out := *r
	out.SubmitTime = cloneTime(r.SubmitTime)
	out.ReviewedAt = cloneTime(r.ReviewedAt)
	out.PublishTime = cloneTime(r.PublishTime)
	out.Tags = r.Tags.Clone()
	out.Layers = r.Layers.Clone()
	out.Attributes = r.Attributes.Clone()
	return &out
}

// RejectReason 驳回原因，仅已驳回状态有值
func (r *Resource) RejectReason() string {
	if r.Status != StatusRejected {
		return ""
	}
	return r.ProcessResult
}

// Attribute 获取变体属性
func (r *Resource) Attribute(key string) string {
	if r.Attributes == nil {
		return ""
	}
	return r.Attributes[key]
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// Layer 图层信息
type Layer struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Desc string `json:"desc"`
}

// LayerList 图层列表，用于 JSON 存储
type LayerList []Layer

// Clone 拷贝图层列表
func (l LayerList) Clone() LayerList {
	if l == nil {
		return nil
	}
	out := make(LayerList, len(l))
	copy(out, l)
	return out
}

// Value 实现 driver.Valuer 接口
func (l LayerList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan 实现 sql.Scanner 接口
func (l *LayerList) Scan(value interface{}) error {
	return scanJSON(value, l, func() { *l = LayerList{} })
}

// StringSlice 字符串切片类型，用于 JSON 存储
type StringSlice []string

// Clone 拷贝字符串切片
func (s StringSlice) Clone() StringSlice {
	if s == nil {
		return nil
	}
	out := make(StringSlice, len(s))
	copy(out, s)
	return out
}

// Value 实现 driver.Valuer 接口
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan 实现 sql.Scanner 接口
func (s *StringSlice) Scan(value interface{}) error {
	return scanJSON(value, s, func() { *s = StringSlice{} })
}

// StringMap 字符串映射类型，用于 JSON 存储
type StringMap map[string]string

// Clone 拷贝映射
func (m StringMap) Clone() StringMap {
	if m == nil {
		return nil
	}
	out := make(StringMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Value 实现 driver.Valuer 接口
func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return json.Marshal(m)
}

// Scan 实现 sql.Scanner 接口
func (m *StringMap) Scan(value interface{}) error {
	return scanJSON(value, m, func() { *m = StringMap{} })
}

// scanJSON 兼容 PostgreSQL（string）和 MySQL（[]byte）返回的 JSON 列
func scanJSON(value interface{}, dest interface{}, empty func()) error {
	switch v := value.(type) {
	case nil:
		empty()
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("无法将值转换为 JSON")
	}
}
