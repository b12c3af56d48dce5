// Package form 新增和编辑表单的草稿模型
package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pu-ac-cn/geo-console/internal/model"
	"github.com/pu-ac-cn/geo-console/internal/review"
)

// Mode 表单模式
type Mode string

// 表单模式常量
const (
	ModeAdd  Mode = "add"
	ModeEdit Mode = "edit"
)

// 表单字段名
const (
	FieldName        = "name"
	FieldCategory    = "category"
	FieldType        = "type"
	FieldDescription = "description"
	FieldThumbnail   = "thumbnail"
	FieldURL         = "url"
	FieldCopyright   = "copyright"

	attributePrefix = "attributes."
)

// 错误定义
var (
	ErrUnknownField      = fmt.Errorf("%w: 未知的表单字段", review.ErrValidation)
	ErrLayerIndex        = fmt.Errorf("%w: 图层序号超出范围", review.ErrValidation)
	ErrLayersUnsupported = fmt.Errorf("%w: 该类别不包含图层信息", review.ErrValidation)
	ErrModeMismatch      = errors.New("表单模式不匹配")
)

// Fields 表单字段值
type Fields struct {
	Name        string            `json:"name"`
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

func (f Fields) clone() Fields {
	out := f
	out.Tags = f.Tags.Clone()
	out.Layers = f.Layers.Clone()
	out.Attributes = f.Attributes.Clone()
	return out
}

// Draft 表单草稿
// 草稿是资源的独立副本，提交前的修改不会影响列表中的资源
type Draft struct {
	Mode     Mode               `json:"mode"`
	Kind     model.ResourceKind `json:"kind"`
	TargetID string             `json:"target_id,omitempty"`
	Version  int64              `json:"version,omitempty"`
	Initial  Fields             `json:"initial"`
	Current  Fields             `json:"current"`
}

// NewAddDraft 创建新增表单，图层信息默认一行空记录
func NewAddDraft(kind model.ResourceKind) *Draft {
	f := Fields{}
	if usesLayers(kind) {
		f.Layers = model.LayerList{{}}
	}
	return &Draft{
		Mode:    ModeAdd,
		Kind:    kind,
		Initial: f,
		Current: f.clone(),
	}
}

// NewEditDraft 从资源深拷贝创建编辑表单
func NewEditDraft(item *model.Resource) *Draft {
	f := Fields{
		Name:        item.Name,
		Category:    item.Category,
		Type:        item.Type,
		Description: item.Description,
		Thumbnail:   item.Thumbnail,
		URL:         item.URL,
		Copyright:   item.Copyright,
		Tags:        item.Tags.Clone(),
		Layers:      item.Layers.Clone(),
		Attributes:  item.Attributes.Clone(),
	}
	if usesLayers(item.Kind) && len(f.Layers) == 0 {
		f.Layers = model.LayerList{{}}
	}
	return &Draft{
		Mode:     ModeEdit,
		Kind:     item.Kind,
		TargetID: item.ID,
		Version:  item.Version,
		Initial:  f,
		Current:  f.clone(),
	}
}

// Clone 深拷贝草稿
func (d *Draft) Clone() *Draft {
	out := *d
	out.Initial = d.Initial.clone()
	out.Current = d.Current.clone()
	return &out
}

func usesLayers(kind model.ResourceKind) bool {
	d, ok := model.DescriptorOf(kind)
	return ok && d.UsesLayers
}

// Set 修改单个字段，属性字段使用 attributes.<key>
func (d *Draft) Set(field, value string) error {
	switch field {
	case FieldName:
		d.Current.Name = value
	case FieldCategory:
		d.Current.Category = value
	case FieldType:
		d.Current.Type = value
	case FieldDescription:
		d.Current.Description = value
	case FieldThumbnail:
		d.Current.Thumbnail = value
	case FieldURL:
		d.Current.URL = value
	case FieldCopyright:
		d.Current.Copyright = value
	default:
		key, ok := strings.CutPrefix(field, attributePrefix)
		if !ok || key == "" {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		desc, _ := model.DescriptorOf(d.Kind)
		if desc == nil || !desc.AllowsAttribute(key) {
			return fmt.Errorf("%w: %s", review.ErrUnknownAttribute, key)
		}
		if d.Current.Attributes == nil {
			d.Current.Attributes = model.StringMap{}
		}
		d.Current.Attributes[key] = value
	}
	return nil
}

// SetTags 替换标签
func (d *Draft) SetTags(tags []string) {
	out := make(model.StringSlice, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	d.Current.Tags = out
}

// AddLayer 追加一行空图层
func (d *Draft) AddLayer() error {
	if !usesLayers(d.Kind) {
		return ErrLayersUnsupported
	}
	d.Current.Layers = append(d.Current.Layers, model.Layer{})
	return nil
}

// RemoveLayer 删除图层，至少保留一行
func (d *Draft) RemoveLayer(index int) error {
	if !usesLayers(d.Kind) {
		return ErrLayersUnsupported
	}
	if index < 0 || index >= len(d.Current.Layers) {
		return ErrLayerIndex
	}
	if len(d.Current.Layers) <= 1 {
		return nil
	}
	layers := make(model.LayerList, 0, len(d.Current.Layers)-1)
	layers = append(layers, d.Current.Layers[:index]...)
	layers = append(layers, d.Current.Layers[index+1:]...)
	d.Current.Layers = layers
	return nil
}

// UpdateLayer 修改图层
func (d *Draft) UpdateLayer(index int, layer model.Layer) error {
	if !usesLayers(d.Kind) {
		return ErrLayersUnsupported
	}
	if index < 0 || index >= len(d.Current.Layers) {
		return ErrLayerIndex
	}
	d.Current.Layers[index] = layer
	return nil
}

// Reset 恢复到打开表单时的内容
func (d *Draft) Reset() {
	d.Current = d.Initial.clone()
}

// Dirty 是否有未保存的修改
func (d *Draft) Dirty() bool {
	a, b := d.Initial, d.Current
	if a.Name != b.Name || a.Category != b.Category || a.Type != b.Type ||
		a.Description != b.Description || a.Thumbnail != b.Thumbnail ||
		a.URL != b.URL || a.Copyright != b.Copyright {
		return true
	}
	if len(a.Tags) != len(b.Tags) || len(a.Layers) != len(b.Layers) || len(a.Attributes) != len(b.Attributes) {
		return true
	}
	for i := range a.Tags {
		if a.Tags[i] != b.Tags[i] {
			return true
		}
	}
	for i := range a.Layers {
		if a.Layers[i] != b.Layers[i] {
			return true
		}
	}
	for k, v := range a.Attributes {
		if bv, ok := b.Attributes[k]; !ok || bv != v {
			return true
		}
	}
	return false
}

// Validate 校验表单
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Current.Name) == "" {
		return review.ErrNameEmpty
	}
	return nil
}

// layers 去掉全空的图层行
func (d *Draft) layers() model.LayerList {
	out := model.LayerList{}
	for _, l := range d.Current.Layers {
		if strings.TrimSpace(l.Name) == "" && strings.TrimSpace(l.Type) == "" && strings.TrimSpace(l.Desc) == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Patch 编辑模式下生成修改内容
func (d *Draft) Patch() (model.ResourcePatch, error) {
	if d.Mode != ModeEdit {
		return model.ResourcePatch{}, ErrModeMismatch
	}
	if err := d.Validate(); err != nil {
		return model.ResourcePatch{}, err
	}
	f := d.Current.clone()
	p := model.ResourcePatch{
		Name:        &f.Name,
		Category:    &f.Category,
		Type:        &f.Type,
		Description: &f.Description,
		Thumbnail:   &f.Thumbnail,
		URL:         &f.URL,
		Copyright:   &f.Copyright,
		Tags:        f.Tags,
		Attributes:  f.Attributes,
	}
	if p.Tags == nil {
		p.Tags = model.StringSlice{}
	}
	if usesLayers(d.Kind) {
		p.Layers = d.layers()
	}
	return p, nil
}

// Build 新增模式下生成草稿资源
func (d *Draft) Build(submitter string) (*model.Resource, error) {
	if d.Mode != ModeAdd {
		return nil, ErrModeMismatch
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	f := d.Current.clone()
	item := &model.Resource{
		Kind:        d.Kind,
		Name:        strings.TrimSpace(f.Name),
		Category:    f.Category,
		Type:        f.Type,
		Description: f.Description,
		Thumbnail:   f.Thumbnail,
		URL:         f.URL,
		Copyright:   f.Copyright,
		Tags:        f.Tags,
		Attributes:  f.Attributes,
		Status:      model.StatusDraft,
		Submitter:   submitter,
	}
	if usesLayers(d.Kind) {
		item.Layers = d.layers()
	}
	if err := review.Validate(item); err != nil {
		return nil, err
	}
	return item, nil
}
