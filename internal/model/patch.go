package model

// ResourcePatch 资源编辑字段，nil 表示不修改
type ResourcePatch struct {
	Name        *string     `json:"name,omitempty"`
	Category    *string     `json:"category,omitempty"`
	Type        *string     `json:"type,omitempty"`
	Description *string     `json:"description,omitempty"`
	Thumbnail   *string     `json:"thumbnail,omitempty"`
	URL         *string     `json:"url,omitempty"`
	Copyright   *string     `json:"copyright,omitempty"`
	Tags        StringSlice `json:"tags,omitempty"`
	Layers      LayerList   `json:"layers,omitempty"`
	Attributes  StringMap   `json:"attributes,omitempty"`
}

// IsEmpty 是否没有任何修改
func (p *ResourcePatch) IsEmpty() bool {
	return p.Name == nil && p.Category == nil && p.Type == nil && p.Description == nil &&
		p.Thumbnail == nil && p.URL == nil && p.Copyright == nil &&
		p.Tags == nil && p.Layers == nil && p.Attributes == nil
}

// ApplyTo 将修改合并到资源上，状态、提交人等审核字段不受影响
func (p *ResourcePatch) ApplyTo(r *Resource) {
	setString(&r.Name, p.Name)
	setString(&r.Category, p.Category)
	setString(&r.Type, p.Type)
	setString(&r.Description, p.Description)
	setString(&r.Thumbnail, p.Thumbnail)
	setString(&r.URL, p.URL)
	setString(&r.Copyright, p.Copyright)
	if p.Tags != nil {
		r.Tags = p.Tags.Clone()
	}
	if p.Layers != nil {
		r.Layers = p.Layers.Clone()
	}
	if p.Attributes != nil {
		if r.Attributes == nil {
			r.Attributes = StringMap{}
		}
		for k, v := range p.Attributes {
			r.Attributes[k] = v
		}
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
