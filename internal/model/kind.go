package model

// ResourceKind 资源类别
type ResourceKind string

// 资源类别常量
const (
	KindData    ResourceKind = "data"    // 数据资源
	KindService ResourceKind = "service" // 服务资源
	KindApp     ResourceKind = "app"     // 应用资源
	KindMap     ResourceKind = "map"     // 地图资源
)

// 变体属性键
const (
	AttrCoordinateSystem = "coordinate_system" // 坐标系
	AttrServiceMethod    = "service_method"    // 服务标准
	AttrZoomLevel        = "zoom_level"        // 缩放级别
	AttrResolution       = "resolution"        // 分辨率
	AttrDataFormat       = "data_format"       // 数据格式
	AttrProtocol         = "protocol"          // 接口协议
	AttrEndpointVersion  = "endpoint_version"  // 接口版本
	AttrPlatform         = "platform"          // 运行平台
	AttrAppVersion       = "app_version"       // 应用版本
)

// KindDescriptor 资源类别描述，驱动列表、表单和审核页面
type KindDescriptor struct {
	Kind         ResourceKind `json:"kind"`
	Title        string       `json:"title"`         // 资源管理页标题
	ReviewTitle  string       `json:"review_title"`  // 审核页标题
	ProductTitle string       `json:"product_title"` // 产品页标题
	Categories   []string     `json:"categories"`    // 类目下拉选项
	Types        []string     `json:"types"`         // 类型下拉选项
	Attributes   []string     `json:"attributes"`    // 允许的变体属性
	UsesLayers   bool         `json:"uses_layers"`   // 是否包含图层信息
}

var kindOrder = []ResourceKind{KindData, KindService, KindApp, KindMap}

var kindDescriptors = map[ResourceKind]*KindDescriptor{
	KindData: {
		Kind:         KindData,
		Title:        "数据资源",
		ReviewTitle:  "数据审核",
		ProductTitle: "数据产品",
		Categories:   []string{"卫星影像", "无人机数据", "自然资源", "生态环境", "交通运输"},
		Types:        []string{"栅格数据", "矢量数据", "表格数据", "点云数据"},
		Attributes:   []string{AttrCoordinateSystem, AttrResolution, AttrDataFormat},
	},
	KindService: {
		Kind:         KindService,
		Title:        "服务资源",
		ReviewTitle:  "服务审核",
		ProductTitle: "服务产品",
		Categories:   []string{"算子服务", "数据服务", "地图服务", "分析服务"},
		Types:        []string{"REST API", "WMS", "WMTS", "WFS"},
		Attributes:   []string{AttrProtocol, AttrEndpointVersion},
	},
	KindApp: {
		Kind:         KindApp,
		Title:        "应用资源",
		ReviewTitle:  "应用审核",
		ProductTitle: "应用产品",
		Categories:   []string{"智慧政务", "应急管理", "数字城市", "低空经济"},
		Types:        []string{"Web应用", "移动应用", "桌面应用"},
		Attributes:   []string{AttrPlatform, AttrAppVersion},
	},
	KindMap: {
		Kind:         KindMap,
		Title:        "地图资源",
		ReviewTitle:  "地图审核",
		ProductTitle: "地图产品",
		Categories:   []string{"基础底图", "专题地图", "三维地图", "影像地图", "室内地图"},
		Types:        []string{"矢量瓦片", "栅格瓦片", "WMS服务", "3D Tiles"},
		Attributes:   []string{AttrCoordinateSystem, AttrServiceMethod, AttrZoomLevel},
		UsesLayers:   true,
	},
}

// Kinds 返回全部资源类别
func Kinds() []ResourceKind {
	out := make([]ResourceKind, len(kindOrder))
	copy(out, kindOrder)
	return out
}

// ParseKind 解析资源类别
func ParseKind(v string) (ResourceKind, bool) {
	k := ResourceKind(v)
	_, ok := kindDescriptors[k]
	return k, ok
}

// DescriptorOf 获取资源类别描述
func DescriptorOf(kind ResourceKind) (*KindDescriptor, bool) {
	d, ok := kindDescriptors[kind]
	return d, ok
}

// Descriptors 返回全部资源类别描述
func Descriptors() []*KindDescriptor {
	out := make([]*KindDescriptor, 0, len(kindOrder))
	for _, k := range kindOrder {
		out = append(out, kindDescriptors[k])
	}
	return out
}

// AllowsAttribute 检查变体属性是否属于该类别
func (d *KindDescriptor) AllowsAttribute(key string) bool {
	for _, a := range d.Attributes {
		if a == key {
			return true
		}
	}
	return false
}
