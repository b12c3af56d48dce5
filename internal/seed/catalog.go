// Package seed 演示数据
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pu-ac-cn/geo-console/internal/model"
	"github.com/pu-ac-cn/geo-console/internal/repository"
)

func at(v string) *time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", v, time.Local)
	if err != nil {
		panic(err)
	}
	return &t
}

// catalogEpoch 演示数据的创建时间起点，按目录顺序每条递增一分钟
var catalogEpoch = time.Date(2023, 5, 1, 8, 0, 0, 0, time.Local)

func item(id string, kind model.ResourceKind, r model.Resource) *model.Resource {
	r.ID = id
	r.Kind = kind
	return &r
}

// Catalog 演示资源目录，地图资源与控制台原型中的数据一致
// 创建时间与目录顺序一致，内存和数据库列出的顺序相同
func Catalog() []*model.Resource {
	items := catalog()
	for i, r := range items {
		r.CreatedAt = catalogEpoch.Add(time.Duration(i) * time.Minute)
	}
	return items
}

func catalog() []*model.Resource {
	return []*model.Resource{
		item("1", model.KindMap, model.Resource{
			Name:          "天地图·湖北矢量底图",
			Category:      "基础底图",
			Type:          "矢量瓦片",
			Description:   "湖北省最新全要素矢量电子地图，包含水系、居民地、交通网等基础地理要素。",
			Status:        model.StatusApproved,
			Submitter:     "地图中心",
			SubmitTime:    at("2023-06-15 09:23"),
			PublishTime:   at("2023-06-15 09:23"),
			ProcessResult: "数据完整性校验通过，图层属性字段规范，准予发布。",
			ReviewedBy:    "李主任",
			ReviewedAt:    at("2023-06-15 09:23"),
			Thumbnail:     "https://images.unsplash.com/photo-1524661135-423995f22d0b?q=80&w=400&h=300&auto=format&fit=crop",
			URL:           "https://map.example.com/hubei/vector",
			Copyright:     "版权所有 © 湖北省测绘地理信息局",
			Tags:          model.StringSlice{"矢量", "湖北", "电子地图"},
			Layers: model.LayerList{
				{Name: "居民地", Type: "Polygon", Desc: "全省居民地分布"},
				{Name: "路网", Type: "LineString", Desc: "高速、国道、省道及县乡道"},
			},
			Attributes: model.StringMap{
				model.AttrServiceMethod:    "WMTS服务",
				model.AttrCoordinateSystem: "CGCS2000",
				model.AttrZoomLevel:        "L1 - L18",
			},
		}),
		item("2", model.KindMap, model.Resource{
			Name:        "武汉市影像电子地图",
			Category:    "影像地图",
			Type:        "栅格瓦片",
			Description: "基于0.5米分辨率航空影像制作的武汉市数字正射影像图(DOM)。",
			Status:      model.StatusPendingReview,
			Submitter:   "张工",
			SubmitTime:  at("2023-06-20 14:12"),
			Thumbnail:   "https://images.unsplash.com/photo-1477959858617-67f85cf4f1df?q=80&w=400&h=300&auto=format&fit=crop",
			Layers: model.LayerList{
				{Name: "影像底图", Type: "Raster", Desc: "全域0.5米影像"},
			},
			Attributes: model.StringMap{
				model.AttrServiceMethod:    "XYZ Tiles",
				model.AttrCoordinateSystem: "Web Mercator",
				model.AttrZoomLevel:        "L10 - L20",
			},
		}),
		item("3", model.KindMap, model.Resource{
			Name:        "光谷中心城三维白模",
			Category:    "三维地图",
			Type:        "3D Tiles",
			Description: "光谷中心城区域L1级建筑白模数据，支持Cesium等三维引擎加载。",
			Status:      model.StatusDraft,
			Submitter:   "王组长",
			SubmitTime:  at("2023-06-10 16:45"),
			Thumbnail:   "https://images.unsplash.com/photo-1480714378408-67cf0d13bc1b?q=80&w=400&h=300&auto=format&fit=crop",
			Layers: model.LayerList{
				{Name: "建筑白模", Type: "3D Model", Desc: "L1级建筑模型"},
			},
		}),
		item("4", model.KindMap, model.Resource{
			Name:          "长江流域水系专题图",
			Category:      "专题地图",
			Type:          "WMS服务",
			Description:   "展示长江流域干流及主要支流分布、水文站点位置的专题地图服务。",
			Status:        model.StatusRejected,
			Submitter:     "赵科长",
			SubmitTime:    at("2023-05-20 09:00"),
			ProcessResult: "部分支流标注名称有误，且图例配置不规范，请修正后重新提交。",
			ReviewedBy:    "李主任",
			ReviewedAt:    at("2023-05-22 10:30"),
			Thumbnail:     "https://images.unsplash.com/photo-1451187580459-43490279c0fa?q=80&w=400&h=300&auto=format&fit=crop",
			Layers: model.LayerList{
				{Name: "水系", Type: "LineString", Desc: "主要河流"},
				{Name: "水文站", Type: "Point", Desc: "监测站点"},
			},
		}),

		item("data-1", model.KindData, model.Resource{
			Name:        "湖北省高分二号卫星影像",
			Category:    "卫星影像",
			Type:        "栅格数据",
			Description: "2023年度湖北全域高分二号融合影像。",
			Status:      model.StatusApproved,
			Submitter:   "遥感中心",
			SubmitTime:  at("2023-07-01 10:00"),
			PublishTime: at("2023-07-03 15:20"),
			ReviewedBy:  "李主任",
			ReviewedAt:  at("2023-07-03 15:20"),
			Attributes: model.StringMap{
				model.AttrResolution:       "0.8m",
				model.AttrCoordinateSystem: "CGCS2000",
				model.AttrDataFormat:       "GeoTIFF",
			},
		}),
		item("data-2", model.KindData, model.Resource{
			Name:        "武汉市无人机倾斜摄影数据",
			Category:    "无人机数据",
			Type:        "点云数据",
			Description: "东湖高新区倾斜摄影原始数据及点云成果。",
			Status:      model.StatusPendingReview,
			Submitter:   "张工",
			SubmitTime:  at("2023-07-12 09:30"),
			Attributes:  model.StringMap{model.AttrDataFormat: "LAS"},
		}),
		item("data-3", model.KindData, model.Resource{
			Name:        "长江中游湿地分布数据",
			Category:    "生态环境",
			Type:        "矢量数据",
			Description: "湿地斑块矢量数据，含类型与面积属性。",
			Status:      model.StatusDraft,
			Submitter:   "生态所",
			SubmitTime:  at("2023-07-15 14:00"),
		}),

		item("service-1", model.KindService, model.Resource{
			Name:        "影像变化检测算子",
			Category:    "算子服务",
			Type:        "REST API",
			Description: "输入两期影像，输出变化图斑。",
			Status:      model.StatusApproved,
			Submitter:   "算法组",
			SubmitTime:  at("2023-06-01 11:00"),
			PublishTime: at("2023-06-02 16:00"),
			ReviewedBy:  "李主任",
			ReviewedAt:  at("2023-06-02 16:00"),
			URL:         "https://api.example.com/ops/change-detection",
			Attributes: model.StringMap{
				model.AttrProtocol:        "HTTPS",
				model.AttrEndpointVersion: "v1",
			},
		}),
		item("service-2", model.KindService, model.Resource{
			Name:          "湖北省行政区划WFS服务",
			Category:      "地图服务",
			Type:          "WFS",
			Description:   "省市县三级行政区划要素服务。",
			Status:        model.StatusRejected,
			Submitter:     "赵科长",
			SubmitTime:    at("2023-06-18 10:10"),
			ProcessResult: "服务地址无法访问，请确认后重新提交。",
			ReviewedBy:    "李主任",
			ReviewedAt:    at("2023-06-19 09:00"),
		}),

		item("app-1", model.KindApp, model.Resource{
			Name:        "城市应急指挥一张图",
			Category:    "应急管理",
			Type:        "Web应用",
			Description: "整合应急资源与实时监测数据的指挥调度应用。",
			Status:      model.StatusPendingReview,
			Submitter:   "应急项目组",
			SubmitTime:  at("2023-07-08 17:30"),
			Attributes: model.StringMap{
				model.AttrPlatform:   "Web",
				model.AttrAppVersion: "2.1.0",
			},
		}),
		item("app-2", model.KindApp, model.Resource{
			Name:        "低空航线规划助手",
			Category:    "低空经济",
			Type:        "移动应用",
			Description: "无人机航线规划与空域查询。",
			Status:      model.StatusDraft,
			Submitter:   "王组长",
			SubmitTime:  at("2023-07-20 08:45"),
			Attributes:  model.StringMap{model.AttrPlatform: "Android"},
		}),
	}
}

// Load 写入演示数据，已存在的资源跳过
func Load(ctx context.Context, repo repository.ResourceRepository) (int, error) {
	var n int
	for _, r := range Catalog() {
		err := repo.Save(ctx, r)
		if errors.Is(err, repository.ErrResourceExists) {
			continue
		}
		if err != nil {
			return n, fmt.Errorf("写入演示数据 %s 失败: %w", r.ID, err)
		}
		n++
	}
	return n, nil
}
