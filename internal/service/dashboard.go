package service

import (
	"context"
	"math"
	"strings"

	"github.com/pu-ac-cn/geo-console/internal/listview"
	"github.com/pu-ac-cn/geo-console/internal/model"
)

// 图表配色
var (
	kindColors      = []string{"#3B82F6", "#6366F1", "#94A3B8", "#0EA5E9"}
	statusColors    = []string{"#94A3B8", "#F59E0B", "#10B981", "#EF4444"}
	publishedColors = []string{"#F59E0B", "#FBBF24", "#FEF3C7", "#D97706"}
)

// DashboardService 首页汇总服务接口
type DashboardService interface {
	Summary(ctx context.Context) (*model.Dashboard, error)
}

type dashboardService struct {
	resources ResourceService
}

// NewDashboardService 创建首页汇总服务
func NewDashboardService(resources ResourceService) DashboardService {
	return &dashboardService{resources: resources}
}

// Summary 统计卡片和各类占比
func (s *dashboardService) Summary(ctx context.Context) (*model.Dashboard, error) {
	kinds := model.Kinds()
	perKind := make([]listview.Stats, len(kinds))
	var all listview.Stats

	for i, kind := range kinds {
		stats, err := s.resources.Stats(ctx, kind, listview.ScopeAll)
		if err != nil {
			return nil, err
		}
		perKind[i] = stats
		all.Total += stats.Total
		all.Draft += stats.Draft
		all.Pending += stats.Pending
		all.Approved += stats.Approved
		all.Rejected += stats.Rejected
	}

	d := &model.Dashboard{
		Cards: []model.StatCard{
			{Label: "总资源数据", Value: int64(all.Total), Color: "blue"},
			{Label: "总产品数", Value: int64(all.Approved), Color: "emerald"},
			{Label: "待审核", Value: int64(all.Pending), Color: "orange"},
			{Label: "已驳回", Value: int64(all.Rejected), Color: "green"},
		},
	}

	total := make([]int64, len(kinds))
	published := make([]int64, len(kinds))
	labels := make([]string, len(kinds))
	for i, kind := range kinds {
		desc, _ := model.DescriptorOf(kind)
		labels[i] = strings.TrimSuffix(desc.Title, "资源")
		total[i] = int64(perKind[i].Total)
		published[i] = int64(perKind[i].Approved)
	}
	d.KindShare = Share(labels, total, kindColors)
	d.PublishedKind = Share(labels, published, publishedColors)

	statusLabels := make([]string, 0, 4)
	for _, st := range model.AllStatuses() {
		statusLabels = append(statusLabels, st.Label())
	}
	d.StatusShare = Share(statusLabels,
		[]int64{int64(all.Draft), int64(all.Pending), int64(all.Approved), int64(all.Rejected)},
		statusColors)

	return d, nil
}

// Share 计算占比，百分比保留一位小数，总数为 0 时占比均为 0
func Share(labels []string, values []int64, colors []string) []model.SummaryTuple {
	var sum int64
	for _, v := range values {
		sum += v
	}

	out := make([]model.SummaryTuple, 0, len(values))
	for i, v := range values {
		t := model.SummaryTuple{Label: labels[i], Value: v}
		if len(colors) > 0 {
			t.Color = colors[i%len(colors)]
		}
		if sum > 0 {
			t.Percentage = math.Round(float64(v)*1000/float64(sum)) / 10
		}
		out = append(out, t)
	}
	return out
}
