package model

// SummaryTuple 图表汇总项
type SummaryTuple struct {
	Label      string  `json:"label"`
	Value      int64   `json:"value"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// StatCard 首页统计卡片
type StatCard struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
	Color string `json:"color"`
}

// Dashboard 首页汇总数据
type Dashboard struct {
	Cards         []StatCard     `json:"cards"`
	KindShare     []SummaryTuple `json:"kind_share"`
	StatusShare   []SummaryTuple `json:"status_share"`
	PublishedKind []SummaryTuple `json:"published_kind"`
}
