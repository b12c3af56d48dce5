// Package metrics Prometheus 指标
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 流转结果标签
const (
	ResultSuccess    = "success"
	ResultInvalid    = "invalid_transition"
	ResultValidation = "validation_failed"
	ResultConflict   = "version_conflict"
	ResultError      = "error"
)

var (
	// HTTPRequestsTotal HTTP 请求数
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geo_console_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTPRequestDuration HTTP 请求耗时
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "geo_console_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTPActiveRequests 处理中的请求数
	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "geo_console_http_active_requests",
			Help: "Number of in-flight HTTP requests",
		},
	)

	// ReviewTransitionsTotal 审核流转次数
	ReviewTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geo_console_review_transitions_total",
			Help: "Total number of review state machine operations",
		},
		[]string{"kind", "action", "result"},
	)

	// NoticesTotal 页面提示数
	NoticesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geo_console_notices_total",
			Help: "Total number of notices pushed to console screens",
		},
		[]string{"level"},
	)
)

// RecordHTTPRequest 记录 HTTP 请求
func RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)

	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

// RecordTransition 记录审核流转
func RecordTransition(kind, action, result string) {
	ReviewTransitionsTotal.WithLabelValues(kind, action, result).Inc()
}

// RecordNotice 记录页面提示
func RecordNotice(level string) {
	NoticesTotal.WithLabelValues(level).Inc()
}

// Handler 指标导出
func Handler() http.Handler {
	return promhttp.Handler()
}
