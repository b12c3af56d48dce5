package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pu-ac-cn/geo-console/pkg/response"
)

// HealthCheck 依赖组件的健康检查
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	checks []HealthCheck
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health 检查服务及依赖状态，任一依赖异常时 status 为 degraded
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	result := gin.H{}
	for _, check := range h.checks {
		state := "ok"
		if err := check.Ping(ctx); err != nil {
			state = "error"
			status = "degraded"
		}
		result[check.Name] = state
	}
	result["status"] = status
	result["time"] = time.Now().Format(time.RFC3339)

	response.Success(c, result)
}

// Ping 存活探测
// GET /api/v1/ping
func (h *HealthHandler) Ping(c *gin.Context) {
	response.Success(c, gin.H{"message": "pong"})
}
