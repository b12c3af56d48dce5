package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pu-ac-cn/geo-console/internal/metrics"
)

// Metrics 请求指标中间件，按路由模板聚合
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.HTTPActiveRequests.Inc()
		start := time.Now()

		c.Next()

		metrics.HTTPActiveRequests.Dec()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start))
	}
}
