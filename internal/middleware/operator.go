package middleware

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// OperatorHeader 操作人请求头，不做身份校验
	OperatorHeader = "X-Operator"
	// OperatorKey 操作人在上下文中的键
	OperatorKey = "operator"
)

// Operator 从请求头读取操作人，缺省时使用默认操作人
// 请求头中的中文需要百分号编码，"+" 按原样保留
func Operator(defaultOperator string) gin.HandlerFunc {
	return func(c *gin.Context) {
		operator := strings.TrimSpace(c.GetHeader(OperatorHeader))
		if decoded, err := url.PathUnescape(operator); err == nil {
			operator = strings.TrimSpace(decoded)
		}
		if operator == "" {
			operator = defaultOperator
		}
		c.Set(OperatorKey, operator)
		c.Next()
	}
}

// GetOperator 获取当前操作人
func GetOperator(c *gin.Context) string {
	return c.GetString(OperatorKey)
}
