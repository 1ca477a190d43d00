package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/am-bush650/student-management-system/pkg/metrics"
)

// Metrics HTTP 请求指标采集中间件
// 以路由模板（FullPath）为 path 标签，避免路径参数导致标签爆炸
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.Observe(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
