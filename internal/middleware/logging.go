package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// LoggingMiddleware 请求日志中间件
// 认证通过的请求带上 user_id，便于按用户追请求
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		userID := "-"
		if id := c.GetString("user_id"); id != "" {
			userID = id
		}

		log.Printf("%s %s | status=%d latency=%v user=%s",
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			userID,
		)
	}
}
