package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"nomic_garden/pkg/logger"
)

// RequestLogger 是記錄每個請求的 Gin 中間件，輸出結構化日誌
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := logger.Get().Info()
		if c.Writer.Status() >= 500 {
			event = logger.Get().Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}
