package utils

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ロガーを初期化。HUNT_DEV=1のときは現地デバッグ用に開発フォーマットで出します。
func InitLogger() (*zap.Logger, error) {
	if os.Getenv("HUNT_DEV") == "1" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Gin のミドルウェア用関数で、リクエストのログを取得します。
// トラッカーのpingが5秒間隔で大量に来るため、正常応答のpingはログしません。
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()
		status := c.Writer.Status()
		if path == "/api/tracker/ping" && status == 200 {
			return
		}
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
		)
	}
}
