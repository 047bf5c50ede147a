package middleware

import (
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/forkapi/log"
)

// LoggerConfig 日志中间件配置
type LoggerConfig struct {
	Query     bool        // 是否记录查询串，凭据由日志脱敏钩子处理
	SkipPaths []string    // 跳过记录的路径
	Logger    *log.Logger // 自定义日志记录器
}

// Logger 记录每个请求，API 调用附带 method 参数
func Logger(cfgs ...LoggerConfig) gin.HandlerFunc {
	cfg := LoggerConfig{}
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	if cfg.Logger == nil {
		cfg.Logger = log.G
	}

	return func(c *gin.Context) {
		if slices.Contains(cfg.SkipPaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		event := cfg.Logger.Info().
			Int("status", c.Writer.Status()).
			Str("verb", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP())

		// ParseForm has run when the API handler served the request
		if method := c.Request.Form.Get("method"); method != "" {
			event = event.Str("method", method)
		}
		if query := c.Request.URL.RawQuery; cfg.Query && query != "" {
			event = event.Str("query", query)
		}
		if requestID := c.Request.Header.Get("X-Request-Id"); requestID != "" {
			event = event.Str("request_id", requestID)
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.ByType(gin.ErrorTypePrivate).String())
		}

		event.Msg("request")
	}
}
