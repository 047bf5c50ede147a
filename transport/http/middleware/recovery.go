package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/forkapi/log"
	"github.com/kochabx/forkapi/transport/http/response"
)

// RecoveryConfig Recovery 中间件配置
type RecoveryConfig struct {
	StackTrace bool        // 是否记录堆栈信息
	Logger     *log.Logger // 自定义日志记录器
}

// Recovery 捕获 panic 并以 status_code 500 的信封应答
func Recovery(cfgs ...RecoveryConfig) gin.HandlerFunc {
	cfg := RecoveryConfig{StackTrace: true}
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	if cfg.Logger == nil {
		cfg.Logger = log.G
	}

	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			// 客户端已断开，无法再写响应
			if err, ok := rec.(error); ok && isBrokenPipe(err) {
				cfg.Logger.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("broken pipe")
				_ = c.Error(err)
				c.Abort()
				return
			}

			event := cfg.Logger.Error().
				Str("error", fmt.Sprint(rec)).
				Str("verb", c.Request.Method).
				Str("path", c.Request.URL.Path)
			if cfg.StackTrace {
				event = event.Bytes("stack", debug.Stack())
			}
			event.Msg("panic recovered")

			response.GinEnvelope(c, http.StatusInternalServerError, "Internal server error.", nil)
			c.Abort()
		}()
		c.Next()
	}
}

func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET)
}
