package log

import "github.com/rs/zerolog"

// G 是未显式注入 Logger 的组件（HTTP 服务、应用生命周期、中间件）使用的日志实例；
// 库代码（api 客户端、配置加载）默认使用 Nop
var G = New()

// SetGlobalLogger 替换 G，nil 被忽略
func SetGlobalLogger(l *Logger) {
	if l != nil {
		G = l
	}
}

func SetGlobalLevel(level zerolog.Level) {
	G.Logger = G.Level(level)
}

func Debug() *zerolog.Event { return G.Debug() }
func Info() *zerolog.Event  { return G.Info() }
func Warn() *zerolog.Event  { return G.Warn() }

// Error 附带 pkgerrors 堆栈
func Error() *zerolog.Event { return G.Error().Stack() }
