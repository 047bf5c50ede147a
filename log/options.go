package log

import (
	"github.com/rs/zerolog"

	"github.com/kochabx/forkapi/log/desensitize"
)

// Option Logger 选项
type Option struct {
	collect func(*Logger) // 创建 zerolog.Logger 之前执行
	apply   func(*Logger) // 创建 zerolog.Logger 之后执行
}

func noop(*Logger) {}

// WithLevel 设置日志级别
func WithLevel(level zerolog.Level) Option {
	return Option{collect: noop, apply: func(l *Logger) {
		l.Logger = l.Logger.Level(level)
	}}
}

// WithCaller 设置调用栈信息
func WithCaller() Option {
	return Option{collect: noop, apply: func(l *Logger) {
		l.Logger = l.Logger.With().Caller().Logger()
	}}
}

// WithFields 为所有日志附加固定字段
func WithFields(fields map[string]any) Option {
	return Option{collect: noop, apply: func(l *Logger) {
		l.Logger = l.Logger.With().Fields(fields).Logger()
	}}
}

// WithDesensitize 设置脱敏钩子
func WithDesensitize(hook *desensitize.Hook) Option {
	return Option{collect: func(l *Logger) {
		l.desensitizeHook = hook
	}, apply: noop}
}
