package log

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/kochabx/forkapi/core/tag"
	"github.com/kochabx/forkapi/log/desensitize"
	"github.com/kochabx/forkapi/log/writer"
)

// Logger 日志记录器
type Logger struct {
	zerolog.Logger
	desensitizeHook *desensitize.Hook
	closer          io.Closer // 用于资源清理
}

// GetDesensitizeHook 获取脱敏钩子
func (l *Logger) GetDesensitizeHook() *desensitize.Hook {
	return l.desensitizeHook
}

// Close 关闭日志记录器，释放资源
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func init() {
	zerolog.TimeFieldFormat = time.DateTime
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

// NewWriter 以任意 writer 构建 Logger
func NewWriter(w io.Writer, opts ...Option) *Logger {
	logger := &Logger{}

	// 先收集选项（脱敏钩子需要在创建 zerolog.Logger 之前确定）
	for _, opt := range opts {
		opt.collect(logger)
	}
	if logger.desensitizeHook != nil {
		w = desensitize.NewWriter(w, logger.desensitizeHook)
	}

	logger.Logger = zerolog.New(w).With().Timestamp().Logger()
	for _, opt := range opts {
		opt.apply(logger)
	}
	return logger
}

// New 创建新的 Logger 实例，输出到控制台 (stderr)
func New(opts ...Option) *Logger {
	return NewWriter(writer.Console(), opts...)
}

// Nop 返回不输出任何内容的 Logger
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// NewFile 创建文件输出的 Logger
func NewFile(c FileConfig, opts ...Option) (*Logger, error) {
	fw, err := openFile(&c)
	if err != nil {
		return nil, err
	}
	logger := NewWriter(fw, opts...)
	logger.closer = fw
	return logger, nil
}

// NewMulti 创建同时输出到文件和控制台的 Logger
func NewMulti(c FileConfig, opts ...Option) (*Logger, error) {
	fw, err := openFile(&c)
	if err != nil {
		return nil, err
	}
	logger := NewWriter(zerolog.MultiLevelWriter(fw, writer.Console()), opts...)
	logger.closer = fw
	return logger, nil
}

// FromConfig 根据配置创建 Logger：配置了文件时同时输出到文件和控制台
func FromConfig(c Config, opts ...Option) (*Logger, error) {
	if err := tag.ApplyDefaults(&c); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}

	opts = append([]Option{WithLevel(level)}, opts...)
	if !c.DisableDesensitize {
		opts = append(opts, WithDesensitize(desensitize.NewHook(desensitize.BuiltinRules()...)))
	}

	if c.File == nil {
		return New(opts...), nil
	}
	return NewMulti(*c.File, opts...)
}

func openFile(c *FileConfig) (io.WriteCloser, error) {
	if err := tag.ApplyDefaults(c); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	wc, err := c.toWriterConfig()
	if err != nil {
		return nil, err
	}
	fw, err := writer.File(wc)
	if err != nil {
		return nil, fmt.Errorf("failed to create file writer: %w", err)
	}
	return fw, nil
}
