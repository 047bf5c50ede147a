package writer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RotateMode 日志轮转模式
type RotateMode int

const (
	// RotateModeTime 按时间轮转
	RotateModeTime RotateMode = iota
	// RotateModeSize 按大小轮转
	RotateModeSize
)

// String 返回轮转模式的字符串表示
func (m RotateMode) String() string {
	switch m {
	case RotateModeTime:
		return "time"
	case RotateModeSize:
		return "size"
	default:
		return "unknown"
	}
}

// ParseRotateMode 解析配置中的轮转模式 ("time" / "size")
func ParseRotateMode(s string) (RotateMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "size":
		return RotateModeSize, nil
	case "time":
		return RotateModeTime, nil
	default:
		return 0, fmt.Errorf("unsupported rotate mode: %q", s)
	}
}

// RotateConfig 日志轮转配置
type RotateConfig struct {
	Mode     RotateMode
	Filepath string
	Filename string
	FileExt  string
	MaxAge   time.Duration // 日志保留时间
	// 按时间轮转
	RotationTime time.Duration
	// 按大小轮转
	MaxSizeMB  int
	MaxBackups int
	Compress   bool
}

// File 创建文件输出 writer，调用方负责 Close
func File(config RotateConfig) (io.WriteCloser, error) {
	if config.Filepath != "" {
		if err := os.MkdirAll(config.Filepath, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	switch config.Mode {
	case RotateModeTime:
		w, err := rotatelogs.New(
			config.path("%Y%m%d%H%M"),
			rotatelogs.WithLinkName(config.path("")),
			rotatelogs.WithMaxAge(config.MaxAge),
			rotatelogs.WithRotationTime(config.RotationTime),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create time rotate writer: %w", err)
		}
		return w, nil
	case RotateModeSize:
		return &lumberjack.Logger{
			Filename:   config.path(""),
			MaxSize:    config.MaxSizeMB,
			MaxBackups: config.MaxBackups,
			MaxAge:     int(config.MaxAge / (24 * time.Hour)),
			Compress:   config.Compress,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported rotate mode: %v", config.Mode)
	}
}

// path 返回日志文件路径，format 非空时插入到文件名与扩展名之间
func (c *RotateConfig) path(format string) string {
	name := c.Filename
	if format != "" {
		name += "." + format
	}
	return filepath.Join(c.Filepath, name+"."+c.FileExt)
}
