package log

import (
	"time"

	"github.com/kochabx/forkapi/log/writer"
)

// Config 日志配置，可直接嵌入应用配置中由 config 包加载
type Config struct {
	Level string `json:"level" mapstructure:"level" default:"info" validate:"oneof=trace debug info warn error fatal panic disabled"`
	// DisableDesensitize 关闭凭据脱敏（默认开启）
	DisableDesensitize bool        `json:"disable_desensitize" mapstructure:"disable_desensitize"`
	File               *FileConfig `json:"file" mapstructure:"file"`
}

// FileConfig 日志文件配置
type FileConfig struct {
	Filepath   string `json:"filepath" mapstructure:"filepath" default:"log"`
	Filename   string `json:"filename" mapstructure:"filename" default:"forkapi"`
	FileExt    string `json:"file_ext" mapstructure:"file_ext" default:"log"`
	RotateMode string `json:"rotate_mode" mapstructure:"rotate_mode" default:"size" validate:"oneof=size time"`
	// MaxAge 日志保留时间(小时)
	MaxAge int `json:"max_age" mapstructure:"max_age" default:"720"`
	// RotationTime 按时间轮转的间隔(小时)
	RotationTime int `json:"rotation_time" mapstructure:"rotation_time" default:"24"`
	// MaxSize 按大小轮转时单个文件最大大小(MB)
	MaxSize    int  `json:"max_size" mapstructure:"max_size" default:"100"`
	MaxBackups int  `json:"max_backups" mapstructure:"max_backups" default:"5"`
	Compress   bool `json:"compress" mapstructure:"compress"`
}

// toWriterConfig 转换为 writer.RotateConfig
func (c *FileConfig) toWriterConfig() (writer.RotateConfig, error) {
	mode, err := writer.ParseRotateMode(c.RotateMode)
	if err != nil {
		return writer.RotateConfig{}, err
	}
	return writer.RotateConfig{
		Mode:         mode,
		Filepath:     c.Filepath,
		Filename:     c.Filename,
		FileExt:      c.FileExt,
		MaxAge:       time.Duration(c.MaxAge) * time.Hour,
		RotationTime: time.Duration(c.RotationTime) * time.Hour,
		MaxSizeMB:    c.MaxSize,
		MaxBackups:   c.MaxBackups,
		Compress:     c.Compress,
	}, nil
}
