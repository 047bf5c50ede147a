package validator

import (
	"context"

	"github.com/go-playground/validator/v10"
)

// Validator 定义校验器接口
type Validator interface {
	// Struct 校验结构体
	Struct(s any) error

	// StructCtx 带上下文校验结构体
	StructCtx(ctx context.Context, s any) error

	// Var 校验单个变量
	Var(field any, tag string) error

	// GetValidator 获取底层的validator实例
	GetValidator() *validator.Validate
}

// ValidationErrors 校验错误接口
type ValidationErrors interface {
	error
	// Errors 返回错误列表
	Errors() []FieldError
}

// FieldError 字段错误接口
type FieldError interface {
	// Field 字段名（优先取 WithFieldNameTag 指定的标签）
	Field() string
	// Namespace 字段完整路径，如 Config.log.level
	Namespace() string
	// Tag 校验标签
	Tag() string
	// Value 字段值
	Value() any
	// Message 错误消息
	Message() string
	// Translate 翻译错误消息
	Translate(lang string) string
}

// ValidationOption 校验器选项
type ValidationOption func(*validatorImpl)

// WithTagName 设置校验标签名
func WithTagName(tagName string) ValidationOption {
	return func(v *validatorImpl) {
		v.validator.SetTagName(tagName)
	}
}

// WithFieldNameTag 使用结构体标签（如 mapstructure、json）作为错误中的字段名
func WithFieldNameTag(tagName string) ValidationOption {
	return func(v *validatorImpl) {
		v.fieldNameTag = tagName
	}
}

// WithTranslator 设置启用的翻译语言，第一个为默认语言
func WithTranslator(langs ...string) ValidationOption {
	return func(v *validatorImpl) {
		if len(langs) > 0 {
			v.enabledLangs = langs
			v.defaultLang = langs[0]
		}
	}
}
