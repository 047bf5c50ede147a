package desensitize

import (
	"errors"
	"fmt"
	"regexp"
	"sync/atomic"
)

// Rule 脱敏规则
type Rule interface {
	Name() string
	Enabled() bool
	SetEnabled(enabled bool)
	// Process 返回脱敏后的字符串，未命中时原样返回
	Process(s string) string
}

var (
	errEmptyName    = errors.New("rule name cannot be empty")
	errEmptyPattern = errors.New("pattern cannot be empty")
	errEmptyKey     = errors.New("key cannot be empty")
)

// base 规则公共部分：名称与启用状态，可并发切换
type base struct {
	name     string
	disabled atomic.Bool
}

func (b *base) Name() string            { return b.name }
func (b *base) Enabled() bool           { return !b.disabled.Load() }
func (b *base) SetEnabled(enabled bool) { b.disabled.Store(!enabled) }

// ContentRule 正则匹配整段文本，replacement 支持 $1 引用
type ContentRule struct {
	base
	re          *regexp.Regexp
	replacement string
}

func NewContentRule(name, pattern, replacement string) (*ContentRule, error) {
	if name == "" {
		return nil, errEmptyName
	}
	re, err := compile(pattern)
	if err != nil {
		return nil, err
	}
	return &ContentRule{base: base{name: name}, re: re, replacement: replacement}, nil
}

func (r *ContentRule) Process(s string) string {
	if !r.Enabled() {
		return s
	}
	return r.re.ReplaceAllString(s, r.replacement)
}

// ParamRule 替换查询串或表单中 key=value 的值，值按 URL 编码后的形式匹配
type ParamRule struct {
	base
	re   *regexp.Regexp
	mask string
}

func NewParamRule(name, key, mask string) (*ParamRule, error) {
	if name == "" {
		return nil, errEmptyName
	}
	if key == "" {
		return nil, errEmptyKey
	}
	re := regexp.MustCompile(`(^|[?&\s"])(` + regexp.QuoteMeta(key) + `=)[^&\s"]+`)
	return &ParamRule{base: base{name: name}, re: re, mask: mask}, nil
}

func (r *ParamRule) Process(s string) string {
	if !r.Enabled() {
		return s
	}
	return r.re.ReplaceAllString(s, "${1}${2}"+r.mask)
}

// FieldRule 只处理 JSON 字符串字段 "field":"value" 的值部分
type FieldRule struct {
	base
	field       *regexp.Regexp
	value       *regexp.Regexp
	replacement string
}

func NewFieldRule(name, fieldName, pattern, replacement string) (*FieldRule, error) {
	if name == "" {
		return nil, errEmptyName
	}
	if fieldName == "" {
		return nil, errEmptyKey
	}
	value, err := compile(pattern)
	if err != nil {
		return nil, err
	}
	field := regexp.MustCompile(`("` + regexp.QuoteMeta(fieldName) + `"\s*:\s*")((?:[^"\\]|\\.)*)(")`)
	return &FieldRule{base: base{name: name}, field: field, value: value, replacement: replacement}, nil
}

func (r *FieldRule) Process(s string) string {
	if !r.Enabled() {
		return s
	}
	return r.field.ReplaceAllStringFunc(s, func(m string) string {
		sub := r.field.FindStringSubmatch(m)
		return sub[1] + r.value.ReplaceAllString(sub[2], r.replacement) + sub[3]
	})
}

func compile(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, errEmptyPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return re, nil
}

func must[R Rule](r R, err error) R {
	if err != nil {
		panic(err)
	}
	return r
}
