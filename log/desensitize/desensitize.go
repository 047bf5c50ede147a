package desensitize

import (
	"slices"
	"sync"
)

// Hook 脱敏钩子，规则按添加顺序依次执行
type Hook struct {
	mu    sync.RWMutex
	rules []Rule
}

// NewHook 创建新的脱敏钩子
func NewHook(rules ...Rule) *Hook {
	h := &Hook{}
	h.AddRules(rules...)
	return h
}

// AddRule 添加脱敏规则，同名规则会被替换
func (h *Hook) AddRule(rule Rule) {
	if rule == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, r := range h.rules {
		if r.Name() == rule.Name() {
			h.rules[i] = rule
			return
		}
	}
	h.rules = append(h.rules, rule)
}

// AddRules 批量添加规则
func (h *Hook) AddRules(rules ...Rule) {
	for _, rule := range rules {
		h.AddRule(rule)
	}
}

// AddContentRule 添加基于内容匹配的脱敏规则
func (h *Hook) AddContentRule(name, pattern, replacement string) error {
	rule, err := NewContentRule(name, pattern, replacement)
	if err != nil {
		return err
	}
	h.AddRule(rule)
	return nil
}

// AddFieldRule 添加基于字段名匹配的脱敏规则
func (h *Hook) AddFieldRule(name, fieldName, pattern, replacement string) error {
	rule, err := NewFieldRule(name, fieldName, pattern, replacement)
	if err != nil {
		return err
	}
	h.AddRule(rule)
	return nil
}

// RemoveRule 移除脱敏规则
func (h *Hook) RemoveRule(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	i := slices.IndexFunc(h.rules, func(r Rule) bool { return r.Name() == name })
	if i < 0 {
		return false
	}
	h.rules = slices.Delete(h.rules, i, i+1)
	return true
}

// GetRule 获取指定规则
func (h *Hook) GetRule(name string) (Rule, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, r := range h.rules {
		if r.Name() == name {
			return r, true
		}
	}
	return nil, false
}

// RuleCount 返回规则数量
func (h *Hook) RuleCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rules)
}

// Desensitize 对字符串进行脱敏处理
func (h *Hook) Desensitize(s string) string {
	if s == "" {
		return s
	}

	h.mu.RLock()
	rules := slices.Clone(h.rules)
	h.mu.RUnlock()

	result := s
	for _, rule := range rules {
		if rule.Enabled() {
			result = rule.Process(result)
		}
	}
	return result
}
