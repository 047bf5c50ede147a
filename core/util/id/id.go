package id

import (
	"github.com/google/uuid"
)

// Generate 生成 UUID (v4)
func Generate() string {
	return uuid.New().String()
}

// Valid 判断 s 是否为合法 UUID
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
