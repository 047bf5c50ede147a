package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAddress(t *testing.T) {
	valid := []string{":8080", ":0", "localhost:80", "127.0.0.1:65535", "[::1]:9000", "api.example.com:443"}
	for _, addr := range valid {
		assert.True(t, ValidateAddress(addr), addr)
	}

	invalid := []string{"", "8080", "localhost", ":", ":65536", ":-1", "-host:80", "host-:80", "bad_host:80", ":http"}
	for _, addr := range invalid {
		assert.False(t, ValidateAddress(addr), addr)
	}
}
