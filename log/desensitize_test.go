package log

import (
	"bytes"
	"testing"

	"github.com/kochabx/forkapi/log/desensitize"
)

func TestDesensitizeHook(t *testing.T) {
	hook := desensitize.NewHook(desensitize.BuiltinRules()...)

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "email address",
			input:    "account user@example.com",
			expected: "account u***r@e***.com",
		},
		{
			name:     "query string",
			input:    "GET /api/1.0/?api_key=abc123&email=user%40example.com&format=json",
			expected: "GET /api/1.0/?api_key=******&email=***&format=json",
		},
		{
			name:     "json field",
			input:    `{"api_key":"abc123","password":"pw","method":"ping"}`,
			expected: `{"api_key":"******","password":"******","method":"ping"}`,
		},
		{
			name:     "no sensitive data",
			input:    "method=ping format=json",
			expected: "method=ping format=json",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if result := hook.Desensitize(tc.input); result != tc.expected {
				t.Errorf("Expected: %s, Got: %s", tc.expected, result)
			}
		})
	}
}

func TestDesensitizeHookRuleManagement(t *testing.T) {
	hook := desensitize.NewHook()

	if err := hook.AddContentRule("test", `test\d+`, "TEST****"); err != nil {
		t.Fatalf("Failed to add rule: %v", err)
	}
	if err := hook.AddContentRule("test", `test\d+`, "X"); err != nil {
		t.Fatalf("Failed to replace rule: %v", err)
	}
	if hook.RuleCount() != 1 {
		t.Errorf("Expected 1 rule, got %d", hook.RuleCount())
	}
	if got := hook.Desensitize("id test42"); got != "id X" {
		t.Errorf("unexpected result: %s", got)
	}

	rule, exists := hook.GetRule("test")
	if !exists {
		t.Fatal("Rule should exist")
	}
	rule.SetEnabled(false)
	if got := hook.Desensitize("id test42"); got != "id test42" {
		t.Errorf("disabled rule applied: %s", got)
	}

	if !hook.RemoveRule("test") || hook.RemoveRule("test") {
		t.Error("RemoveRule should succeed exactly once")
	}
	if hook.RuleCount() != 0 {
		t.Errorf("Expected 0 rules, got %d", hook.RuleCount())
	}

	if err := hook.AddContentRule("", "x", "y"); err == nil {
		t.Error("expected error for empty name")
	}
	if err := hook.AddFieldRule("bad", "f", "(", "y"); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestDesensitizeWriter(t *testing.T) {
	var buf bytes.Buffer
	w := desensitize.NewWriter(&buf, desensitize.NewHook(desensitize.APIKeyQueryRule))

	in := []byte("api_key=verysecretvalue\n")
	n, err := w.Write(in)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(in) {
		t.Errorf("n = %d, want %d", n, len(in))
	}
	if buf.String() != "api_key=******\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
