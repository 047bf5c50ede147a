package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kochabx/forkapi/errors"
	"github.com/kochabx/forkapi/log/desensitize"
)

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, WithLevel(zerolog.InfoLevel), WithFields(map[string]any{"component": "api"}))

	logger.Debug().Msg("hidden")
	logger.Info().Str("method", "ping").Msg("call")
	logger.Error().Err(errors.Domain(404, "Not found")).Msg("call failed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message should be filtered: %s", out)
	}
	for _, want := range []string{`"method":"ping"`, `"component":"api"`, `domain_error: code=404, message=Not found`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in %s", want, out)
		}
	}
}

func TestLogDesensitize(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, WithDesensitize(desensitize.NewHook(desensitize.CredentialRules()...)))

	logger.Info().
		Str("url", "https://example.com/api/1.0/?api_key=s3cr3t&email=user%40example.com&method=ping").
		Str("api_key", "s3cr3t").
		Msg("request")

	out := buf.String()
	if strings.Contains(out, "s3cr3t") {
		t.Errorf("api key leaked: %s", out)
	}
	if strings.Contains(out, "user%40example.com") {
		t.Errorf("email leaked: %s", out)
	}
	for _, want := range []string{"api_key=******&email=***&method=ping", `"api_key":"******"`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in %s", want, out)
		}
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Info().Msg("discarded")
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestFileLog(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewFile(FileConfig{Filepath: dir, Filename: "test"},
		WithDesensitize(desensitize.NewHook(desensitize.BuiltinRules()...)))
	if err != nil {
		t.Fatalf("failed to create file logger: %v", err)
	}
	logger.Info().Str("query", "api_key=abc&method=ping").Msg("test file log")
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "test.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "api_key=******&method=ping") {
		t.Errorf("unexpected file content: %s", data)
	}
}

func TestFromConfig(t *testing.T) {
	logger, err := FromConfig(Config{Level: "warn"})
	if err != nil {
		t.Fatal(err)
	}
	if logger.GetLevel() != zerolog.WarnLevel {
		t.Errorf("level = %v, want warn", logger.GetLevel())
	}
	if logger.GetDesensitizeHook() == nil {
		t.Error("desensitize should be enabled by default")
	}

	logger, err = FromConfig(Config{DisableDesensitize: true})
	if err != nil {
		t.Fatal(err)
	}
	if logger.GetLevel() != zerolog.InfoLevel {
		t.Errorf("level = %v, want info", logger.GetLevel())
	}
	if logger.GetDesensitizeHook() != nil {
		t.Error("desensitize should be disabled")
	}

	if _, err := FromConfig(Config{Level: "verbose"}); err == nil {
		t.Error("expected error for unknown level")
	}

	dir := t.TempDir()
	logger, err = FromConfig(Config{File: &FileConfig{Filepath: dir, RotateMode: "time"}})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info().Msg("multi")
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "forkapi.log")); err != nil {
		t.Errorf("expected link file: %v", err)
	}
}

func TestGlobalLog(t *testing.T) {
	prev := G
	defer SetGlobalLogger(prev)

	var buf bytes.Buffer
	SetGlobalLogger(NewWriter(&buf))
	SetGlobalLogger(nil)
	SetGlobalLevel(zerolog.WarnLevel)

	Info().Msg("dropped")
	Warn().Msg("kept")
	if strings.Contains(buf.String(), "dropped") || !strings.Contains(buf.String(), "kept") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
