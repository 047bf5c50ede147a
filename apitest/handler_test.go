package apitest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/forkapi/errors"
)

func get(t *testing.T, target string) (int, string) {
	t.Helper()
	resp, err := http.Get(target)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestBuiltins(t *testing.T) {
	s := NewServer(WithBuiltins())
	defer s.Close()

	_, body := get(t, s.URL()+"?method=ping&format=json")
	assert.JSONEq(t, `{"meta":{"status_code":200,"status":"ok"},"data":"pong"}`, body)

	_, body = get(t, s.URL()+"?method=echo&format=json&a=1&b=x+y&api_key=k")
	assert.JSONEq(t, `{"meta":{"status_code":200,"status":"ok"},"data":{"a":"1","b":"x y"}}`, body)

	_, body = get(t, s.URL()+"?method=time&format=json")
	var env struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	assert.Contains(t, env.Data, "unix")
}

func TestDispatchErrors(t *testing.T) {
	s := NewServer(WithCredentials("a@b.c", "key"), WithBuiltins())
	defer s.Close()

	tests := []struct {
		query string
		want  string
	}{
		{"format=json", `{"meta":{"status_code":400,"status":"No method-parameter provided."},"data":null}`},
		{"method=ping", `{"meta":{"status_code":400,"status":"Invalid format."},"data":null}`},
		{"method=ping&format=json", `{"meta":{"status_code":403,"status":"Not authorized."},"data":null}`},
		{"method=nope&format=json&email=a%40b.c&api_key=key", `{"meta":{"status_code":404,"status":"Unknown method."},"data":null}`},
		{"method=ping&format=json&email=a%40b.c&api_key=key", `{"meta":{"status_code":200,"status":"ok"},"data":"pong"}`},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			status, body := get(t, s.URL()+"?"+tt.query)
			assert.Equal(t, http.StatusOK, status)
			assert.JSONEq(t, tt.want, body)
		})
	}
}

func TestHandleAndRaw(t *testing.T) {
	s := NewServer()
	defer s.Close()

	s.Handle("fail", func(context.Context, url.Values) (any, error) {
		return nil, errors.Domain(500, "boom")
	})
	s.Raw("broken", http.StatusBadGateway, "<html>")

	_, body := get(t, s.URL()+"?method=fail&format=json")
	assert.JSONEq(t, `{"meta":{"status_code":500,"status":"boom"},"data":null}`, body)

	status, body := get(t, s.URL()+"?method=broken")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "<html>", body)

	s.Handle("broken", Ping)
	_, body = get(t, s.URL()+"?method=broken&format=json")
	assert.Contains(t, body, "pong")
}

func TestRecordsRequests(t *testing.T) {
	s := NewServer(WithBuiltins())
	defer s.Close()

	_, ok := s.LastRequest()
	assert.False(t, ok)

	req, err := http.NewRequest(http.MethodPost, s.URL(), strings.NewReader("method=echo&format=json&x=1"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "test-agent")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	last, ok := s.LastRequest()
	require.True(t, ok)
	assert.Equal(t, http.MethodPost, last.Verb)
	assert.Equal(t, BasePath, last.Path)
	assert.Empty(t, last.RawQuery)
	assert.Equal(t, "method=echo&format=json&x=1", last.Body)
	assert.Equal(t, "application/x-www-form-urlencoded", last.ContentType)
	assert.Equal(t, "test-agent", last.UserAgent)
	assert.Equal(t, "1", last.Params.Get("x"))
	assert.Len(t, s.Requests(), 1)
}
