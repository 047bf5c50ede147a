package apitest

import (
	"context"
	"net/url"
	"time"
)

// Builtins returns a fresh map of the built-in methods by name
func Builtins() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"ping": Ping,
		"echo": Echo,
		"time": Time,
	}
}

// Ping answers "pong"
func Ping(context.Context, url.Values) (any, error) {
	return "pong", nil
}

// Echo returns the received parameters without credentials and protocol fields
func Echo(_ context.Context, params url.Values) (any, error) {
	out := make(map[string]any, len(params))
	for k, v := range params {
		switch k {
		case "method", "format", "email", "api_key":
			continue
		}
		if len(v) == 1 {
			out[k] = v[0]
		} else {
			out[k] = v
		}
	}
	return out, nil
}

// Time returns the server time
func Time(context.Context, url.Values) (any, error) {
	now := time.Now().UTC()
	return map[string]any{
		"unix":    now.Unix(),
		"rfc3339": now.Format(time.RFC3339),
	}, nil
}
