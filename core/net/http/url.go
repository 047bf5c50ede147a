package http

import (
	"net/url"
	"strings"
)

// NormalizeBaseURL trims every leading and trailing '/' from raw and appends
// exactly one. The result is stable under repeated normalization.
func NormalizeBaseURL(raw string) string {
	return strings.Trim(raw, "/") + "/"
}

// AppendQuery returns base followed by '?' and the form encoding of query.
// An empty query leaves base untouched.
func AppendQuery(base string, query url.Values) string {
	if len(query) == 0 {
		return base
	}
	return base + "?" + query.Encode()
}
