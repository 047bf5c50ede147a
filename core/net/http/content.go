package http

// Common Content-Types
const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
	ContentTypeText = "text/plain"
)

// Supported request methods
const (
	MethodGet  = "GET"
	MethodPost = "POST"
)

// Common header names
const (
	HeaderContentType = "Content-Type"
	HeaderAccept      = "Accept"
	HeaderUserAgent   = "User-Agent"
	HeaderRequestID   = "X-Request-Id"
)
