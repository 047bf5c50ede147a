// Package apitest provides a fake API speaking the {meta, data} envelope.
// It backs the client's tests and the "forkapi mock" command.
package apitest

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"slices"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/forkapi/errors"
	"github.com/kochabx/forkapi/transport/http/response"
)

// BasePath is the path the API is mounted on
const BasePath = "/api/1.0/"

// HandlerFunc answers one API method. The returned value becomes "data";
// an error is written as its code and message in "meta".
type HandlerFunc func(ctx context.Context, params url.Values) (any, error)

// Request is a request as received by the fake API
type Request struct {
	Verb        string
	Path        string
	RawQuery    string
	Body        string
	ContentType string
	UserAgent   string
	Header      http.Header
	// Params merges query and form body
	Params url.Values
}

type rawResponse struct {
	status int
	body   string
}

// Handler routes API calls on the "method" parameter
type Handler struct {
	engine *gin.Engine

	mu       sync.RWMutex
	methods  map[string]HandlerFunc
	raws     map[string]rawResponse
	requests []Request
	email    string
	apiKey   string
}

// Option configures a Handler
type Option func(*Handler)

// WithCredentials rejects calls whose email/api_key do not match with status_code 403
func WithCredentials(email, apiKey string) Option {
	return func(h *Handler) {
		h.email = email
		h.apiKey = apiKey
	}
}

// WithBuiltins registers the ping, echo and time methods
func WithBuiltins() Option {
	return func(h *Handler) {
		for name, fn := range Builtins() {
			h.methods[name] = fn
		}
	}
}

// WithEngine mounts the API on an existing gin engine
func WithEngine(engine *gin.Engine) Option {
	return func(h *Handler) {
		if engine != nil {
			h.engine = engine
		}
	}
}

// NewHandler creates the fake API
func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		methods: make(map[string]HandlerFunc),
		raws:    make(map[string]rawResponse),
	}

	for _, opt := range opts {
		opt(h)
	}

	if h.engine == nil {
		h.engine = gin.New()
		h.engine.Use(gin.Recovery())
	}
	h.engine.Any(BasePath, h.serve)

	return h
}

// Handle registers fn for method
func (h *Handler) Handle(method string, fn HandlerFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.raws, method)
	h.methods[method] = fn
}

// Raw makes method answer with a verbatim HTTP status and body
func (h *Handler) Raw(method string, status int, body string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.raws[method] = rawResponse{status: status, body: body}
}

// Requests returns the requests received so far
func (h *Handler) Requests() []Request {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.requests)
}

// LastRequest returns the most recent request; ok is false when none arrived
func (h *Handler) LastRequest() (req Request, ok bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.requests) == 0 {
		return Request{}, false
	}
	return h.requests[len(h.requests)-1], true
}

// Engine returns the underlying gin engine
func (h *Handler) Engine() *gin.Engine {
	return h.engine
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.engine.ServeHTTP(w, r)
}

func (h *Handler) serve(c *gin.Context) {
	req, err := record(c.Request)
	if err != nil {
		response.GinJSONE(c, errors.New(http.StatusBadRequest, "unreadable request: %v", err))
		return
	}

	h.mu.Lock()
	h.requests = append(h.requests, req)
	method := req.Params.Get("method")
	raw, isRaw := h.raws[method]
	fn, found := h.methods[method]
	email, apiKey := h.email, h.apiKey
	h.mu.Unlock()

	if isRaw {
		c.Data(raw.status, "application/json", []byte(raw.body))
		return
	}

	switch {
	case method == "":
		response.GinJSONE(c, errors.Domain(http.StatusBadRequest, "No method-parameter provided."))
		return
	case req.Params.Get("format") != "json":
		response.GinJSONE(c, errors.Domain(http.StatusBadRequest, "Invalid format."))
		return
	case (email != "" || apiKey != "") &&
		(req.Params.Get("email") != email || req.Params.Get("api_key") != apiKey):
		response.GinJSONE(c, errors.Domain(http.StatusForbidden, "Not authorized."))
		return
	case !found:
		response.GinJSONE(c, errors.Domain(http.StatusNotFound, "Unknown method."))
		return
	}

	data, err := fn(c.Request.Context(), req.Params)
	if err != nil {
		response.GinJSONE(c, err)
		return
	}
	response.GinJSON(c, data)
}

func record(r *http.Request) (Request, error) {
	var body []byte
	if r.Body != nil {
		var err error
		if body, err = io.ReadAll(r.Body); err != nil {
			return Request{}, err
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
	}
	if err := r.ParseForm(); err != nil {
		return Request{}, err
	}

	return Request{
		Verb:        r.Method,
		Path:        r.URL.Path,
		RawQuery:    r.URL.RawQuery,
		Body:        string(body),
		ContentType: r.Header.Get("Content-Type"),
		UserAgent:   r.UserAgent(),
		Header:      r.Header.Clone(),
		Params:      r.Form,
	}, nil
}
