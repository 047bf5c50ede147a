package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	// Buffer pool constants
	defaultBufferSize = 4096
	maxBufferSize     = 1024 * 1024 // 1MB

	// DefaultMaxBodySize bounds how much of a response body is buffered.
	DefaultMaxBodySize int64 = 8 << 20
)

var (
	// ErrInvalidRequest is returned when the request cannot be built, before any I/O.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrBodyTooLarge is returned when the response body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("response body too large")
)

// Response is a fully buffered HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client is an HTTP client with connection pooling and buffered responses
type Client struct {
	client          *http.Client
	insecure        bool
	followRedirects bool
	maxBodySize     int64
	bufferPool      sync.Pool
}

// Option configures the HTTP client
type Option func(*Client)

// WithClient sets a custom HTTP client
func WithClient(client *http.Client) Option {
	return func(h *Client) {
		h.client = client
	}
}

// WithInsecureSkipVerify disables TLS peer and host name verification.
func WithInsecureSkipVerify(insecure bool) Option {
	return func(h *Client) {
		h.insecure = insecure
	}
}

// WithFollowRedirects controls whether 3xx responses are followed.
func WithFollowRedirects(follow bool) Option {
	return func(h *Client) {
		h.followRedirects = follow
	}
}

// WithMaxBodySize bounds the buffered response body; n <= 0 keeps the default.
func WithMaxBodySize(n int64) Option {
	return func(h *Client) {
		if n > 0 {
			h.maxBodySize = n
		}
	}
}

// New creates a client; without WithClient a zero http.Client (DefaultTransport) is used
func New(opts ...Option) *Client {
	h := &Client{
		followRedirects: true,
		maxBodySize:     DefaultMaxBodySize,
		bufferPool: sync.Pool{
			New: func() any {
				return bytes.NewBuffer(make([]byte, 0, defaultBufferSize))
			},
		},
	}

	for _, opt := range opts {
		opt(h)
	}

	h.client = h.configure(h.client)
	return h
}

// configure derives the http.Client actually used from the base client and the
// TLS and redirect policy. The base client is never mutated.
func (cli *Client) configure(base *http.Client) *http.Client {
	var c http.Client
	if base != nil {
		c = *base
	}

	if cli.insecure {
		var tr *http.Transport
		switch t := c.Transport.(type) {
		case nil:
			tr = http.DefaultTransport.(*http.Transport).Clone()
		case *http.Transport:
			tr = t.Clone()
		}
		if tr != nil {
			if tr.TLSClientConfig == nil {
				tr.TLSClientConfig = &tls.Config{}
			}
			tr.TLSClientConfig.InsecureSkipVerify = true
			c.Transport = tr
		}
	}

	if !cli.followRedirects {
		c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return &c
}

// HTTPClient returns the underlying client.
func (cli *Client) HTTPClient() *http.Client {
	return cli.client
}

// RequestOption holds the per request settings
type RequestOption struct {
	ctx     context.Context
	header  http.Header
	timeout time.Duration
}

// WithContext bounds the request by ctx
func WithContext(ctx context.Context) func(*RequestOption) {
	return func(opt *RequestOption) {
		opt.ctx = ctx
	}
}

// WithHeader sets the given headers, replacing earlier values
func WithHeader(header map[string]string) func(*RequestOption) {
	return func(opt *RequestOption) {
		for k, v := range header {
			opt.header.Set(k, v)
		}
	}
}

// WithUserAgent sets the User-Agent header. An empty agent suppresses the Go default.
func WithUserAgent(ua string) func(*RequestOption) {
	return func(opt *RequestOption) {
		opt.header.Set(HeaderUserAgent, ua)
	}
}

// WithTimeout bounds the whole exchange, body included. Zero means no bound.
func WithTimeout(d time.Duration) func(*RequestOption) {
	return func(opt *RequestOption) {
		opt.timeout = d
	}
}

// Request sends an HTTP request and buffers the response body.
//
// body may be nil, an io.Reader, url.Values (sent form encoded) or any other
// value (sent as JSON). Errors wrapping ErrInvalidRequest happen before any I/O;
// any other error means the exchange itself failed.
func (cli *Client) Request(method, target string, body any, opts ...func(*RequestOption)) (*Response, error) {
	opt := RequestOption{ctx: context.Background(), header: make(http.Header, 4)}
	for _, o := range opts {
		o(&opt)
	}
	if opt.ctx == nil {
		opt.ctx = context.Background()
	}

	ctx := opt.ctx
	if opt.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opt.timeout)
		defer cancel()
	}

	reader, contentType, err := encodeBody(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if contentType != "" {
		req.Header.Set(HeaderContentType, contentType)
	}
	maps.Copy(req.Header, opt.header)

	resp, err := cli.client.Do(req)
	if err != nil {
		return nil, err
	}
	return cli.readResponse(resp)
}

// encodeBody returns the request body reader and its content type
func encodeBody(body any) (io.Reader, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case url.Values:
		return strings.NewReader(v.Encode()), ContentTypeForm, nil
	case io.Reader:
		return v, "", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), ContentTypeJSON, nil
	}
}

// getBuffer retrieves a buffer from the pool
func (cli *Client) getBuffer() *bytes.Buffer {
	buf := cli.bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putBuffer returns a buffer to the pool, with size check to prevent memory leaks
func (cli *Client) putBuffer(buf *bytes.Buffer) {
	if buf.Cap() <= maxBufferSize {
		cli.bufferPool.Put(buf)
	}
}

// readResponse drains the body into memory, bounded by maxBodySize.
func (cli *Client) readResponse(resp *http.Response) (*Response, error) {
	defer resp.Body.Close()

	buf := cli.getBuffer()
	defer cli.putBuffer(buf)

	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, cli.maxBodySize+1)); err != nil {
		return nil, err
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}
	if int64(buf.Len()) > cli.maxBodySize {
		return out, ErrBodyTooLarge
	}
	out.Body = bytes.Clone(buf.Bytes())
	return out, nil
}

// Get performs a GET request
func (cli *Client) Get(target string, opts ...func(*RequestOption)) (*Response, error) {
	return cli.Request(MethodGet, target, nil, opts...)
}

// Post performs a POST request; see Request for the accepted body types
func (cli *Client) Post(target string, body any, opts ...func(*RequestOption)) (*Response, error) {
	return cli.Request(MethodPost, target, body, opts...)
}
