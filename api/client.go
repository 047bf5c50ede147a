package api

import (
	"net/http"
	"strings"
	"sync"

	httpc "github.com/kochabx/forkapi/core/net/http"
	"github.com/kochabx/forkapi/errors"
	"github.com/kochabx/forkapi/log"
	"github.com/kochabx/forkapi/transport/http/metrics"
)

const (
	// Version of the client, part of the user agent
	Version = "1.0.0"
	// Product is the user agent prefix
	Product = "Go ForkAPI/" + Version

	// DefaultTimeout in seconds
	DefaultTimeout = 10
)

// clientConfig is copied by value for every call
type clientConfig struct {
	baseURL   string
	email     string
	apiKey    string
	timeout   int
	userAgent string
}

// effectiveUserAgent keeps the separating space even without a suffix
func (c clientConfig) effectiveUserAgent() string {
	return Product + " " + c.userAgent
}

// Client calls the API. It is safe for concurrent use; setters affect calls
// started after they return.
type Client struct {
	mu  sync.RWMutex
	cfg clientConfig

	transport       httpc.Clienter
	httpClient      *http.Client
	insecure        bool
	followRedirects bool
	maxBodySize     int64
	requestID       bool
	logger          *log.Logger
	metrics         *metrics.CallMetrics
}

// New creates a client for the API at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	url, err := normalizeURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		cfg: clientConfig{
			baseURL: url,
			timeout: DefaultTimeout,
		},
		followRedirects: true,
		maxBodySize:     httpc.DefaultMaxBodySize,
		logger:          log.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		c.transport = httpc.New(
			httpc.WithClient(c.httpClient),
			httpc.WithInsecureSkipVerify(c.insecure),
			httpc.WithFollowRedirects(c.followRedirects),
			httpc.WithMaxBodySize(c.maxBodySize),
		)
	}

	return c, nil
}

func normalizeURL(raw string) (string, error) {
	if strings.Trim(strings.TrimSpace(raw), "/") == "" {
		return "", errors.InvalidArgument("base url is required")
	}
	return httpc.NormalizeBaseURL(strings.TrimSpace(raw)), nil
}

func (c *Client) snapshot() clientConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// SetURL sets the base URL, normalized to end with exactly one '/'
func (c *Client) SetURL(baseURL string) error {
	url, err := normalizeURL(baseURL)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.cfg.baseURL = url
	c.mu.Unlock()
	return nil
}

// URL returns the normalized base URL
func (c *Client) URL() string {
	return c.snapshot().baseURL
}

// SetTimeout sets the per call timeout in seconds; negative values clamp to 0
func (c *Client) SetTimeout(seconds int) {
	c.mu.Lock()
	c.cfg.timeout = max(seconds, 0)
	c.mu.Unlock()
}

// Timeout returns the per call timeout in seconds
func (c *Client) Timeout() int {
	return c.snapshot().timeout
}

// SetUserAgent sets the suffix appended to the product user agent,
// e.g. "MyApp/2.0" gives "Go ForkAPI/1.0.0 MyApp/2.0"
func (c *Client) SetUserAgent(suffix string) {
	c.mu.Lock()
	c.cfg.userAgent = suffix
	c.mu.Unlock()
}

// UserAgent returns the effective user agent. Without a suffix it is the
// product followed by a single space.
func (c *Client) UserAgent() string {
	return c.snapshot().effectiveUserAgent()
}

func (c *Client) SetEmail(email string) {
	c.mu.Lock()
	c.cfg.email = email
	c.mu.Unlock()
}

func (c *Client) Email() string {
	return c.snapshot().email
}

func (c *Client) SetAPIKey(apiKey string) {
	c.mu.Lock()
	c.cfg.apiKey = apiKey
	c.mu.Unlock()
}

func (c *Client) APIKey() string {
	return c.snapshot().apiKey
}
