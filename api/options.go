package api

import (
	"net/http"

	httpc "github.com/kochabx/forkapi/core/net/http"
	"github.com/kochabx/forkapi/log"
	"github.com/kochabx/forkapi/transport/http/metrics"
)

// Option configures a Client at construction
type Option func(*Client)

// WithCredentials sets the email and API key sent with authenticated calls
func WithCredentials(email, apiKey string) Option {
	return func(c *Client) {
		c.cfg.email = email
		c.cfg.apiKey = apiKey
	}
}

// WithEmail sets the account email
func WithEmail(email string) Option {
	return func(c *Client) {
		c.cfg.email = email
	}
}

// WithAPIKey sets the API key
func WithAPIKey(apiKey string) Option {
	return func(c *Client) {
		c.cfg.apiKey = apiKey
	}
}

// WithTimeout sets the per call timeout in seconds; negative values clamp to 0,
// and 0 disables the client side deadline
func WithTimeout(seconds int) Option {
	return func(c *Client) {
		c.cfg.timeout = max(seconds, 0)
	}
}

// WithUserAgent sets the suffix appended to the product user agent
func WithUserAgent(suffix string) Option {
	return func(c *Client) {
		c.cfg.userAgent = suffix
	}
}

// WithInsecureSkipVerify disables TLS certificate verification
func WithInsecureSkipVerify(insecure bool) Option {
	return func(c *Client) {
		c.insecure = insecure
	}
}

// WithFollowRedirects controls whether 3xx responses are followed (default true)
func WithFollowRedirects(follow bool) Option {
	return func(c *Client) {
		c.followRedirects = follow
	}
}

// WithMaxBodySize bounds the buffered response body; n <= 0 keeps the default
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// WithHTTPClient sets the base http.Client. It is copied, never mutated.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTransport replaces the HTTP transport entirely. TLS, redirect and body
// size options are then the transport's concern.
func WithTransport(t httpc.Clienter) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger sets the logger; the default discards everything
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records every call on m
func WithMetrics(m *metrics.CallMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithRequestID sends a fresh X-Request-Id header with every call
func WithRequestID(enable bool) Option {
	return func(c *Client) {
		c.requestID = enable
	}
}

// CallOption configures a single call
type CallOption func(*callOptions)

type callOptions struct {
	verb         string
	authenticate bool
}

// WithHTTPMethod selects GET or POST. Any other verb is sent as GET.
func WithHTTPMethod(verb string) CallOption {
	return func(o *callOptions) {
		o.verb = verb
	}
}

// WithAuthenticate controls whether credentials are added (default true)
func WithAuthenticate(authenticate bool) CallOption {
	return func(o *callOptions) {
		o.authenticate = authenticate
	}
}
