package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	httpc "github.com/kochabx/forkapi/core/net/http"
	"github.com/kochabx/forkapi/core/util/id"
	"github.com/kochabx/forkapi/errors"
	"github.com/kochabx/forkapi/transport/http/metrics"
)

// Call invokes method with params and returns the envelope's data.
//
// The outgoing parameters are params, then email and api_key when
// authenticating with credentials set, then method and format=json, each
// layer overriding the previous one.
func (c *Client) Call(ctx context.Context, method string, params Params, opts ...CallOption) (json.RawMessage, error) {
	o := callOptions{verb: httpc.MethodGet, authenticate: true}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	data, _, err := c.do(ctx, c.snapshot(), method, params, o)
	c.observe(method, err, time.Since(start))
	return data, err
}

// Get is Call with GET
func (c *Client) Get(ctx context.Context, method string, params Params, opts ...CallOption) (json.RawMessage, error) {
	return c.Call(ctx, method, params, append(opts[:len(opts):len(opts)], WithHTTPMethod(httpc.MethodGet))...)
}

// Post is Call with POST
func (c *Client) Post(ctx context.Context, method string, params Params, opts ...CallOption) (json.RawMessage, error) {
	return c.Call(ctx, method, params, append(opts[:len(opts):len(opts)], WithHTTPMethod(httpc.MethodPost))...)
}

// CallJSON is Call decoding data into out. A data value that does not fit out
// is a malformed response.
func (c *Client) CallJSON(ctx context.Context, method string, params Params, out any, opts ...CallOption) error {
	o := callOptions{verb: httpc.MethodGet, authenticate: true}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	data, status, err := c.do(ctx, c.snapshot(), method, params, o)
	if err == nil {
		if derr := json.Unmarshal(data, out); derr != nil {
			err = errors.MalformedResponse(status, derr, "cannot decode data of %s", method)
		}
	}
	c.observe(method, err, time.Since(start))
	return err
}

// do performs one round trip and returns data with the HTTP status it came with
func (c *Client) do(ctx context.Context, cfg clientConfig, method string, params Params, o callOptions) (json.RawMessage, int, error) {
	if strings.TrimSpace(method) == "" {
		return nil, 0, errors.InvalidArgument("method is required")
	}

	values, err := params.values()
	if err != nil {
		return nil, 0, err
	}
	if o.authenticate {
		c.authenticate(values, cfg, method)
	}
	values.Set(ParamMethod, method)
	values.Set(ParamFormat, formatJSON)

	verb := httpc.MethodGet
	target := httpc.AppendQuery(cfg.baseURL, values)
	var body any
	if strings.EqualFold(strings.TrimSpace(o.verb), httpc.MethodPost) {
		verb = httpc.MethodPost
		target = cfg.baseURL
		body = values
	}

	reqOpts := []func(*httpc.RequestOption){
		httpc.WithUserAgent(cfg.effectiveUserAgent()),
		httpc.WithTimeout(time.Duration(cfg.timeout) * time.Second),
	}
	if ctx != nil {
		reqOpts = append(reqOpts, httpc.WithContext(ctx))
	}
	logger := c.logger.With().Str("method", method).Str("verb", verb).Logger()
	if c.requestID {
		rid := id.Generate()
		reqOpts = append(reqOpts, httpc.WithHeader(map[string]string{httpc.HeaderRequestID: rid}))
		logger = logger.With().Str("request_id", rid).Logger()
	}

	logger.Debug().Str("url", cfg.baseURL).Msg("api call")

	resp, err := c.transport.Request(verb, target, body, reqOpts...)
	switch {
	case err == nil:
	case errors.Is(err, httpc.ErrInvalidRequest):
		err = errors.InvalidArgument("cannot build request for %s", method).WithCause(redact(err, cfg.baseURL))
		logger.Warn().Err(err).Msg("api call rejected")
		return nil, 0, err
	case errors.Is(err, httpc.ErrBodyTooLarge) && resp != nil:
		err = errors.MalformedResponse(resp.StatusCode, err, "response body of %s too large", method)
		logger.Warn().Err(err).Msg("api call failed")
		return nil, resp.StatusCode, err
	default:
		err = errors.Transport(redact(err, cfg.baseURL), "%s %s failed", verb, method)
		logger.Warn().Err(err).Bool("timeout", errors.IsTimeout(err)).Msg("api call failed")
		return nil, 0, err
	}

	env, err := parseEnvelope(resp.Body)
	if err != nil {
		err = errors.MalformedResponse(resp.StatusCode, err, "invalid response to %s", method)
		logger.Warn().Err(err).Msg("api call failed")
		return nil, resp.StatusCode, err
	}
	if !env.ok() {
		err = errors.Domain(env.code(), env.status)
		logger.Warn().Err(err).Msg("api call failed")
		return nil, resp.StatusCode, err
	}

	logger.Debug().Int("http_status", resp.StatusCode).Msg("api call succeeded")
	return env.data, resp.StatusCode, nil
}

// authenticate adds the credentials that are set; missing ones are left to the server
func (c *Client) authenticate(values url.Values, cfg clientConfig, method string) {
	if cfg.email != "" {
		values.Set(ParamEmail, cfg.email)
	}
	if cfg.apiKey != "" {
		values.Set(ParamAPIKey, cfg.apiKey)
	}
	if cfg.email == "" || cfg.apiKey == "" {
		c.logger.Debug().Str("method", method).Msg("authenticated call without full credentials")
	}
}

// redact replaces the request URL in transport errors so the query, which may
// carry credentials, never ends up in error messages
func redact(err error, baseURL string) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return &url.Error{Op: ue.Op, URL: baseURL, Err: ue.Err}
	}
	return err
}

func (c *Client) observe(method string, err error, d time.Duration) {
	if c.metrics == nil {
		return
	}
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = errors.KindOf(err).String()
	}
	c.metrics.Observe(method, outcome, d)
}
