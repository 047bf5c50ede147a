package api

import (
	"github.com/kochabx/forkapi/core/tag"
	"github.com/kochabx/forkapi/core/validator"
	"github.com/kochabx/forkapi/errors"
)

// Config is the file and environment loadable client configuration
type Config struct {
	URL                string `json:"url" mapstructure:"url" validate:"required,url"`
	Email              string `json:"email" mapstructure:"email" validate:"omitempty,email"`
	APIKey             string `json:"api_key" mapstructure:"api_key"`
	Timeout            int    `json:"timeout" mapstructure:"timeout" default:"10" validate:"gte=0"`
	UserAgent          string `json:"user_agent" mapstructure:"user_agent"`
	InsecureSkipVerify bool   `json:"insecure_skip_verify" mapstructure:"insecure_skip_verify"`
	DisableRedirects   bool   `json:"disable_redirects" mapstructure:"disable_redirects"`
	MaxBodySize        int64  `json:"max_body_size" mapstructure:"max_body_size" default:"8388608" validate:"gte=0"`
	RequestID          bool   `json:"request_id" mapstructure:"request_id"`
}

// Options converts the configuration into client options
func (c Config) Options() []Option {
	return []Option{
		WithCredentials(c.Email, c.APIKey),
		WithTimeout(c.Timeout),
		WithUserAgent(c.UserAgent),
		WithInsecureSkipVerify(c.InsecureSkipVerify),
		WithFollowRedirects(!c.DisableRedirects),
		WithMaxBodySize(c.MaxBodySize),
		WithRequestID(c.RequestID),
	}
}

// NewFromConfig applies defaults, validates cfg and creates a client.
// opts are applied after the configuration and win over it.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	if err := tag.ApplyDefaults(&cfg); err != nil {
		return nil, errors.InvalidArgument("invalid config").WithCause(err)
	}
	if err := validator.Validate.Struct(&cfg); err != nil {
		return nil, errors.InvalidArgument("invalid config: %v", err).WithCause(err)
	}
	return New(cfg.URL, append(cfg.Options(), opts...)...)
}
