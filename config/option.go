package config

import (
	"github.com/spf13/viper"

	"github.com/kochabx/forkapi/core/validator"
	"github.com/kochabx/forkapi/log"
)

// Option is a function that configures a Config
type Option func(*Config)

// WithViper sets a custom viper instance, e.g. one with command line flags bound
func WithViper(v *viper.Viper) Option {
	return func(c *Config) {
		c.viper = v
	}
}

// WithValidator sets a custom validator
func WithValidator(v validator.Validator) Option {
	return func(c *Config) {
		c.validate = v
	}
}

// WithLoader sets the configuration loader
func WithLoader(loader Loader) Option {
	return func(c *Config) {
		c.loader = loader
	}
}

// WithFile loads the configuration from an explicit file path. A missing file is an error.
func WithFile(file string) Option {
	return func(c *Config) {
		c.file = file
	}
}

// WithName sets the file name searched for in paths when no explicit file is given
func WithName(name string, paths ...string) Option {
	return func(c *Config) {
		c.name = name
		if len(paths) > 0 {
			c.paths = paths
		}
	}
}

// WithEnvPrefix sets the prefix of environment overrides, e.g. FORKAPI -> FORKAPI_TIMEOUT
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithLogger sets the logger used to report reloads
func WithLogger(l *log.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOnChange registers a callback invoked after a successful reload
func WithOnChange(fn func()) Option {
	return func(c *Config) {
		c.onChange = fn
	}
}
