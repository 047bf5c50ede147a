package config

import (
	"sync"

	"github.com/spf13/viper"

	"github.com/kochabx/forkapi/core/validator"
	"github.com/kochabx/forkapi/log"
)

// Config manages application configuration
type Config struct {
	mu        sync.RWMutex        // protects concurrent access to target
	viper     *viper.Viper        // viper instance for configuration management
	validate  validator.Validator // validator for configuration validation
	target    any                 // destination the configuration is unmarshalled into
	loader    Loader              // loader is responsible for loading configuration
	logger    *log.Logger
	onChange  func()
	file      string
	name      string
	paths     []string
	envPrefix string
}

// New creates a new Config instance with the given options.
// If no loader is provided, a FileLoader is created that reads the explicit
// file (WithFile) or searches "config.yaml" in the current directory.
func New(target any, opts ...Option) *Config {
	c := &Config{
		viper:    viper.New(),
		validate: validator.Validate,
		target:   target,
		logger:   log.Nop(),
		name:     "config.yaml",
		paths:    []string{"."},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.loader == nil {
		c.loader = NewFileLoader(c.viper, c.validate, FileSource{
			File:      c.file,
			Name:      c.name,
			Paths:     c.paths,
			EnvPrefix: c.envPrefix,
		})
	}

	return c
}

// Load reads the configuration using the configured loader
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loader.Load(c.target)
}

// Read runs fn while holding the read lock, so fn observes a consistent target
func (c *Config) Read(fn func()) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn()
}

// Watch reloads the target whenever the underlying source changes
func (c *Config) Watch() error {
	return c.loader.Watch(func() {
		c.logger.Info().Msg("config change detected")

		if err := c.Load(); err != nil {
			c.logger.Error().Err(err).Msg("failed to reload config after change")
			return
		}

		c.logger.Info().Msg("config reloaded successfully")
		if c.onChange != nil {
			c.onChange()
		}
	})
}

// GetViper returns the underlying viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.viper
}
