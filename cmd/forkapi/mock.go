package main

import (
	"context"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/kochabx/forkapi/apitest"
	"github.com/kochabx/forkapi/app"
	"github.com/kochabx/forkapi/errors"
	"github.com/kochabx/forkapi/log"
	server "github.com/kochabx/forkapi/transport/http"
	"github.com/kochabx/forkapi/transport/http/metrics"
	"github.com/kochabx/forkapi/transport/http/middleware"
)

type mockOptions struct {
	addr     string
	email    string
	apiKey   string
	metrics  bool
	logLevel string
}

// mockSubcommand returns the mock [cobra.Command].
func mockSubcommand() *cobra.Command {
	o := mockOptions{}

	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Serve a fake API with the ping, echo and time methods at " + apitest.BasePath,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := log.FromConfig(log.Config{Level: o.logLevel})
			if err != nil {
				return errors.InvalidArgument("invalid log level %q", o.logLevel).WithCause(err)
			}
			defer logger.Close()
			log.SetGlobalLogger(logger)

			s, err := newMockServer(o, logger, metrics.Prom)
			if err != nil {
				return err
			}
			return app.New(
				app.WithContext(cmd.Context()),
				app.WithServer(s),
				app.WithShutdownTimeout(5*time.Second),
				app.WithLogger(logger),
			).Start()
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.addr, "addr", ":8080", "listen address")
	flags.StringVar(&o.email, "email", "", "required email, empty accepts any")
	flags.StringVar(&o.apiKey, "api-key", "", "required api_key, empty accepts any")
	flags.BoolVar(&o.metrics, "metrics", false, "serve prometheus metrics at /metrics")
	flags.StringVar(&o.logLevel, "log-level", "info", "log level")

	return cmd
}

// newMockServer mounts the fake API with health and optional metrics routes
func newMockServer(o mockOptions, logger *log.Logger, reg *metrics.Prometheus) (*server.Server, error) {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(
		middleware.Logger(middleware.LoggerConfig{Logger: logger, Query: true, SkipPaths: []string{"/health", "/metrics"}}),
		middleware.Recovery(middleware.RecoveryConfig{Logger: logger}),
	)

	h := apitest.NewHandler(apitest.WithEngine(engine), apitest.WithCredentials(o.email, o.apiKey))

	opts := []server.Option{
		server.WithMeta(server.Meta{Name: "mock"}),
		server.WithLogger(logger),
		server.WithRegistry(reg),
		server.WithHealthOptions(server.HealthOption{Enabled: true}),
	}

	var calls *metrics.CallMetrics
	if o.metrics {
		var err error
		if calls, err = metrics.NewCallMetrics(reg.Registry(), "forkapi_mock"); err != nil {
			return nil, err
		}
		opts = append(opts, server.WithMetricsOptions(server.MetricsOption{Enabled: true}))
	}

	for name, fn := range apitest.Builtins() {
		h.Handle(name, observed(calls, logger, name, fn))
	}

	return server.NewServer(o.addr, engine, opts...), nil
}

// observed records the outcome and duration of every served call
func observed(calls *metrics.CallMetrics, logger *log.Logger, method string, fn apitest.HandlerFunc) apitest.HandlerFunc {
	return func(ctx context.Context, params url.Values) (any, error) {
		start := time.Now()
		data, err := fn(ctx, params)

		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = errors.KindOf(err).String()
		}
		calls.Observe(method, outcome, time.Since(start))
		logger.Debug().Str("method", method).Str("outcome", outcome).Msg("served call")

		return data, err
	}
}
