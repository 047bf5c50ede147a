package http

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kochabx/forkapi/log"
	"github.com/kochabx/forkapi/transport"
	"github.com/kochabx/forkapi/transport/http/metrics"
)

var _ transport.Server = (*Server)(nil)

const (
	defaultName = "http"
	defaultAddr = ":8080"
)

// Meta is the metadata of the server.
type Meta struct {
	Name string
}

type Server struct {
	meta     Meta
	options  Options
	server   *http.Server
	registry metrics.Metrics
	logger   *log.Logger

	once  sync.Once
	ready chan struct{}
	addr  net.Addr
}

type Option func(*Server)

func WithMeta(meta Meta) Option {
	return func(s *Server) {
		s.meta = meta
	}
}

// WithLogger sets the logger; the global logger is used otherwise
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetricsOptions serves the registry (metrics.Prom unless WithRegistry is given)
func WithMetricsOptions(opt MetricsOption) Option {
	return func(s *Server) {
		if err := opt.init(); err != nil {
			s.logger.Error().Err(err).Send()
			return
		}
		s.options.Metrics = opt
	}
}

// WithRegistry sets the registry served on the metrics route
func WithRegistry(m metrics.Metrics) Option {
	return func(s *Server) {
		if m != nil {
			s.registry = m
		}
	}
}

func WithHealthOptions(opt HealthOption) Option {
	return func(s *Server) {
		if err := opt.init(); err != nil {
			s.logger.Error().Err(err).Send()
			return
		}
		s.options.Health = opt
	}
}

func NewServer(addr string, handler http.Handler, opts ...Option) *Server {
	s := &Server{
		meta: Meta{Name: defaultName},
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		registry: metrics.Prom,
		logger:   log.G,
		ready:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	additionalHandlers(s)

	return s
}

// Run listens and serves until Shutdown; it returns http.ErrServerClosed then
func (s *Server) Run() error {
	if !transport.ValidateAddress(s.server.Addr) {
		s.logger.Warn().Msgf("invalid address %q, using default address: %s", s.server.Addr, defaultAddr)
		s.server.Addr = defaultAddr
	}

	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.addr = ln.Addr()
	s.once.Do(func() { close(s.ready) })
	s.logger.Info().Msgf("%s server listening on %s", s.meta.Name, s.addr)

	return s.server.Serve(ln)
}

// Ready is closed once the server is listening
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr is the listening address, nil before Ready
func (s *Server) Addr() net.Addr {
	select {
	case <-s.ready:
		return s.addr
	default:
		return nil
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func additionalHandlers(s *Server) {
	if r, ok := s.server.Handler.(*gin.Engine); ok {
		handleMetrics(s, r)
		handleHealth(s, r)
	}
}

func handleMetrics(s *Server, r *gin.Engine) {
	if !s.options.Metrics.Enabled {
		return
	}

	if p, ok := s.registry.(*metrics.Prometheus); ok {
		if s.options.Metrics.EnabledGoCollector {
			p.WithGoCollectorRuntimeMetrics()
		}
		if s.options.Metrics.EnabledBuildInfoCollector {
			p.WithBuildInfoCollector()
		}
	}

	r.GET(s.options.Metrics.Path, gin.WrapH(promhttp.HandlerFor(s.registry.Registry(), promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})))
}

func handleHealth(s *Server, r *gin.Engine) {
	if s.options.Health.Enabled {
		r.GET(s.options.Health.Path, func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}
}
