package metrics

import (
	"regexp"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var _ Metrics = (*Prometheus)(nil)

// Prom is the process wide registry served by the HTTP server's /metrics route
var Prom = New()

type Prometheus struct {
	registry *prometheus.Registry
}

func New() *Prometheus {
	return &Prometheus{
		registry: prometheus.NewRegistry(),
	}
}

func (p *Prometheus) WithGoCollectorRuntimeMetrics() {
	p.registry.MustRegister(collectors.NewGoCollector(
		collectors.WithGoCollectorRuntimeMetrics(collectors.GoRuntimeMetricsRule{Matcher: regexp.MustCompile("/.*")}),
	))
}

func (p *Prometheus) WithBuildInfoCollector() {
	p.registry.MustRegister(collectors.NewBuildInfoCollector())
}

func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}
