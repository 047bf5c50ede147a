package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes the registry collectors are registered on
type Metrics interface {
	Registry() *prometheus.Registry
}

// Outcome label of a successful call; failures use the error kind name
const OutcomeSuccess = "success"
