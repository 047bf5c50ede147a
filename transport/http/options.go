package http

import "github.com/kochabx/forkapi/core/tag"

// Options are the optional routes a server mounts on a gin engine
type Options struct {
	Metrics MetricsOption
	Health  HealthOption
}

type MetricsOption struct {
	Enabled                   bool   `json:"enabled" mapstructure:"enabled"`
	Path                      string `json:"path" mapstructure:"path" default:"/metrics"`
	EnabledGoCollector        bool   `json:"enabled_go_collector" mapstructure:"enabled_go_collector"`
	EnabledBuildInfoCollector bool   `json:"enabled_build_info_collector" mapstructure:"enabled_build_info_collector"`
}

func (m *MetricsOption) init() error {
	return tag.ApplyDefaults(m)
}

type HealthOption struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path" default:"/health"`
}

func (h *HealthOption) init() error {
	return tag.ApplyDefaults(h)
}
