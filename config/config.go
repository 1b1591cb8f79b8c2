package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/fieldserve/crewsched/core/schedule"
	"github.com/fieldserve/crewsched/infra/metrics"
	"github.com/fieldserve/crewsched/infra/mqtt"
	"github.com/fieldserve/crewsched/infra/store"
)

// Config is the full service configuration.
type Config struct {
	HTTP     HTTPConfig      `json:"http"`
	MQTT     mqtt.Config     `json:"mqtt"`
	Metrics  MetricsConfig   `json:"metrics"`
	Logging  LoggingConfig   `json:"logging"`
	Schedule schedule.Config `json:"schedule"`
	Store    store.Config    `json:"store"`
	Timezone string          `json:"timezone"`
}

// HTTPConfig defines the API server settings.
type HTTPConfig struct {
	Addr string `json:"addr"`
	// AuthToken protects the check-log read endpoint when non-empty.
	AuthToken string `json:"auth_token"`
}

// SetDefaults applies the conventional listen address.
func (c *HTTPConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// MetricsConfig selects the metrics sinks.
type MetricsConfig struct {
	PrometheusEnabled bool                 `json:"prometheus_enabled"`
	PrometheusAddr    string               `json:"prometheus_addr"`
	Influx            metrics.InfluxConfig `json:"influx"`
}

// SetDefaults applies the conventional Prometheus address.
func (c *MetricsConfig) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":9090"
	}
}

// Load reads the configuration file at path, applying environment overrides
// with the CS_ prefix (CS_HTTP__ADDR becomes http.addr).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("CS_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "cs_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.HTTP.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Logging.SetDefaults()
	cfg.Schedule.SetDefaults()
	cfg.Store.SetDefaults()
	cfg.MQTT.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Schedule.Validate(); err != nil {
		return err
	}
	if err := c.MQTT.Validate(); err != nil {
		return err
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("timezone %q: %w", c.Timezone, err)
		}
	}
	return nil
}
