// Package config assembles the CLI's runtime settings from layered
// sources: built-in defaults, a .env file, an optional JSON file, and
// command-line flags. Later sources take precedence.
package config

import "time"

// Config holds runtime settings for the Gestor CLI.
type Config struct {
	// ServerBaseURL is the root of the backend REST API.
	ServerBaseURL string
	// DatabasePath is the SQLite file holding the local credential cache.
	DatabasePath string
	// RequestTimeout bounds every regular API call.
	RequestTimeout time.Duration
	// HealthTimeout bounds the reachability probe.
	HealthTimeout time.Duration
	// OnlineCheckInterval is how often the background watcher probes the
	// server.
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:3000"
	c.DatabasePath = "gestor.db"
	c.RequestTimeout = 10 * time.Second
	c.HealthTimeout = 5 * time.Second
	c.OnlineCheckInterval = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (.env aware), a JSON file (if given), and
// command-line flags, in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
