// Package config loads runtime settings for the panelkeeper CLI from
// defaults, an optional JSON file, and command-line flags, in that order
// of precedence.
package config

import "time"

// Config holds runtime settings for the panelkeeper CLI.
//
// Fields:
//   - APIBaseURL: base URL of the admin-panel REST API.
//   - DatabasePath: SQLite file holding persisted client state (the token).
//   - RequestTimeout: upper bound on any single API request.
//   - RefreshMargin: how long before token expiry the silent refresh fires.
type Config struct {
	APIBaseURL     string
	DatabasePath   string
	RequestTimeout time.Duration
	RefreshMargin  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.DatabasePath = "panelkeeper.db"
	c.RequestTimeout = 15 * time.Second
	c.RefreshMargin = time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
