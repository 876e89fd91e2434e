// Package config loads runtime settings for the LearningX CLI from
// defaults, an optional JSON file, and command-line flags, in that order of
// precedence.
package config

import "time"

// Config holds runtime settings for the LearningX CLI.
//
// Fields:
//   - APIBaseURL: base URL of the LearningX REST API.
//   - RequestTimeout: per-request timeout for API calls.
//   - DatabasePath: path of the local sqlite database (persisted session).
//   - AuthProviderURL: external delegated-auth provider entry point.
//   - AuthCallbackURL: the callback this client advertises to the provider.
type Config struct {
	APIBaseURL      string
	RequestTimeout  time.Duration
	DatabasePath    string
	AuthProviderURL string
	AuthCallbackURL string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "learningx.db"
	c.AuthProviderURL = "https://auth.emergentagent.com/"
	c.AuthCallbackURL = "http://localhost:3000/auth/callback"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
