// Package config handles configuration for the server component, including
// defaults, environment overlay, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the AutoTransformers server.
//
// Fields:
//   - Addr: bind address for the HTTP endpoint.
//   - Env: "development" or "production"; production marks cookies Secure.
//   - SessionSecret: HMAC secret for signing session cookies. When empty, a
//     random per-process secret is generated (sessions then die with the
//     process, which they do anyway).
//   - UsersFile: path of the JSON user collection.
//   - StaticDir: root directory for static site assets.
//   - SessionTTL: sliding session lifetime.
//   - RateLimitWindow / RateLimitMax: fixed-window budget for auth attempts.
//   - MaxBodyBytes: request body cap for the JSON API.
type Config struct {
	Addr            string
	Env             string
	SessionSecret   string
	UsersFile       string
	StaticDir       string
	SessionTTL      time.Duration
	RateLimitWindow time.Duration
	RateLimitMax    int
	MaxBodyBytes    int64
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8000"
	c.Env = "development"
	c.SessionSecret = ""
	c.UsersFile = "users.json"
	c.StaticDir = "."
	c.SessionTTL = 24 * time.Hour
	c.RateLimitWindow = 15 * time.Minute
	c.RateLimitMax = 30
	c.MaxBodyBytes = 10 * 1024
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment, an optional JSON file, and finally command-line
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
