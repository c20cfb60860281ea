package config

import "os"

// parseEnv overlays Config fields from environment variables. Only values
// that are actually set override the current configuration, so the layering
// with defaults, JSON, and flags stays predictable.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.Addr = v
	}
	if v, ok := os.LookupEnv("APP_ENV"); ok {
		config.Env = v
	}
	if v, ok := os.LookupEnv("SESSION_SECRET"); ok {
		config.SessionSecret = v
	}
	if v, ok := os.LookupEnv("USERS_FILE"); ok {
		config.UsersFile = v
	}
	if v, ok := os.LookupEnv("STATIC_DIR"); ok {
		config.StaticDir = v
	}
}
