package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/autotransformers/site/internal/flagx"
	"github.com/autotransformers/site/internal/timex"
)

// JsonConfig is the JSON-file shape of Config. Interval fields use
// timex.Duration so the file can say "15m" or "24h" instead of raw
// nanoseconds. It is only an intermediate DTO; values are copied into the
// runtime Config after unmarshalling.
type JsonConfig struct {
	Addr            string         `json:"address"`
	Env             string         `json:"env"`
	SessionSecret   string         `json:"session_secret"`
	UsersFile       string         `json:"users_file"`
	StaticDir       string         `json:"static_dir"`
	SessionTTL      timex.Duration `json:"session_ttl"`
	RateLimitWindow timex.Duration `json:"rate_limit_window"`
	RateLimitMax    int            `json:"rate_limit_max"`
	MaxBodyBytes    int64          `json:"max_body_bytes"`
}

// parseJson loads configuration from the JSON file named by the -c/-config
// flags, if any. Absent fields keep their current values; an unreadable or
// invalid file panics, since running with a half-applied config is worse
// than not starting.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.Addr != "" {
		config.Addr = c.Addr
	}
	if c.Env != "" {
		config.Env = c.Env
	}
	if c.SessionSecret != "" {
		config.SessionSecret = c.SessionSecret
	}
	if c.UsersFile != "" {
		config.UsersFile = c.UsersFile
	}
	if c.StaticDir != "" {
		config.StaticDir = c.StaticDir
	}
	if c.SessionTTL.Duration != 0 {
		config.SessionTTL = time.Duration(c.SessionTTL.Duration)
	}
	if c.RateLimitWindow.Duration != 0 {
		config.RateLimitWindow = time.Duration(c.RateLimitWindow.Duration)
	}
	if c.RateLimitMax != 0 {
		config.RateLimitMax = c.RateLimitMax
	}
	if c.MaxBodyBytes != 0 {
		config.MaxBodyBytes = c.MaxBodyBytes
	}
}
