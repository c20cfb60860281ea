package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/autotransformers/site/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonConfig_Unmarshal(t *testing.T) {
	raw := `{
		"address": ":9000",
		"env": "production",
		"session_secret": "file-secret",
		"users_file": "/data/users.json",
		"static_dir": "/srv/site",
		"session_ttl": "24h",
		"rate_limit_window": "15m",
		"rate_limit_max": 30,
		"max_body_bytes": 10240
	}`

	var c JsonConfig
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, "production", c.Env)
	assert.Equal(t, timex.Duration{Duration: 24 * time.Hour}, c.SessionTTL)
	assert.Equal(t, timex.Duration{Duration: 15 * time.Minute}, c.RateLimitWindow)
	assert.Equal(t, 30, c.RateLimitMax)
	assert.Equal(t, int64(10240), c.MaxBodyBytes)
}

func TestJsonConfig_PartialFileKeepsDefaults(t *testing.T) {
	raw := `{"address": ":9000"}`

	var c JsonConfig
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	var cfg Config
	cfg.LoadDefaults()

	if c.Addr != "" {
		cfg.Addr = c.Addr
	}
	if c.SessionTTL.Duration != 0 {
		cfg.SessionTTL = c.SessionTTL.Duration
	}

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL, "absent duration keeps default")
}
