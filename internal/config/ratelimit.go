package config

import (
	"os"
	"strconv"
	"time"
)

// RateLimitConfig controls the fixed-window limiter that guards the display
// resolution path.  MaxRequests is per public identifier per Window.  The
// default budget is sized for a fleet of unattended screens polling every
// minute, with headroom for a misbehaving client before it gets cut off.
type RateLimitConfig struct {
	Window      time.Duration
	MaxRequests int
}

// LoadRateLimitConfig reads environment variables to build a RateLimitConfig.
// Invalid or missing values fall back to defaults; a window of at least one
// second is enforced.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Window:      envDur("RATE_LIMIT_WINDOW", time.Minute),
		MaxRequests: envInt("RATE_LIMIT_MAX_REQUESTS", 1500),
	}
	if cfg.MaxRequests < 1 {
		cfg.MaxRequests = 1
	}
	if cfg.Window < time.Second {
		cfg.Window = time.Second
	}
	return cfg
}

// Helper functions shared by the config files in this package.

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}
