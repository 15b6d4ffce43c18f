package config

import (
	"os"
	"strconv"
	"time"
)

// RateLimitConfig drives the Redis token-bucket middleware. The zero-valued
// bucket refills RefillTokens every RefillInterval up to Capacity; TTL bounds
// how long idle bucket state lives in Redis.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
	Debug          bool
}

// LoadAuthRateLimitConfig returns the limiter settings for the signup/login
// endpoints: 3 requests per rolling 60 seconds per client IP. The defaults
// can be overridden through AUTH_RATE_LIMIT_* variables for load testing.
func LoadAuthRateLimitConfig() RateLimitConfig {
	def := RateLimitConfig{
		Enabled:        envBool("AUTH_RATE_LIMIT_ENABLED", true),
		Capacity:       envInt("AUTH_RATE_LIMIT_CAPACITY", 3),
		RefillTokens:   envInt("AUTH_RATE_LIMIT_REFILL_TOKENS", 3),
		RefillInterval: envDur("AUTH_RATE_LIMIT_REFILL_INTERVAL", 60*time.Second),
		TTL:            envDur("AUTH_RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:    envStr("AUTH_RATE_LIMIT_KEY_STRATEGY", "ip"),
		Prefix:         envStr("AUTH_RATE_LIMIT_PREFIX", "rl:auth"),
		Debug:          envBool("AUTH_RATE_LIMIT_DEBUG", false),
	}
	if def.Capacity < 1 {
		def.Capacity = 1
	}
	if def.RefillTokens < 1 {
		def.RefillTokens = 1
	}
	if def.RefillInterval <= 0 {
		def.RefillInterval = time.Second
	}
	minTTL := 5 * def.RefillInterval
	if def.TTL < minTTL {
		def.TTL = minTTL
	}
	return def
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
