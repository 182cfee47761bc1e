package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by LoadConfig.
const (
	EnvEnabled       = "SCREENER_RATE_LIMIT_ENABLED"
	EnvDefaultLimit  = "SCREENER_RATE_LIMIT_DEFAULT_LIMIT"
	EnvDefaultWindow = "SCREENER_RATE_LIMIT_DEFAULT_WINDOW"
	EnvAllowlist     = "SCREENER_RATE_LIMIT_ALLOWLIST"
)

// EndpointConfig limits one method and path. A Path ending in "/" matches
// every path below it. Limit 0 means unlimited.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int // defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Allowlist       map[string]bool
	Endpoints       []EndpointConfig
}

// LoadConfig reads rate limiting configuration from the environment.
func LoadConfig() *Config {
	cfg := &Config{
		Enabled:         envBool(EnvEnabled, true),
		DefaultLimit:    envInt(EnvDefaultLimit, 600),
		DefaultWindow:   envDuration(EnvDefaultWindow, time.Minute),
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Allowlist:       parseList(os.Getenv(EnvAllowlist)),
		Endpoints:       DefaultEndpoints(),
	}
	return cfg
}

// DefaultEndpoints limits credential guessing and large uploads more tightly
// than reads.
func DefaultEndpoints() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/auth/login", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		{Path: "/auth/signup", Method: "POST", Limit: 5, Window: time.Minute, Burst: 3},
		{Path: "/resume/upload", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/job/uploadFile", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/resume/score", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/health", Method: "GET", Limit: 0},
	}
}

// Match returns the endpoint configuration for a request, preferring exact
// paths over prefixes, or nil when none applies.
func Match(path, method string, endpoints []EndpointConfig) *EndpointConfig {
	for i := range endpoints {
		if endpoints[i].Method == method && endpoints[i].Path == path {
			return &endpoints[i]
		}
	}
	for i := range endpoints {
		ec := &endpoints[i]
		if ec.Method == method && strings.HasSuffix(ec.Path, "/") && strings.HasPrefix(path, ec.Path) {
			return ec
		}
	}
	return nil
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func parseList(list string) map[string]bool {
	out := make(map[string]bool)
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out[item] = true
		}
	}
	return out
}
