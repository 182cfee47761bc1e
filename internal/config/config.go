// Package config provides configuration loading and validation for the CLI
// and the reference backend.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Environment variables read by FromEnv.
const (
	EnvAPIURL         = "SCREENER_API_URL"
	EnvTokenFile      = "SCREENER_TOKEN_FILE"
	EnvTimeoutSeconds = "SCREENER_TIMEOUT_SECONDS"
	EnvVerbose        = "SCREENER_VERBOSE"
)

// DefaultAPIURL is where the backend listens in a local setup.
const DefaultAPIURL = "http://localhost:8080"

// DefaultTimeoutSeconds bounds a single request.
const DefaultTimeoutSeconds = 30

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	APIURL         string `json:"api_url,omitempty"`         // Base URL of the backend
	TokenFile      string `json:"token_file,omitempty"`      // Where the session token is kept
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"` // Per-request timeout, 0 uses the default
	Verbose        bool   `json:"verbose,omitempty"`         // Debug logging
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		APIURL:         DefaultAPIURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the SCREENER_* environment variables.
func FromEnv() (Config, error) {
	cfg := Config{
		APIURL:    os.Getenv(EnvAPIURL),
		TokenFile: os.Getenv(EnvTokenFile),
	}

	if v := os.Getenv(EnvTimeoutSeconds); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %v", EnvTimeoutSeconds, err)
		}
		cfg.TimeoutSeconds = n
	}

	if v := os.Getenv(EnvVerbose); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %v", EnvVerbose, err)
		}
		cfg.Verbose = b
	}

	return cfg, nil
}

// Resolve layers the environment over the optional config file over the
// defaults. CLI flags are applied by the caller afterwards.
func Resolve(path string) (Config, error) {
	env, err := FromEnv()
	if err != nil {
		return Config{}, err
	}

	file := Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		file = *loaded
	}

	merged := env.MergeWithDefaults(file)
	merged = merged.MergeWithDefaults(Defaults())
	// Bools cannot be merged by zero value; either source may turn verbose on.
	merged.Verbose = env.Verbose || file.Verbose

	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.APIURL != "" {
		u, err := url.Parse(c.APIURL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("config error: 'api_url' must be an http(s) URL, got %q", c.APIURL)
		}
	}

	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIURL == "" {
		result.APIURL = defaults.APIURL
	}
	if result.TokenFile == "" {
		result.TokenFile = defaults.TokenFile
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
