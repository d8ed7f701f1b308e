package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the server needs to talk to Canvas.
// Values resolve defaults -> optional YAML file -> environment.
type Config struct {
	// BaseURL is the Canvas API root including the version prefix,
	// e.g. https://canvas.example.edu/api/v1
	BaseURL string `yaml:"base_url"`

	// Token is the Canvas access token. Prefer CANVAS_TOKEN over the
	// YAML file so the credential stays out of checked-in config.
	Token string `yaml:"token"`

	RequestTimeout time.Duration `yaml:"request_timeout"`
	PageSize       int           `yaml:"page_size"`
	MaxParallel    int           `yaml:"max_parallel"`

	// RateLimit caps outgoing requests per second. 0 disables the limiter.
	RateLimit float64 `yaml:"rate_limit"`

	// OpsAddr enables the operational HTTP listener (healthz, metrics)
	// when non-empty, e.g. ":9090".
	OpsAddr string `yaml:"ops_addr"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func defaults() Config {
	return Config{
		RequestTimeout: 30 * time.Second,
		PageSize:       100,
		MaxParallel:    4,
		LogLevel:       "info",
		LogFormat:      "json",
	}
}

// Load builds the configuration. path may be empty (no YAML file).
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.BaseURL = getenv("CANVAS_BASE_URL", cfg.BaseURL)
	cfg.Token = getenv("CANVAS_TOKEN", cfg.Token)
	cfg.RequestTimeout = getenvDuration("CANVAS_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.PageSize = getenvInt("CANVAS_PAGE_SIZE", cfg.PageSize)
	cfg.MaxParallel = getenvInt("CANVAS_MAX_PARALLEL", cfg.MaxParallel)
	cfg.RateLimit = getenvFloat("CANVAS_RATE_LIMIT", cfg.RateLimit)
	cfg.OpsAddr = getenv("CANVAS_OPS_ADDR", cfg.OpsAddr)
	cfg.LogLevel = getenv("CANVAS_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getenv("CANVAS_LOG_FORMAT", cfg.LogFormat)

	return cfg, nil
}

// Validate checks the loaded configuration. The credential pair is required;
// everything else has workable defaults.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("CANVAS_BASE_URL is required")
	}
	if c.Token == "" {
		return errors.New("CANVAS_TOKEN is required")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request_timeout must be positive")
	}
	if c.PageSize < 1 || c.PageSize > 100 {
		return errors.New("page_size must be between 1 and 100")
	}
	if c.MaxParallel < 1 {
		return errors.New("max_parallel must be at least 1")
	}
	if c.RateLimit < 0 {
		return errors.New("rate_limit must not be negative")
	}
	return nil
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvFloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// getenvDuration accepts Go duration strings ("45s") and bare integers
// interpreted as seconds ("45").
func getenvDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return def
}
