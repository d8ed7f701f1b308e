package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetenv(t *testing.T) {
	// Test with empty environment variable
	os.Unsetenv("TEST_GETENV")
	result := getenv("TEST_GETENV", "default")
	if result != "default" {
		t.Errorf("Expected default value 'default', got '%s'", result)
	}

	// Test with set environment variable
	t.Setenv("TEST_GETENV", "test-value")
	result = getenv("TEST_GETENV", "default")
	if result != "test-value" {
		t.Errorf("Expected 'test-value', got '%s'", result)
	}
}

func TestGetenvInt(t *testing.T) {
	// Test with empty environment variable
	os.Unsetenv("TEST_GETENV_INT")
	result := getenvInt("TEST_GETENV_INT", 42)
	if result != 42 {
		t.Errorf("Expected default value 42, got %d", result)
	}

	// Test with valid integer
	t.Setenv("TEST_GETENV_INT", "100")
	result = getenvInt("TEST_GETENV_INT", 42)
	if result != 100 {
		t.Errorf("Expected 100, got %d", result)
	}

	// Test with invalid integer
	t.Setenv("TEST_GETENV_INT", "not-an-int")
	result = getenvInt("TEST_GETENV_INT", 42)
	if result != 42 {
		t.Errorf("Expected default value 42, got %d", result)
	}
}

func TestGetenvDuration(t *testing.T) {
	// Test with empty environment variable
	os.Unsetenv("TEST_GETENV_DURATION")
	result := getenvDuration("TEST_GETENV_DURATION", 30*time.Second)
	if result != 30*time.Second {
		t.Errorf("Expected default value 30s, got %v", result)
	}

	// Test with duration string
	t.Setenv("TEST_GETENV_DURATION", "45s")
	result = getenvDuration("TEST_GETENV_DURATION", 30*time.Second)
	if result != 45*time.Second {
		t.Errorf("Expected 45s, got %v", result)
	}

	// Test with bare seconds
	t.Setenv("TEST_GETENV_DURATION", "15")
	result = getenvDuration("TEST_GETENV_DURATION", 30*time.Second)
	if result != 15*time.Second {
		t.Errorf("Expected 15s, got %v", result)
	}

	// Test with invalid value
	t.Setenv("TEST_GETENV_DURATION", "soon")
	result = getenvDuration("TEST_GETENV_DURATION", 30*time.Second)
	if result != 30*time.Second {
		t.Errorf("Expected default value 30s, got %v", result)
	}
}

func TestGetenvFloat(t *testing.T) {
	os.Unsetenv("TEST_GETENV_FLOAT")
	result := getenvFloat("TEST_GETENV_FLOAT", 2.5)
	if result != 2.5 {
		t.Errorf("Expected default value 2.5, got %f", result)
	}

	t.Setenv("TEST_GETENV_FLOAT", "5.0")
	result = getenvFloat("TEST_GETENV_FLOAT", 2.5)
	if result != 5.0 {
		t.Errorf("Expected 5.0, got %f", result)
	}

	t.Setenv("TEST_GETENV_FLOAT", "not-a-float")
	result = getenvFloat("TEST_GETENV_FLOAT", 2.5)
	if result != 2.5 {
		t.Errorf("Expected default value 2.5, got %f", result)
	}
}

func clearCanvasEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"CANVAS_BASE_URL", "CANVAS_TOKEN", "CANVAS_REQUEST_TIMEOUT",
		"CANVAS_PAGE_SIZE", "CANVAS_MAX_PARALLEL", "CANVAS_RATE_LIMIT",
		"CANVAS_OPS_ADDR", "CANVAS_LOG_LEVEL", "CANVAS_LOG_FORMAT",
	}
	for _, env := range envVars {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearCanvasEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("Expected default RequestTimeout to be 30s, got %v", cfg.RequestTimeout)
	}
	if cfg.PageSize != 100 {
		t.Errorf("Expected default PageSize to be 100, got %d", cfg.PageSize)
	}
	if cfg.MaxParallel != 4 {
		t.Errorf("Expected default MaxParallel to be 4, got %d", cfg.MaxParallel)
	}
	if cfg.RateLimit != 0 {
		t.Errorf("Expected default RateLimit to be 0, got %f", cfg.RateLimit)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default LogLevel to be 'info', got '%s'", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("Expected default LogFormat to be 'json', got '%s'", cfg.LogFormat)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearCanvasEnv(t)

	t.Setenv("CANVAS_BASE_URL", "https://canvas.test/api/v1")
	t.Setenv("CANVAS_TOKEN", "test-token")
	t.Setenv("CANVAS_REQUEST_TIMEOUT", "45s")
	t.Setenv("CANVAS_PAGE_SIZE", "50")
	t.Setenv("CANVAS_MAX_PARALLEL", "8")
	t.Setenv("CANVAS_OPS_ADDR", ":9090")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.BaseURL != "https://canvas.test/api/v1" {
		t.Errorf("Expected BaseURL to be 'https://canvas.test/api/v1', got '%s'", cfg.BaseURL)
	}
	if cfg.Token != "test-token" {
		t.Errorf("Expected Token to be 'test-token', got '%s'", cfg.Token)
	}
	if cfg.RequestTimeout != 45*time.Second {
		t.Errorf("Expected RequestTimeout to be 45s, got %v", cfg.RequestTimeout)
	}
	if cfg.PageSize != 50 {
		t.Errorf("Expected PageSize to be 50, got %d", cfg.PageSize)
	}
	if cfg.MaxParallel != 8 {
		t.Errorf("Expected MaxParallel to be 8, got %d", cfg.MaxParallel)
	}
	if cfg.OpsAddr != ":9090" {
		t.Errorf("Expected OpsAddr to be ':9090', got '%s'", cfg.OpsAddr)
	}
}

func TestLoadFromYAML(t *testing.T) {
	clearCanvasEnv(t)

	path := filepath.Join(t.TempDir(), "canvas.yaml")
	content := `base_url: https://yaml.test/api/v1
token: yaml-token
page_size: 25
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.BaseURL != "https://yaml.test/api/v1" {
		t.Errorf("Expected BaseURL from YAML, got '%s'", cfg.BaseURL)
	}
	if cfg.PageSize != 25 {
		t.Errorf("Expected PageSize to be 25, got %d", cfg.PageSize)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be 'debug', got '%s'", cfg.LogLevel)
	}
	// Values absent from the file keep their defaults
	if cfg.MaxParallel != 4 {
		t.Errorf("Expected MaxParallel to keep default 4, got %d", cfg.MaxParallel)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	clearCanvasEnv(t)

	path := filepath.Join(t.TempDir(), "canvas.yaml")
	content := `base_url: https://yaml.test/api/v1
token: yaml-token
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CANVAS_TOKEN", "env-token")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Token != "env-token" {
		t.Errorf("Expected env to override YAML token, got '%s'", cfg.Token)
	}
	if cfg.BaseURL != "https://yaml.test/api/v1" {
		t.Errorf("Expected BaseURL from YAML, got '%s'", cfg.BaseURL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Error("Expected error for missing config file, got nil")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		BaseURL:        "https://canvas.test/api/v1",
		Token:          "token",
		RequestTimeout: 30 * time.Second,
		PageSize:       100,
		MaxParallel:    4,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid config to pass, got %v", err)
	}

	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing base url", func(c *Config) { c.BaseURL = "" }},
		{"missing token", func(c *Config) { c.Token = "" }},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }},
		{"page size too small", func(c *Config) { c.PageSize = 0 }},
		{"page size too large", func(c *Config) { c.PageSize = 200 }},
		{"zero max parallel", func(c *Config) { c.MaxParallel = 0 }},
		{"negative rate limit", func(c *Config) { c.RateLimit = -1 }},
	}

	for _, tc := range testCases {
		cfg := valid
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error, got nil", tc.name)
		}
	}
}
