package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"fundexplorer/internal/ratelimit"
)

// isolate clears every FUNDEXPLORER_ variable and points HOME at an empty
// directory so no user config file leaks into a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, env := range envBindings {
		t.Setenv(env, "")
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"BaseURL", cfg.BaseURL, "https://api.mfapi.in"},
		{"RequestTimeout", cfg.RequestTimeout, 30 * time.Second},
		{"RetryCount", cfg.RetryCount, 3},
		{"RateLimit", cfg.RateLimit, 5.0},
		{"CacheTTL", cfg.CacheTTL, 5 * time.Minute},
		{"SearchDebounce", cfg.SearchDebounce, 500 * time.Millisecond},
		{"HomeLimit", cfg.HomeLimit, 100},
		{"Concurrency", cfg.Concurrency, 4},
		{"LogLevel", cfg.LogLevel, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	isolate(t)

	envVars := map[string]string{
		"FUNDEXPLORER_BASE_URL":        "http://localhost:8080",
		"FUNDEXPLORER_REQUEST_TIMEOUT": "5s",
		"FUNDEXPLORER_RETRY_COUNT":     "0",
		"FUNDEXPLORER_RATE_LIMIT":      "0",
		"FUNDEXPLORER_CACHE_TTL":       "10m",
		"FUNDEXPLORER_SEARCH_DEBOUNCE": "250ms",
		"FUNDEXPLORER_HOME_LIMIT":      "20",
		"FUNDEXPLORER_CONCURRENCY":     "8",
		"FUNDEXPLORER_LOG_LEVEL":       "debug",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"BaseURL", cfg.BaseURL, "http://localhost:8080"},
		{"RequestTimeout", cfg.RequestTimeout, 5 * time.Second},
		{"RetryCount", cfg.RetryCount, 0},
		{"RateLimit", cfg.RateLimit, 0.0},
		{"CacheTTL", cfg.CacheTTL, 10 * time.Minute},
		{"SearchDebounce", cfg.SearchDebounce, 250 * time.Millisecond},
		{"HomeLimit", cfg.HomeLimit, 20},
		{"Concurrency", cfg.Concurrency, 8},
		{"LogLevel", cfg.LogLevel, "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad_ConfigFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
base_url: http://file.example
cache_ttl: 1m
home_limit: 25
`)
	t.Setenv("FUNDEXPLORER_HOME_LIMIT", "30")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.BaseURL != "http://file.example" {
		t.Errorf("BaseURL = %q, want value from file", cfg.BaseURL)
	}
	if cfg.CacheTTL != time.Minute {
		t.Errorf("CacheTTL = %v, want 1m", cfg.CacheTTL)
	}
	if cfg.HomeLimit != 30 {
		t.Errorf("HomeLimit = %d, want environment to win with 30", cfg.HomeLimit)
	}
	if cfg.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want default 4", cfg.Concurrency)
	}
}

func TestLoad_HomeDirectoryConfig(t *testing.T) {
	isolate(t)
	dir := filepath.Join(os.Getenv("HOME"), ".fundexplorer")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("concurrency: 2\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Concurrency != 2 {
		t.Errorf("Concurrency = %d, want 2", cfg.Concurrency)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing config file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Load() error = %q, want read failure", err.Error())
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	isolate(t)
	t.Setenv("FUNDEXPLORER_CACHE_TTL", "0s")
	t.Setenv("FUNDEXPLORER_RETRY_COUNT", "-1")

	_, err := Load("")
	if err == nil {
		t.Fatal("Load() expected error for invalid values, got nil")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
	for _, want := range []string{"cache_ttl must be positive", "retry_count must not be negative"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Load() error = %q, missing %q", err.Error(), want)
		}
	}
}

func validConfig() Config {
	return Config{
		BaseURL:        "https://api.mfapi.in",
		RequestTimeout: time.Second,
		RetryCount:     1,
		RateLimit:      5,
		CacheTTL:       time.Minute,
		SearchDebounce: time.Millisecond,
		HomeLimit:      10,
		Concurrency:    1,
		LogLevel:       "warn",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"uppercase level", func(c *Config) { c.LogLevel = "DEBUG" }, ""},
		{"unthrottled", func(c *Config) { c.RateLimit = 0 }, ""},
		{"empty base url", func(c *Config) { c.BaseURL = " " }, "base_url is empty"},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, "request_timeout must be positive"},
		{"negative rate", func(c *Config) { c.RateLimit = -1 }, "rate_limit must not be negative"},
		{"zero debounce", func(c *Config) { c.SearchDebounce = 0 }, "search_debounce must be positive"},
		{"zero home limit", func(c *Config) { c.HomeLimit = 0 }, "home_limit must be positive"},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, "concurrency must be positive"},
		{"unknown level", func(c *Config) { c.LogLevel = "trace" }, `log_level "trace" is not one of`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() returned unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_HTTPOptionsAndLimiter(t *testing.T) {
	cfg := validConfig()
	cfg.RetryCount = 0
	cfg.RequestTimeout = 2 * time.Second

	opts := cfg.HTTPOptions()
	if opts.RetryCount != 0 {
		t.Errorf("RetryCount = %d, want 0", opts.RetryCount)
	}
	if opts.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", opts.Timeout)
	}

	cfg.RateLimit = 0
	l := cfg.Limiter()
	for i := 0; i < 100; i++ {
		if !l.Allow(ratelimit.APIMFAPI) {
			t.Fatalf("Allow() = false on request %d, want unthrottled", i)
		}
	}

	cfg.RateLimit = float64(rate.Every(time.Hour))
	l = cfg.Limiter()
	if !l.Allow(ratelimit.APIMFAPI) {
		t.Error("first Allow() = false, want burst of 1")
	}
	if l.Allow(ratelimit.APIMFAPI) {
		t.Error("second Allow() = true, want throttled")
	}
}
