package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"fundexplorer/internal/cache"
	"fundexplorer/internal/coordinator"
	"fundexplorer/internal/fetcher"
	"fundexplorer/internal/mfapi"
	"fundexplorer/internal/presenter"
	"fundexplorer/internal/ratelimit"
)

// ErrInvalidConfig is wrapped by every error Validate returns.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all configuration for the fund explorer.
type Config struct {
	// Upstream API
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RetryCount     int           `mapstructure:"retry_count"`
	// RateLimit is requests per second to the upstream; 0 disables throttling.
	RateLimit float64 `mapstructure:"rate_limit"`

	// Caching and presentation
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	SearchDebounce time.Duration `mapstructure:"search_debounce"`
	HomeLimit      int           `mapstructure:"home_limit"`
	Concurrency    int           `mapstructure:"concurrency"`

	LogLevel string `mapstructure:"log_level"`
}

// envBindings maps config keys to their environment variables.
var envBindings = map[string]string{
	"base_url":        "FUNDEXPLORER_BASE_URL",
	"request_timeout": "FUNDEXPLORER_REQUEST_TIMEOUT",
	"retry_count":     "FUNDEXPLORER_RETRY_COUNT",
	"rate_limit":      "FUNDEXPLORER_RATE_LIMIT",
	"cache_ttl":       "FUNDEXPLORER_CACHE_TTL",
	"search_debounce": "FUNDEXPLORER_SEARCH_DEBOUNCE",
	"home_limit":      "FUNDEXPLORER_HOME_LIMIT",
	"concurrency":     "FUNDEXPLORER_CONCURRENCY",
	"log_level":       "FUNDEXPLORER_LOG_LEVEL",
}

// Load reads configuration from environment variables and an optional config file.
// Environment variables take precedence over config file values, which take
// precedence over defaults.
//
// When configFile is empty, config.yaml is looked up in the working directory
// and in $HOME/.fundexplorer, and a missing file is not an error. An explicit
// configFile must exist.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("base_url", mfapi.DefaultBaseURL)
	v.SetDefault("request_timeout", fetcher.DefaultTimeout)
	v.SetDefault("retry_count", fetcher.DefaultRetryCount)
	v.SetDefault("rate_limit", float64(ratelimit.DefaultMFAPIRate))
	v.SetDefault("cache_ttl", cache.DefaultTTL)
	v.SetDefault("search_debounce", presenter.DefaultDebounce)
	v.SetDefault("home_limit", presenter.DefaultHomeLimit)
	v.SetDefault("concurrency", coordinator.DefaultConcurrency)
	v.SetDefault("log_level", "info")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.fundexplorer")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate reports every out of range setting in one error.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.BaseURL) == "" {
		problems = append(problems, "base_url is empty")
	}
	if c.RequestTimeout <= 0 {
		problems = append(problems, "request_timeout must be positive")
	}
	if c.RetryCount < 0 {
		problems = append(problems, "retry_count must not be negative")
	}
	if c.RateLimit < 0 {
		problems = append(problems, "rate_limit must not be negative")
	}
	if c.CacheTTL <= 0 {
		problems = append(problems, "cache_ttl must be positive")
	}
	if c.SearchDebounce <= 0 {
		problems = append(problems, "search_debounce must be positive")
	}
	if c.HomeLimit <= 0 {
		problems = append(problems, "home_limit must be positive")
	}
	if c.Concurrency <= 0 {
		problems = append(problems, "concurrency must be positive")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log_level %q is not one of debug, info, warn, error", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// HTTPOptions returns the HTTP client settings for the upstream API.
func (c *Config) HTTPOptions() fetcher.HTTPOptions {
	opts := fetcher.DefaultHTTPOptions()
	opts.RetryCount = c.RetryCount
	opts.Timeout = c.RequestTimeout
	return opts
}

// Limiter returns a rate limiter primed with the configured upstream rate.
func (c *Config) Limiter() *ratelimit.Limiter {
	l := ratelimit.New()
	l.Set(ratelimit.APIMFAPI, rate.Limit(c.RateLimit), 1)
	return l
}
