package config

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"
)

// Config holds storefront client configuration loaded from environment and flags.
type Config struct {
	APIAddress        string
	StateDBPath       string
	Locale            string
	SearchDebounce    time.Duration
	RequestTimeout    time.Duration
	SuccessResetDelay time.Duration
	LogFormat         string
}

const (
	defaultStateDBPath       = "storefront.db"
	defaultLocale            = "default"
	defaultSearchDebounce    = 500 * time.Millisecond
	defaultRequestTimeout    = 10 * time.Second
	defaultSuccessResetDelay = 2 * time.Second
	defaultLogFormat         = "json"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		APIAddress:        getString(lookup, "API_ADDRESS", ""),
		StateDBPath:       getString(lookup, "STATE_DB_PATH", defaultStateDBPath),
		Locale:            getString(lookup, "LOCALE", defaultLocale),
		SearchDebounce:    getDuration(lookup, "SEARCH_DEBOUNCE", defaultSearchDebounce),
		RequestTimeout:    getDuration(lookup, "REQUEST_TIMEOUT", defaultRequestTimeout),
		SuccessResetDelay: getDuration(lookup, "SUCCESS_RESET_DELAY", defaultSuccessResetDelay),
		LogFormat:         getString(lookup, "LOG_FORMAT", defaultLogFormat),
	}

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		debounceStr   = cfg.SearchDebounce.String()
		timeoutStr    = cfg.RequestTimeout.String()
		resetDelayStr = cfg.SuccessResetDelay.String()
	)

	fs.StringVar(&cfg.APIAddress, "api", cfg.APIAddress, "Catalog API base URL")
	fs.StringVar(&cfg.StateDBPath, "state-db", cfg.StateDBPath, "Path to the local state database file")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Display locale (default, ru, uz)")
	fs.StringVar(&debounceStr, "search-debounce", debounceStr, "Quiet period before a search query fires")
	fs.StringVar(&timeoutStr, "request-timeout", timeoutStr, "Timeout for catalog API requests")
	fs.StringVar(&resetDelayStr, "reset-delay", resetDelayStr, "Delay before a confirmed order dialog resets")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log output format (json or text)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SearchDebounce, err = time.ParseDuration(debounceStr); err != nil {
		return nil, fmt.Errorf("invalid search debounce: %w", err)
	}

	if cfg.RequestTimeout, err = time.ParseDuration(timeoutStr); err != nil {
		return nil, fmt.Errorf("invalid request timeout: %w", err)
	}

	if cfg.SuccessResetDelay, err = time.ParseDuration(resetDelayStr); err != nil {
		return nil, fmt.Errorf("invalid reset delay: %w", err)
	}

	if cfg.SearchDebounce <= 0 {
		cfg.SearchDebounce = defaultSearchDebounce
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	if cfg.SuccessResetDelay <= 0 {
		cfg.SuccessResetDelay = defaultSuccessResetDelay
	}

	if cfg.StateDBPath == "" {
		cfg.StateDBPath = defaultStateDBPath
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		cfg.LogFormat = defaultLogFormat
	}

	if cfg.APIAddress == "" {
		return nil, fmt.Errorf("catalog API address must be provided")
	}

	parsed, err := url.Parse(cfg.APIAddress)
	if err != nil || !parsed.IsAbs() {
		return nil, fmt.Errorf("catalog API address must be an absolute URL")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
