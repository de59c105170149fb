// Package config handles application configuration and environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Defaults applied by LoadFromEnv.
const (
	DefaultListenAddr         = ":8080"
	DefaultRateLimitRPS       = 20
	DefaultRateLimitBurst     = 40
	DefaultReferenceLongitude = 120.0
	DefaultSearchMaxYears     = 300
)

// Config holds the configuration for the HTTP API and the chart engine.
type Config struct {
	ListenAddr string // HTTP listen address (default ":8080")
	LogLevel   string // log level: debug, info, warn, error (default "info")
	Env        string // environment: "development" (default) or "production"

	// Rate limiting
	RateLimitRPS   float64 // sustained requests per second (default 20)
	RateLimitBurst int     // burst capacity (default 40)

	// CORS
	CORSAllowedOrigins []string // allowed origins for CORS (default: ["*"])

	// Chart engine
	ReferenceLongitude float64 // standard meridian of civil time, degrees east (default 120)
	DefaultTZOffset    float64 // hours added to birth times that carry no offset (default 0)

	// Pillar date search
	SearchMaxYears int // widest accepted year span (default 300)
	SearchWorkers  int // concurrent years searched (default NumCPU)

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsProduction returns true when the server is running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// LoadFromEnv loads configuration from environment variables.
// Malformed numeric values fall back to their defaults with a warning.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		ListenAddr: os.Getenv("LISTEN_ADDR"),
		LogLevel:   os.Getenv("LOG_LEVEL"),
		Env:        os.Getenv("ENV"),
	}

	cfg.RateLimitRPS = cfg.floatEnv("RATE_LIMIT_RPS", DefaultRateLimitRPS)
	cfg.RateLimitBurst = cfg.intEnv("RATE_LIMIT_BURST", DefaultRateLimitBurst)
	cfg.ReferenceLongitude = cfg.floatEnv("BAZI_REFERENCE_LONGITUDE", DefaultReferenceLongitude)
	cfg.DefaultTZOffset = cfg.floatEnv("BAZI_DEFAULT_TZ_OFFSET", 0)
	cfg.SearchMaxYears = cfg.intEnv("BAZI_SEARCH_MAX_YEARS", DefaultSearchMaxYears)
	cfg.SearchWorkers = cfg.intEnv("BAZI_SEARCH_WORKERS", runtime.NumCPU())

	// CORS
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORSAllowedOrigins = compactNonEmpty(origins)
	}

	// Defaults
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = DefaultRateLimitRPS
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = DefaultRateLimitBurst
	}
	if cfg.SearchMaxYears <= 0 {
		cfg.SearchMaxYears = DefaultSearchMaxYears
	}
	if cfg.SearchWorkers <= 0 {
		cfg.SearchWorkers = 1
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	if cfg.ReferenceLongitude < -180 || cfg.ReferenceLongitude > 180 {
		return nil, fmt.Errorf("BAZI_REFERENCE_LONGITUDE must be within [-180, 180], got %v", cfg.ReferenceLongitude)
	}
	if cfg.DefaultTZOffset < -12 || cfg.DefaultTZOffset > 14 {
		return nil, fmt.Errorf("BAZI_DEFAULT_TZ_OFFSET must be within [-12, 14], got %v", cfg.DefaultTZOffset)
	}

	// Production mode: insecure defaults are fatal errors.
	if cfg.IsProduction() {
		if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
			return nil, fmt.Errorf("CORS wildcard (*) is not allowed in production (ENV=production)")
		}
	}

	return cfg, nil
}

func (c *Config) floatEnv(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		c.Warnings = append(c.Warnings, fmt.Sprintf("%s=%q is not a number; using %v", key, v, def))
		return def
	}
	return f
}

func (c *Config) intEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		c.Warnings = append(c.Warnings, fmt.Sprintf("%s=%q is not an integer; using %d", key, v, def))
		return def
	}
	return n
}

func compactNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// LoadDotEnv reads a .env file and sets any variables not already in the environment.
// Lines must be in KEY=VALUE format. Comments (#) and blank lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(strings.TrimPrefix(line, "export "), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = stripQuotes(strings.TrimSpace(value))
		if _, set := os.LookupEnv(key); !set {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes matching surrounding double or single quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
