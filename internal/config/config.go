// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // PERCH_TIMEZONE works without a system zoneinfo
)

// Storage backends
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type Config struct {
	Port string

	StorageBackend string // "memory" or "postgres"
	DatabaseURL    string
	// ClockID separates TID sequences when several servers share one database
	ClockID uint

	// SeedFile is an optional YAML file of accounts and posts loaded at startup
	SeedFile string

	Location            *time.Location
	RequireFuture       bool
	ImportRequireFuture bool

	// RateLimit is requests per minute per client
	RateLimit int

	LogLevel  string
	LogFormat string // "json" or "text"

	CORSOrigins []string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func getIntEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

// Load reads all env vars and builds the config
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnv("PERCH_PORT", "8080"),

		StorageBackend: strings.ToLower(getEnv("PERCH_STORAGE_BACKEND", BackendMemory)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SeedFile:       os.Getenv("PERCH_SEED_FILE"),

		RequireFuture:       getBoolEnv("PERCH_REQUIRE_FUTURE", true),
		ImportRequireFuture: getBoolEnv("PERCH_IMPORT_REQUIRE_FUTURE", false),

		LogLevel:  getEnv("PERCH_LOG_LEVEL", "info"),
		LogFormat: getEnv("PERCH_LOG_FORMAT", "json"),

		CORSOrigins: splitOrigins(getEnv("PERCH_CORS_ORIGINS", "*")),
	}

	loc, err := time.LoadLocation(getEnv("PERCH_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid PERCH_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if cfg.RateLimit, err = getIntEnv("PERCH_RATE_LIMIT", 100); err != nil {
		return nil, err
	}
	if cfg.RateLimit < 1 {
		return nil, fmt.Errorf("PERCH_RATE_LIMIT must be positive, got %d", cfg.RateLimit)
	}

	clockID, err := getIntEnv("PERCH_CLOCK_ID", 0)
	if err != nil {
		return nil, err
	}
	if clockID < 0 || clockID > 1023 {
		return nil, fmt.Errorf("PERCH_CLOCK_ID must be between 0 and 1023, got %d", clockID)
	}
	cfg.ClockID = uint(clockID)

	switch cfg.StorageBackend {
	case BackendMemory:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL must be set when PERCH_STORAGE_BACKEND=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown PERCH_STORAGE_BACKEND %q (want memory or postgres)", cfg.StorageBackend)
	}

	return cfg, nil
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
