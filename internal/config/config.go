// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration values for the API server and the CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:8081"] (Expo dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StorageDriver selects the blob store: memory, file, sqlite or postgres.
	// Defaults to "file".
	StorageDriver string

	// DataDir is the root directory of the file driver. Defaults to "./data".
	DataDir string

	// SQLitePath is the database file of the sqlite driver.
	// Defaults to "./data/tripplanner.db".
	SQLitePath string

	// DatabaseURL is the Postgres connection string.
	// Required only when StorageDriver is "postgres".
	DatabaseURL string

	// PexelsAPIKey enables destination photo search. Empty disables it.
	PexelsAPIKey string

	// FlightAPIKey enables flight schedule lookup. Empty disables it.
	FlightAPIKey string

	// PhotoCacheTTL is how long cached destination photos stay fresh.
	// Defaults to 7 days.
	PhotoCacheTTL time.Duration

	// PersistMaxRetries bounds write-back retries after a failed save. Defaults to 3.
	PersistMaxRetries uint64

	// PersistBackoff is the base delay of the exponential write-back backoff.
	// Defaults to 200ms.
	PersistBackoff time.Duration

	// MaxBodyBytes caps request body sizes. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set and any
// values that cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:8081")),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverFile)),
		DataDir:       getEnv("DATA_DIR", "./data"),
		SQLitePath:    getEnv("SQLITE_PATH", "./data/tripplanner.db"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		PexelsAPIKey:  os.Getenv("PEXELS_API_KEY"),
		FlightAPIKey:  os.Getenv("FLIGHTAPI_KEY"),
	}

	var missing, invalid []string

	switch cfg.StorageDriver {
	case DriverMemory, DriverFile, DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		invalid = append(invalid, "STORAGE_DRIVER")
	}

	var err error
	if cfg.PhotoCacheTTL, err = time.ParseDuration(getEnv("PHOTO_CACHE_TTL", "168h")); err != nil {
		invalid = append(invalid, "PHOTO_CACHE_TTL")
	}
	if cfg.PersistBackoff, err = time.ParseDuration(getEnv("PERSIST_BACKOFF", "200ms")); err != nil {
		invalid = append(invalid, "PERSIST_BACKOFF")
	}
	if cfg.PersistMaxRetries, err = strconv.ParseUint(getEnv("PERSIST_MAX_RETRIES", "3"), 10, 32); err != nil {
		invalid = append(invalid, "PERSIST_MAX_RETRIES")
	}
	if cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64); err != nil || cfg.MaxBodyBytes <= 0 {
		invalid = append(invalid, "MAX_BODY_BYTES")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
