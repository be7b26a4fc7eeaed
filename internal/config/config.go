package config

import (
	"os"
	"strconv"

	"promcorr/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Data     DataConfig
	Output   OutputConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds the optional run-store connection. An empty URL
// disables persistence.
type DatabaseConfig struct {
	URL string
}

// DataConfig holds data loading settings
type DataConfig struct {
	Dir       string
	NumFiles  int
	CacheSize int
}

// OutputConfig holds report output settings
type OutputConfig struct {
	Dir string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server:   ServerConfig{Port: envOr("PORT", "8090")},
		Database: DatabaseConfig{URL: os.Getenv("DATABASE_URL")},
		Data: DataConfig{
			Dir:       envOr("DATA_DIR", "data"),
			NumFiles:  5,
			CacheSize: 64,
		},
		Output: OutputConfig{Dir: envOr("OUTPUT_DIR", "results")},
	}

	if raw := os.Getenv("NUM_FILES"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid NUM_FILES %q", raw)
		}
		cfg.Data.NumFiles = n
	}
	if raw := os.Getenv("CACHE_SIZE"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid CACHE_SIZE %q", raw)
		}
		cfg.Data.CacheSize = n
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
