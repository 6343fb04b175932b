package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Auth
	SlidegestAPIKey string

	// Upload limits
	MaxUploadBytes int64

	// Concurrent slide parses per presentation
	SlideWorkers int
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		SlidegestAPIKey: os.Getenv("SLIDEGEST_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 104857600), // 100MB

		SlideWorkers: envInt("SLIDE_WORKERS", 4),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 104857600
	}
	if cfg.SlideWorkers <= 0 {
		cfg.SlideWorkers = 4
	}

	return cfg
}

func (c Config) Validate() error {
	if c.SlidegestAPIKey == "" {
		return fmt.Errorf("SLIDEGEST_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
