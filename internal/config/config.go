// Package config provides runtime configuration for the grocery list service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the service configuration knobs, all sourced from GROCERY_*
// environment variables with sensible defaults.
type Config struct {
	Addr            string
	DBPath          string
	LogLevel        string
	LogFormat       string
	CategoryTable   string // optional path to a JSON category table override
	ShutdownTimeout time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durenvs(key string, defSec int) time.Duration {
	v := getenv(key, "")
	if v == "" {
		return time.Duration(defSec) * time.Second
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return time.Duration(defSec) * time.Second
	}
	return time.Duration(n) * time.Second
}

// Load collects configuration from the environment with defaults.
func Load() Config {
	return Config{
		Addr:            getenv("GROCERY_ADDR", ":8080"),
		DBPath:          getenv("GROCERY_DB_PATH", "grocery.db"),
		LogLevel:        getenv("GROCERY_LOG_LEVEL", "info"),
		LogFormat:       getenv("GROCERY_LOG_FORMAT", "text"),
		CategoryTable:   getenv("GROCERY_CATEGORY_TABLE", ""),
		ShutdownTimeout: durenvs("GROCERY_SHUTDOWN_TIMEOUT", 5),
	}
}
