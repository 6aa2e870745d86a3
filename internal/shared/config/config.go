package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	AppEnv          string
	HTTPAddr        string
	LogLevel        string
	ShutdownTimeout time.Duration
	Storage         StorageConfig
}

type StorageConfig struct {
	Driver string
	// Path is the SQLite file.
	Path string
	// URL is the Postgres DSN.
	URL string
}

// Load reads .env (if present) without overriding variables already set in
// the environment, then applies defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppEnv:          envString("APP_ENV", "dev"),
		HTTPAddr:        envString("HTTP_ADDR", ":8080"),
		LogLevel:        envString("LOG_LEVEL", "info"),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		Storage: StorageConfig{
			Driver: strings.ToLower(envString("STORAGE_DRIVER", DriverSQLite)),
			Path:   envString("DATABASE_PATH", "service_desk.db"),
			URL:    envString("DATABASE_URL", ""),
		},
	}
}

func (c Config) Validate() error {
	return c.Storage.Validate()
}

func (s StorageConfig) Validate() error {
	switch s.Driver {
	case DriverSQLite:
		if s.Path == "" {
			return errors.New("DATABASE_PATH is empty")
		}
	case DriverPostgres:
		if s.URL == "" {
			return errors.New("DATABASE_URL is empty")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", s.Driver)
	}
	return nil
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
