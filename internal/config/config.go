package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"querydemo/internal/errs"
)

// DatabaseConfig holds MySQL connection settings.
type DatabaseConfig struct {
	// URL is a go-sql-driver/mysql DSN, e.g. user:pass@tcp(localhost:3306)/diesel_demo
	URL                string `validate:"required"`
	MaxOpenConns       int    `validate:"gte=0"`
	MaxIdleConns       int    `validate:"gte=0"`
	ConnMaxLifetimeSec int    `validate:"gte=0"`
	AutoMigrate        bool
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level    string `validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Format   string `validate:"omitempty,oneof=json console"`
	Timezone string
}

// Location returns the configured timezone, UTC when unset or unknown.
func (c LogConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port           string
	PushgatewayURL string `validate:"omitempty,url"`
	Database       DatabaseConfig
	Log            LogConfig
}

var validate = validator.New()

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// A missing DATABASE_URL is reported as errs.ErrConnection.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:           getEnv("PORT", "8080"),
		PushgatewayURL: getEnv("PUSHGATEWAY_URL", ""),
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 1),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 1),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			AutoMigrate:        getEnvBool("DB_AUTO_MIGRATE", false),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Format:   getEnv("LOG_FORMAT", "json"),
			Timezone: getEnv("APP_TIMEZONE", "UTC"),
		},
	}
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL must be set", errs.ErrConnection)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
