// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Database Configuration
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	DBSource          string        `mapstructure:"DB_SOURCE"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Auth Configuration
	JWTSecret string `mapstructure:"JWT_SECRET"`

	// File Storage Configuration
	StoragePath       string `mapstructure:"STORAGE_PATH"`
	StoragePublicBase string `mapstructure:"STORAGE_PUBLIC_BASE"`
	MaxUploadSizeMB   int64  `mapstructure:"MAX_UPLOAD_SIZE_MB"`

	// Application Specific Configuration
	DefaultCurrency  string  `mapstructure:"DEFAULT_CURRENCY"`
	DefaultMapLat    float64 `mapstructure:"DEFAULT_MAP_LAT"`
	DefaultMapLng    float64 `mapstructure:"DEFAULT_MAP_LNG"`
	MaxImagesPerPost int     `mapstructure:"MAX_IMAGES_PER_POST"`

	// Cron Jobs
	FavoriteSweepSchedule string `mapstructure:"FAVORITE_SWEEP_SCHEDULE"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	// Set default values
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "rentixe_db")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("JWT_SECRET", "")

	v.SetDefault("STORAGE_PATH", "./storage/listing-images")
	v.SetDefault("STORAGE_PUBLIC_BASE", "http://localhost:8080/storage/listing-images")
	v.SetDefault("MAX_UPLOAD_SIZE_MB", 10)

	v.SetDefault("DEFAULT_CURRENCY", "AED")
	v.SetDefault("DEFAULT_MAP_LAT", 25.2048)
	v.SetDefault("DEFAULT_MAP_LNG", 55.2708)
	v.SetDefault("MAX_IMAGES_PER_POST", 10)

	v.SetDefault("FAVORITE_SWEEP_SCHEDULE", "@daily")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute

	// GORM uses the DSN constructed from the individual DB_* params.
	// The DB_SOURCE env var, if set, is kept for tools like golang-migrate.
	cfg.DBSource = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode, cfg.DBTimezone)

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("FATAL: JWT_SECRET is not set. This is required for token verification")
	}
	cfg.StoragePublicBase = strings.TrimRight(cfg.StoragePublicBase, "/")

	return &cfg, nil
}
