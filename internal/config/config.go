package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Redis       RedisConfig
	Copywriter  CopywriterConfig
	Assets      AssetsConfig
	Session     SessionConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig is used for the cart write-through store and session store
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CopywriterConfig is used to call the text-generation API for product
// descriptions; empty BaseURL means the fallback copy is always returned
type CopywriterConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// AssetsConfig controls admin image uploads
type AssetsConfig struct {
	Dir          string // local directory served under /static
	MaxSizeBytes int64
	PublicBase   string // prefix for returned URLs, e.g. /static
}

type SessionConfig struct {
	TTL time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	sessionTTL, err := time.ParseDuration(getEnvOrViper("SESSION_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "storefront"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrViper("REDIS_ADDR", "localhost:6379"),
			Password: getEnvOrViper("REDIS_PASSWORD", ""),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Copywriter: CopywriterConfig{
			BaseURL: strings.TrimSpace(getEnvOrViper("COPYWRITER_URL", "")),
			APIKey:  strings.TrimSpace(getEnvOrViper("COPYWRITER_API_KEY", "")),
			Model:   getEnvOrViper("COPYWRITER_MODEL", "gemini-3-flash-preview"),
		},
		Assets: AssetsConfig{
			Dir:          getEnvOrViper("ASSETS_DIR", "./uploads"),
			MaxSizeBytes: viper.GetInt64("ASSETS_MAX_SIZE_BYTES"),
			PublicBase:   getEnvOrViper("ASSETS_PUBLIC_BASE", "/static"),
		},
		Session:  SessionConfig{TTL: sessionTTL},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	if cfg.Assets.MaxSizeBytes == 0 {
		cfg.Assets.MaxSizeBytes = 5 << 20 // 5 MiB
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
