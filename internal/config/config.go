package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const devJWTSecret = "change_this"

// Config is the process configuration, read from the environment and an
// optional .env file.
type Config struct {
	AppPort     string
	Environment string
	FrontendURL string

	DBDriver       string
	DatabaseDSN    string
	DBResetOnStart bool

	JWTSecret string
	JWTTTL    time.Duration

	// Domain events are published only when RabbitMQURL is set.
	RabbitMQURL      string
	RabbitMQExchange string

	// Rate limiting is enabled only when RedisURL is set.
	RedisURL             string
	RateLimitMaxRequests int
	RateLimitWindow      time.Duration
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads configuration. A missing .env file is not an error; invalid
// values are.
func Load() (*Config, error) {
	// Containers pass variables directly, so .env is optional.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("FRONTEND_URL", "*")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("DB_RESET_ON_START", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "8h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "storerating.events")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RATE_LIMIT_MAX_REQUESTS", 20)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:              v.GetString("APP_PORT"),
		Environment:          strings.ToLower(v.GetString("APP_ENV")),
		FrontendURL:          v.GetString("FRONTEND_URL"),
		DBDriver:             strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:          v.GetString("DATABASE_DSN"),
		DBResetOnStart:       v.GetBool("DB_RESET_ON_START"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		JWTTTL:               v.GetDuration("JWT_TTL"),
		RabbitMQURL:          v.GetString("RABBITMQ_URL"),
		RabbitMQExchange:     v.GetString("RABBITMQ_EXCHANGE"),
		RedisURL:             v.GetString("REDIS_URL"),
		RateLimitMaxRequests: v.GetInt("RATE_LIMIT_MAX_REQUESTS"),
		RateLimitWindow:      v.GetDuration("RATE_LIMIT_WINDOW"),
	}

	if !strings.HasPrefix(cfg.AppPort, ":") && !strings.Contains(cfg.AppPort, ":") {
		cfg.AppPort = ":" + cfg.AppPort
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DatabaseDSN == "" {
			cfg.DatabaseDSN = "host=localhost user=postgres password=postgres dbname=storerating port=5432 sslmode=disable"
		}
	case "sqlite":
		if cfg.DatabaseDSN == "" {
			cfg.DatabaseDSN = "storerating.db?_foreign_keys=on"
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q: want postgres or sqlite", cfg.DBDriver)
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("JWT_SECRET is required when APP_ENV is %q", cfg.Environment)
		}
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("invalid JWT_TTL %q", v.GetString("JWT_TTL"))
	}
	if cfg.RateLimitWindow <= 0 || cfg.RateLimitMaxRequests <= 0 {
		return nil, fmt.Errorf("rate limit needs a positive RATE_LIMIT_MAX_REQUESTS and RATE_LIMIT_WINDOW")
	}
	return cfg, nil
}
