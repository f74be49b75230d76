package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"ordering/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
)

const (
	FeedMemory   = "memory"
	FeedPostgres = "postgres"
	FeedRedis    = "redis"

	DefaultPendingPaymentTTL = 48 * time.Hour
)

type Config struct {
	HTTPPort   string
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBDSN      string

	FeedDriver  string
	RedisURL    string
	FeedChannel string

	JWTSecret string

	PaymentGatewayURL    string
	PaymentGatewayKeyID  string
	PaymentGatewaySecret string
	PendingPaymentTTL    time.Duration

	LogLevel slog.Level
}

// LoadConfig reads the environment, preferring variables already set over the values
// in envFile. A missing envFile is not an error.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	ttl, err := time.ParseDuration(envOr("PAYMENT_PENDING_TTL", DefaultPendingPaymentTTL.String()))
	if err != nil {
		return Config{}, fmt.Errorf("PAYMENT_PENDING_TTL: %w", err)
	}
	var level slog.Level
	if err = level.UnmarshalText([]byte(envOr("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	cfg := Config{
		HTTPPort:             envOr("HTTP_PORT", "8080"),
		DBDriver:             strings.ToLower(envOr("DB_DRIVER", postgres.DriverPostgres)),
		DBHost:               envOr("DB_HOST", "localhost"),
		DBPort:               envOr("DB_PORT", "5432"),
		DBUser:               os.Getenv("DB_USER"),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               envOr("DB_NAME", "ordering"),
		DBSslMode:            envOr("DB_SSLMODE", "disable"),
		DBDSN:                os.Getenv("DB_DSN"),
		FeedDriver:           strings.ToLower(envOr("FEED_DRIVER", FeedMemory)),
		RedisURL:             envOr("REDIS_URL", "redis://localhost:6379/0"),
		FeedChannel:          envOr("FEED_CHANNEL", "ordering_changes"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		PaymentGatewayURL:    os.Getenv("PAYMENT_GATEWAY_URL"),
		PaymentGatewayKeyID:  os.Getenv("PAYMENT_GATEWAY_KEY_ID"),
		PaymentGatewaySecret: os.Getenv("PAYMENT_GATEWAY_SECRET"),
		PendingPaymentTTL:    ttl,
		LogLevel:             level,
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings every process needs.
func (c Config) Validate() error {
	switch c.FeedDriver {
	case FeedMemory, FeedPostgres, FeedRedis:
	default:
		return fmt.Errorf("FEED_DRIVER %q is not one of memory, postgres, redis", c.FeedDriver)
	}
	if c.FeedDriver == FeedPostgres && c.DBDriver != postgres.DriverPostgres {
		return errors.New("FEED_DRIVER=postgres requires DB_DRIVER=postgres")
	}
	if c.PendingPaymentTTL <= 0 {
		return errors.New("PAYMENT_PENDING_TTL must be positive")
	}
	return nil
}

// Database maps the DB_* settings onto the store configuration.
func (c Config) Database() postgres.DatabaseConfig {
	return postgres.DatabaseConfig{
		Driver:   c.DBDriver,
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSslMode,
		DSN:      c.DBDSN,
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
