// Package config loads process configuration from the environment.
// All components receive their configuration explicitly at startup;
// nothing reads the environment after Load returns.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/finncap/origination/pkg/kafka"
	"github.com/finncap/origination/pkg/postgres"
)

// Config is the full process configuration.
type Config struct {
	Env      string
	LogLevel string

	GRPCPort int
	HTTPPort int

	Database      postgres.Config
	MigrationsDir string

	Kafka      kafka.Config
	EventTopic string

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	TextGenBaseURL string
	TextGenAPIKey  string
	TextGenModel   string

	SendGridAPIKey string
	EmailFrom      string
	EmailFromName  string

	DocumentDir string
	SanctionDir string
}

// Load reads the configuration from the environment, applying
// development defaults for anything unset.
func Load() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		GRPCPort: getEnvInt("GRPC_PORT", 50051),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),

		Database: postgres.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "origination"),
			Password: getEnv("DB_PASSWORD", "origination"),
			Database: getEnv("DB_NAME", "origination"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 2)),
		},
		MigrationsDir: getEnv("MIGRATIONS_DIR", "file://./migrations"),

		Kafka: kafka.Config{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		},
		EventTopic: getEnv("KAFKA_EVENT_TOPIC", "origination.events"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "origination"),
		JWTTTL:    time.Duration(getEnvInt("JWT_TTL_MINUTES", 1440)) * time.Minute,

		TextGenBaseURL: getEnv("TEXTGEN_BASE_URL", "https://api.openai.com/v1"),
		TextGenAPIKey:  getEnv("TEXTGEN_API_KEY", ""),
		TextGenModel:   getEnv("TEXTGEN_MODEL", "gpt-4o-mini"),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailFrom:      getEnv("EMAIL_FROM", "no-reply@finncap.example"),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "FinnCap Loans"),

		DocumentDir: getEnv("DOCUMENT_DIR", "./data/documents"),
		SanctionDir: getEnv("SANCTION_DIR", "./data/sanctions"),
	}

	if cfg.Env != "development" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required outside development")
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-only-secret"
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
