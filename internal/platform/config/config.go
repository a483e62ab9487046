// Package config builds the process configuration from the environment.
package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	pstrings "talentnet/pkg/platform/strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	Environment     string
	LogLevel        string
	JWTSigningKey   string
	JWTIssuer       string
	ShutdownTimeout time.Duration
	// TrustedProxies lists the CIDRs or IPs whose forwarding headers are
	// believed. Empty means the peer address is always the client.
	TrustedProxies  []string

	Database   DatabaseConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Visibility VisibilityConfig
}

// DatabaseConfig holds Postgres connection settings.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis connection settings. An empty URL disables the
// view guard.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds the audit sink settings. No brokers means audit events
// stay in memory.
type KafkaConfig struct {
	Brokers  []string
	Topic    string
	ClientID string
}

// VisibilityConfig tunes resolution and view recording.
type VisibilityConfig struct {
	ViewWindow           time.Duration
	ViewTimeout          time.Duration
	FactLookupTimeout    time.Duration
	FactFailureThreshold int
	FactCooldown         time.Duration
	CacheMaxAge          time.Duration
	AuditBuffer          int
	OpsAuditSampleRate   float64
}

// IsProduction reports whether the process runs with production defaults.
func (s Server) IsProduction() bool {
	return s.Environment == "production"
}

// LoadEnv overlays .env files found in the working directory onto the
// process environment.
func LoadEnv(logger *slog.Logger) {
	files := []string{".env", ".env.local"}
	loaded := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Overload(file); err != nil {
			logger.Warn("failed to load env file", "file", file, "error", err)
			continue
		}
		loaded = append(loaded, file)
	}
	if len(loaded) > 0 {
		logger.Debug("loaded env files", "files", strings.Join(loaded, ", "))
	}
}

const devSigningKey = "dev-secret-key-change-in-production"

// ErrMissingSigningKey is returned in production when JWT_SIGNING_KEY is unset.
var ErrMissingSigningKey = errors.New("JWT_SIGNING_KEY must be set in production")

// FromEnv builds a Server config from environment variables so main stays lean.
// Production refuses to start on the development signing key.
func FromEnv() (Server, error) {
	environment := getEnv("ENVIRONMENT", "development")
	jwtSigningKey := strings.TrimSpace(os.Getenv("JWT_SIGNING_KEY"))
	if jwtSigningKey == "" || jwtSigningKey == devSigningKey {
		if environment == "production" {
			return Server{}, ErrMissingSigningKey
		}
		jwtSigningKey = devSigningKey
	}

	return Server{
		Addr:            getEnv("TALENTNET_ADDR", ":8080"),
		Environment:     environment,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		JWTSigningKey:   jwtSigningKey,
		JWTIssuer:       getEnv("JWT_ISSUER", "talentnet"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		TrustedProxies:  getEnvList("TRUSTED_PROXIES"),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getEnvInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvDuration("REDIS_READ_TIMEOUT", 500*time.Millisecond),
			WriteTimeout: getEnvDuration("REDIS_WRITE_TIMEOUT", 500*time.Millisecond),
		},
		Kafka: KafkaConfig{
			Brokers:  getEnvList("KAFKA_BROKERS"),
			Topic:    getEnv("KAFKA_AUDIT_TOPIC", "talentnet.audit"),
			ClientID: getEnv("KAFKA_CLIENT_ID", "talentnet-visibility"),
		},
		Visibility: VisibilityConfig{
			ViewWindow:           getEnvDuration("VIEW_WINDOW", 24*time.Hour),
			ViewTimeout:          getEnvDuration("VIEW_TIMEOUT", 5*time.Second),
			FactLookupTimeout:    getEnvDuration("FACT_LOOKUP_TIMEOUT", 2*time.Second),
			FactFailureThreshold: getEnvInt("FACT_FAILURE_THRESHOLD", 5),
			FactCooldown:         getEnvDuration("FACT_COOLDOWN", 10*time.Second),
			CacheMaxAge:          getEnvDuration("PROFILE_CACHE_MAX_AGE", 60*time.Second),
			AuditBuffer:          getEnvInt("AUDIT_BUFFER", 1024),
			OpsAuditSampleRate:   getEnvFloat("AUDIT_OPS_SAMPLE_RATE", 1),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable, dropping blanks and repeats.
func getEnvList(key string) []string {
	return pstrings.SplitList(os.Getenv(key))
}
