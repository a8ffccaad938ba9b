package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"timely/internal/timestamp"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds all configuration for the application
type Config struct {
	Port                   string
	DatabaseURL            string // Key-value store database (sqlite://, postgres://, mysql://)
	BackendURL             string // External REST service; empty when running without one
	BackendTimeout         int    // Backend request timeout in seconds
	Version                string
	LogLevel               string
	InvalidTimestampPolicy string // "epoch" or "exclude"
	PreviewLength          int    // Runes kept in a thread's last message preview
	ScopeCacheTTLMinutes   int    // How long client profiles are cached
	SendGridAPIKey         string // SendGrid API key for admin notification emails
	NotificationEmail      string // Admin address notifications are mailed to
	NotificationFromEmail  string // Sender address of notification emails
	EnableSwagger          bool   // Whether /swagger/* is served
}

// Load initializes and returns application configuration
func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Port:                   getEnv("PORT", "8080"),
		DatabaseURL:            getEnv("DATABASE_URL", "sqlite://data/timely.db"),
		BackendURL:             os.Getenv("BACKEND_URL"),
		BackendTimeout:         getEnvInt("BACKEND_TIMEOUT", 10),
		Version:                getEnv("VERSION", "1.0.0"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		InvalidTimestampPolicy: getEnv("INVALID_TIMESTAMP_POLICY", string(timestamp.PolicyEpoch)),
		PreviewLength:          getEnvInt("PREVIEW_LENGTH", 100),
		ScopeCacheTTLMinutes:   getEnvInt("SCOPE_CACHE_TTL_MINUTES", 5),
		SendGridAPIKey:         os.Getenv("SENDGRID_API_KEY"),
		NotificationEmail:      os.Getenv("NOTIFICATION_EMAIL"),
		NotificationFromEmail:  getEnv("NOTIFICATION_FROM_EMAIL", "noreply@timely.app"),
		EnableSwagger:          getEnvBool("ENABLE_SWAGGER", true),
	}

	return config
}

// TimestampPolicy returns the parsed invalid-timestamp policy
func (c *Config) TimestampPolicy() timestamp.Policy {
	return timestamp.ParsePolicy(c.InvalidTimestampPolicy)
}

// BackendTimeoutDuration returns the backend timeout, falling back to 10s
func (c *Config) BackendTimeoutDuration() time.Duration {
	if c.BackendTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.BackendTimeout) * time.Second
}

// ScopeCacheTTL returns how long client profiles stay cached
func (c *Config) ScopeCacheTTL() time.Duration {
	if c.ScopeCacheTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(c.ScopeCacheTTLMinutes) * time.Minute
}

// getEnv gets an environment variable with a default fallback
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as integer with a default fallback
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as boolean with a default fallback
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// SetupLogger configures zerolog with JSON output and single-line format
func (c *Config) SetupLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "timely").
		Str("version", c.Version).
		Logger()

	// Set log level based on configuration
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || c.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	logger = logger.Level(level)

	return logger
}
