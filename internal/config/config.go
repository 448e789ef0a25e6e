package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Incident rules
	IncidentRateLimitPerHour  int     `env:"INCIDENT_RATE_LIMIT_PER_HOUR" envDefault:"5"`
	IncidentDuplicateRadiusM  float64 `env:"INCIDENT_DUPLICATE_RADIUS_M" envDefault:"50"`
	IncidentDuplicateWindow   time.Duration `env:"INCIDENT_DUPLICATE_WINDOW" envDefault:"10m"`
	IncidentTTL               time.Duration `env:"INCIDENT_TTL" envDefault:"24h"`
	IncidentExpireInterval    time.Duration `env:"INCIDENT_EXPIRE_INTERVAL" envDefault:"5m"`

	// Geo privacy
	GeoFuzzMaxOffsetM float64 `env:"GEO_FUZZ_MAX_OFFSET_M" envDefault:"150"`
	GeoSnapGridM      float64 `env:"GEO_SNAP_GRID_M" envDefault:"200"`

	// Reputation
	ReputationConfirmBonus         int `env:"REPUTATION_CONFIRM_BONUS" envDefault:"2"`
	ReputationRefutePenalty        int `env:"REPUTATION_REFUTE_PENALTY" envDefault:"3"`
	ReputationResolveBonus         int `env:"REPUTATION_RESOLVE_BONUS" envDefault:"5"`
	ReputationThresholdConfirms    int `env:"REPUTATION_THRESHOLD_CONFIRMATIONS" envDefault:"3"`
	ReputationThresholdRefutes     int `env:"REPUTATION_THRESHOLD_REFUTATIONS" envDefault:"3"`
	MinReputationForRestrictedType int `env:"MINIMUM_REPUTATION_FOR_RESTRICTED" envDefault:"10"`

	// Alert feed
	AlertFeedLimitPerPreference int `env:"ALERT_FEED_LIMIT_PER_PREFERENCE" envDefault:"50"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig reads configuration from environment variables and an optional
// .env file.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		DatabaseURL:                    os.Getenv("DATABASE_URL"),
		HTTPPort:                       getEnv("HTTP_PORT", "8080"),
		LogLevel:                       getEnv("LOG_LEVEL", "info"),
		RedisAddr:                      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:                      os.Getenv("REDIS_PASSWORD"),
		RedisDB:                        getEnvAsInt("REDIS_DB", 0),
		WebhookURL:                     os.Getenv("WEBHOOK_URL"),
		WebhookSecret:                  os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:                 getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:              getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:               getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		IncidentRateLimitPerHour:       getEnvAsInt("INCIDENT_RATE_LIMIT_PER_HOUR", 5),
		IncidentDuplicateRadiusM:       getEnvAsFloat("INCIDENT_DUPLICATE_RADIUS_M", 50),
		IncidentDuplicateWindow:        getEnvAsDuration("INCIDENT_DUPLICATE_WINDOW", 10*time.Minute),
		IncidentTTL:                    getEnvAsDuration("INCIDENT_TTL", 24*time.Hour),
		IncidentExpireInterval:         getEnvAsDuration("INCIDENT_EXPIRE_INTERVAL", 5*time.Minute),
		GeoFuzzMaxOffsetM:              getEnvAsFloat("GEO_FUZZ_MAX_OFFSET_M", 150),
		GeoSnapGridM:                   getEnvAsFloat("GEO_SNAP_GRID_M", 200),
		ReputationConfirmBonus:         getEnvAsInt("REPUTATION_CONFIRM_BONUS", 2),
		ReputationRefutePenalty:        getEnvAsInt("REPUTATION_REFUTE_PENALTY", 3),
		ReputationResolveBonus:         getEnvAsInt("REPUTATION_RESOLVE_BONUS", 5),
		ReputationThresholdConfirms:    getEnvAsInt("REPUTATION_THRESHOLD_CONFIRMATIONS", 3),
		ReputationThresholdRefutes:     getEnvAsInt("REPUTATION_THRESHOLD_REFUTATIONS", 3),
		MinReputationForRestrictedType: getEnvAsInt("MINIMUM_REPUTATION_FOR_RESTRICTED", 10),
		AlertFeedLimitPerPreference:    getEnvAsInt("ALERT_FEED_LIMIT_PER_PREFERENCE", 50),
	}

	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable or the default.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt returns the environment variable parsed as int or the default.
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat returns the environment variable parsed as float64 or the default.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration returns the environment variable parsed as time.Duration or the default.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
