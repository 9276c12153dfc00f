package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Lead store
	LeadsTable string

	// AWS / LocalStack
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// Email notification
	EmailProvider   string // "ses", "sendgrid" or "none"
	SendGridAPIKey  string
	NotifyFromEmail string
	NotifyFromName  string
	NotifyToEmail   string

	// Lead event publishing (optional)
	LeadEventsQueueURL string

	// HTTP surface
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
	MaxBodyBytes       int64
	RequireConsent     bool

	// Distributed rate limiting (optional)
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
}

// ErrMissingLeadsTable indicates the process was started without a lead store.
var ErrMissingLeadsTable = errors.New("config: LEADS_TABLE is required")

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		LeadsTable: getEnv("LEADS_TABLE", ""),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		EmailProvider:   strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "ses"))),
		SendGridAPIKey:  getEnv("SENDGRID_API_KEY", ""),
		NotifyFromEmail: getEnv("NOTIFY_FROM_EMAIL", ""),
		NotifyFromName:  getEnv("NOTIFY_FROM_NAME", "Leadgate"),
		NotifyToEmail:   getEnv("NOTIFY_TO_EMAIL", ""),

		LeadEventsQueueURL: getEnv("LEAD_EVENTS_QUEUE_URL", ""),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 20),
		MaxBodyBytes:       int64(getEnvAsInt("MAX_BODY_BYTES", 64*1024)),
		RequireConsent:     getEnvAsBool("REQUIRE_CONSENT", false),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),
	}
}

// Validate checks configuration required at startup. A missing lead store is
// fatal; missing mail credentials are a degraded mode handled by the caller.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LeadsTable) == "" {
		return ErrMissingLeadsTable
	}
	return nil
}

// NotifierConfigured reports whether the process has enough configuration to
// attempt email delivery.
func (c *Config) NotifierConfigured() bool {
	if c.NotifyFromEmail == "" || c.NotifyToEmail == "" {
		return false
	}
	switch c.EmailProvider {
	case "ses":
		return true
	case "sendgrid":
		return c.SendGridAPIKey != ""
	default:
		return false
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable, dropping empty entries.
func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
