package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port      string
	Env       string
	LogLevel  string
	LogFormat string

	DatabaseURL string

	QueueBackend  string
	QueueName     string
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
	SQSQueueURL   string
	WorkerCount   int

	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	EmailProvider     string
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	SESFromEmail      string
	SESFromName       string
	NotifyEmailTo     string

	ClickUpAPIKey     string
	ClickUpListID     string
	ClickUpBaseURL    string
	ClickUpTimeout    time.Duration
	ClickUpMaxRetries int

	StaffJWTSecret            string
	CORSAllowedOrigins        []string
	ContactRateLimitPerMinute int
	// Honor X-Forwarded-For / X-Real-IP; only safe behind a proxy that overwrites them.
	TrustProxyHeaders bool
}

// ClickUpConfig is the task-creation slice of the configuration.
type ClickUpConfig struct {
	APIKey     string
	ListID     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// Enabled reports whether both credentials needed to create tasks are present.
func (c ClickUpConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != "" && strings.TrimSpace(c.ListID) != ""
}

// ClickUp returns the task-creation settings.
func (c *Config) ClickUp() ClickUpConfig {
	return ClickUpConfig{
		APIKey:     c.ClickUpAPIKey,
		ListID:     c.ClickUpListID,
		BaseURL:    c.ClickUpBaseURL,
		Timeout:    c.ClickUpTimeout,
		MaxRetries: c.ClickUpMaxRetries,
	}
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "8080"),
		Env:       getEnv("ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		QueueBackend:  strings.ToLower(getEnv("QUEUE_BACKEND", "memory")),
		QueueName:     getEnv("QUEUE_NAME", "contact-notifications"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),
		SQSQueueURL:   getEnv("SQS_QUEUE_URL", ""),
		WorkerCount:   getEnvAsInt("WORKER_COUNT", 2),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		EmailProvider:     strings.ToLower(getEnv("EMAIL_PROVIDER", "auto")),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", "noreply@hardrock-co.com"),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "HardRock Agency"),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),
		SESFromName:       getEnv("SES_FROM_NAME", "HardRock Agency"),
		NotifyEmailTo:     getEnv("NOTIFY_EMAIL_TO", "sales@hardrock-co.com"),

		ClickUpAPIKey:     getEnv("CLICKUP_API_KEY", ""),
		ClickUpListID:     getEnv("CLICKUP_LIST_ID", ""),
		ClickUpBaseURL:    getEnv("CLICKUP_BASE_URL", "https://api.clickup.com"),
		ClickUpTimeout:    getEnvAsDuration("CLICKUP_TIMEOUT", 10*time.Second),
		ClickUpMaxRetries: getEnvAsInt("CLICKUP_MAX_RETRIES", 1),

		StaffJWTSecret:            getEnv("STAFF_JWT_SECRET", ""),
		CORSAllowedOrigins:        getEnvAsList("CORS_ALLOWED_ORIGINS"),
		ContactRateLimitPerMinute: getEnvAsInt("CONTACT_RATE_LIMIT_PER_MINUTE", 5),
		TrustProxyHeaders:         getEnvAsBool("TRUST_PROXY_HEADERS", false),
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

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
