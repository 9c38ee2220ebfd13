package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr    string
	PostgresDSN string
	Environment string
	LogLevel    string

	AuthTokenSecret string

	StorageRoot string

	SecretsKeyBase64 string

	TemporalAddress   string
	TemporalNamespace string
	TaskQueue         string
	WorkerHealthAddr  string

	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	SMTPEncryption  string
	SMTPFromAddress string
	SMTPFromName    string

	WkhtmltopdfPath string

	RateLimitRequests      int
	RateLimitWindowSeconds int
	RateLimitMaxKeys       int
	RateLimitFailClosed    bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:               addr,
		PostgresDSN:            os.Getenv("POSTGRES_DSN"),
		Environment:            envDefault("APP_ENV", "development"),
		LogLevel:               envDefault("LOG_LEVEL", "info"),
		AuthTokenSecret:        os.Getenv("AUTH_TOKEN_SECRET"),
		StorageRoot:            envDefault("STORAGE_ROOT", "storage"),
		SecretsKeyBase64:       os.Getenv("SECRETS_KEY_BASE64"),
		TemporalAddress:        envDefault("TEMPORAL_ADDRESS", "localhost:7233"),
		TemporalNamespace:      envDefault("TEMPORAL_NAMESPACE", "default"),
		TaskQueue:              envDefault("TASK_QUEUE", "certificate-rows"),
		WorkerHealthAddr:       envDefault("WORKER_HEALTH_ADDR", ":8081"),
		SMTPHost:               os.Getenv("SMTP_HOST"),
		SMTPPort:               envIntDefault("SMTP_PORT", 587),
		SMTPUsername:           os.Getenv("SMTP_USERNAME"),
		SMTPPassword:           os.Getenv("SMTP_PASSWORD"),
		SMTPEncryption:         envDefault("SMTP_ENCRYPTION", "tls"),
		SMTPFromAddress:        os.Getenv("SMTP_FROM_ADDRESS"),
		SMTPFromName:           os.Getenv("SMTP_FROM_NAME"),
		WkhtmltopdfPath:        os.Getenv("WKHTMLTOPDF_PATH"),
		RateLimitRequests:      envIntDefault("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindowSeconds: envIntDefault("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitMaxKeys:       envIntDefault("RATE_LIMIT_MAX_KEYS", 10000),
		RateLimitFailClosed:    envBoolDefault("RATE_LIMIT_FAIL_CLOSED", false),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:                envIntDefault("REDIS_DB", 0),
	}
}

func (c Config) RateLimitWindow() time.Duration {
	if c.RateLimitWindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

func envDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func envBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "Yes":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "No":
		return false
	default:
		return def
	}
}
