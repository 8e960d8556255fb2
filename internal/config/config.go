package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the reference server configuration, read from the environment.
type Config struct {
	Port        string
	Environment string
	DatabaseURL string // empty: in-memory store
	TablePrefix string
	RedisURL    string // empty: no list cache
	CORSOrigins string
	LogDir      string // empty: log to stdout only

	ListCacheTTL time.Duration

	// Session tokens
	SessionSecret string
	SessionTTL    time.Duration
	JWKSURL       string // optional external issuer
	SecureCookies bool

	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   env,
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		TablePrefix:   getTablePrefix(env),
		RedisURL:      getEnv("REDIS_URL", ""),
		CORSOrigins:   getEnv("CORS_ORIGINS", "http://localhost:3000"),
		LogDir:        getEnv("LOG_DIR", ""),
		ListCacheTTL:  getDuration("LIST_CACHE_TTL", 30*time.Second),
		SessionSecret: getEnv("SESSION_SECRET", "liteboard-dev-secret"),
		SessionTTL:    getDuration("SESSION_TTL", 24*time.Hour),
		JWKSURL:       getEnv("JWKS_URL", ""),
		SecureCookies: getEnv("SECURE_COOKIES", getDefaultSecure(env)) == "true",
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// DevLoginEnabled reports whether POST /auth/login may issue sessions by username alone.
func (c *Config) DevLoginEnabled() bool {
	return c.Environment == "dev" || c.Environment == "test"
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getDefaultSecure(env string) string {
	if env == "prod" {
		return "true"
	}
	return "false"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration accepts Go durations ("30s") or plain seconds ("30").
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
