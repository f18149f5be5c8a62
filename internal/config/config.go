package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        int
	DatabaseURL string
	GinMode     string
	TLSCertFile string
	TLSKeyFile  string

	SessionSecret string
	SessionMaxAge time.Duration
	CookieSecure  bool

	LogLevel  string
	LogFormat string

	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	AuthRateLimit  int
	MigrateOnStart bool
}

type Env interface {
	Getenv(key string) string
}

type osEnv struct{}

func (osEnv) Getenv(key string) string { return os.Getenv(key) }

// LoadConfig reads an optional .env file from the working directory and then
// resolves the configuration from the process environment. Variables already
// set in the environment win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return LoadConfigFromEnv(osEnv{})
}

func LoadConfigFromEnv(env Env) (Config, error) {
	cfg := Config{
		Port:              3333,
		GinMode:           "release",
		SessionMaxAge:     7 * 24 * time.Hour,
		LogLevel:          "info",
		LogFormat:         "text",
		DBMaxOpenConns:    25,
		DBMaxIdleConns:    25,
		DBConnMaxLifetime: 30 * time.Minute,
		AuthRateLimit:     30,
		MigrateOnStart:    true,
	}

	if raw := env.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT")
		}
		cfg.Port = port
	}

	cfg.DatabaseURL = env.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}

	cfg.SessionSecret = env.Getenv("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}

	if raw := env.Getenv("GIN_MODE"); raw != "" {
		cfg.GinMode = raw
	}

	cfg.TLSCertFile = env.Getenv("TLS_CERT_FILE")
	cfg.TLSKeyFile = env.Getenv("TLS_KEY_FILE")

	if raw := env.Getenv("SESSION_MAX_AGE_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("invalid SESSION_MAX_AGE_SECONDS")
		}
		cfg.SessionMaxAge = time.Duration(seconds) * time.Second
	}

	var err error
	if cfg.CookieSecure, err = boolFromEnv(env, "COOKIE_SECURE", false); err != nil {
		return Config{}, err
	}
	if cfg.MigrateOnStart, err = boolFromEnv(env, "MIGRATE_ON_START", true); err != nil {
		return Config{}, err
	}

	if raw := env.Getenv("LOG_LEVEL"); raw != "" {
		cfg.LogLevel = strings.ToLower(raw)
	}
	if raw := env.Getenv("LOG_FORMAT"); raw != "" {
		format := strings.ToLower(raw)
		if format != "text" && format != "json" {
			return Config{}, fmt.Errorf("invalid LOG_FORMAT")
		}
		cfg.LogFormat = format
	}

	if cfg.DBMaxOpenConns, err = positiveIntFromEnv(env, "DB_MAX_OPEN_CONNS", cfg.DBMaxOpenConns); err != nil {
		return Config{}, err
	}
	if cfg.DBMaxIdleConns, err = positiveIntFromEnv(env, "DB_MAX_IDLE_CONNS", cfg.DBMaxIdleConns); err != nil {
		return Config{}, err
	}
	lifetime, err := positiveIntFromEnv(env, "DB_CONN_MAX_LIFETIME_MINUTES", int(cfg.DBConnMaxLifetime/time.Minute))
	if err != nil {
		return Config{}, err
	}
	cfg.DBConnMaxLifetime = time.Duration(lifetime) * time.Minute

	if cfg.AuthRateLimit, err = positiveIntFromEnv(env, "AUTH_RATE_LIMIT_PER_MINUTE", cfg.AuthRateLimit); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func positiveIntFromEnv(env Env, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(env.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return value, nil
}

func boolFromEnv(env Env, key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(env.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s", key)
	}
	return value, nil
}
