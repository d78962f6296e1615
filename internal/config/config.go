package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	Port     string
	LogLevel string

	Storage     string
	DatabaseURL string

	SessionStore  string
	SessionSecret []byte
	SessionMaxAge time.Duration
	CookieSecure  bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers []string

	SeedCatalog     bool
	AdminSignupOpen bool
}

// Load reads .env when present and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Notice: .env not loaded: %v. Using system environment variables", err)
	}

	return Config{
		Port:     EnvDefault("APP_PORT", "8080"),
		LogLevel: EnvDefault("LOG_LEVEL", "info"),

		Storage:     strings.ToLower(EnvDefault("STORAGE", StorageMemory)),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		SessionStore:  strings.ToLower(EnvDefault("SESSION_STORE", SessionStoreMemory)),
		SessionSecret: []byte(os.Getenv("SESSION_SECRET")),
		SessionMaxAge: EnvDurationDefault("SESSION_MAX_AGE", 7*24*time.Hour),
		CookieSecure:  EnvBoolDefault("COOKIE_SECURE", false),

		RedisAddr:     EnvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       EnvIntDefault("REDIS_DB", 0),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		SeedCatalog:     EnvBoolDefault("SEED_CATALOG", true),
		AdminSignupOpen: EnvBoolDefault("ADMIN_SIGNUP_OPEN", false),
	}
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORAGE=%s", StoragePostgres)
		}
	default:
		return fmt.Errorf("unknown STORAGE %q (allowed: %s, %s)", c.Storage, StorageMemory, StoragePostgres)
	}
	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return fmt.Errorf("unknown SESSION_STORE %q (allowed: %s, %s)", c.SessionStore, SessionStoreMemory, SessionStoreRedis)
	}
	if len(c.SessionSecret) < 16 {
		return fmt.Errorf("SESSION_SECRET must be at least 16 bytes")
	}
	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("SESSION_MAX_AGE must be positive")
	}
	return nil
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
