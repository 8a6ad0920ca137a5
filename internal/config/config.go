package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration.
type Config struct {
	Env        string `envconfig:"ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`

	// PostgreSQL (users, posts, contact messages)
	DBHost        string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" default:"abyss"`
	DBName        string        `envconfig:"DB_NAME" default:"abyss"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBPassword    string        `envconfig:"DB_PASSWORD"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNS" default:"20"`
	DBIdleTimeout time.Duration `envconfig:"DB_IDLE_TIMEOUT" default:"30s"`

	// Redis (session store)
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	// Sessions
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"168h"` // 7 days

	// Pepper applied via HMAC-SHA256 before bcrypt. May be empty; the HMAC
	// step still runs so bcrypt never sees more than 32 bytes.
	PasswordPepper string `envconfig:"PASSWORD_PEPPER"`

	// Bootstrap admin. The digest is a bcrypt hash supplied out of band;
	// the account is always approved with the admin role and has no row in
	// the users table. Leaving the hash empty disables the account.
	AdminUsername     string `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`

	// CORS
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// Startup connection policy: retry a bounded number of times with a
	// fixed delay, then fail fast.
	ConnectMaxRetries int           `envconfig:"CONNECT_MAX_RETRIES" default:"10"`
	ConnectRetryDelay time.Duration `envconfig:"CONNECT_RETRY_DELAY" default:"3s"`

	// Rate limit on the auth endpoints, requests per minute per client IP.
	AuthRateLimit uint `envconfig:"AUTH_RATE_LIMIT" default:"10"`
}

// GetAllowedOrigins splits the CORSAllowedOrigins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// DatabaseURL builds the Postgres connection string.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// Load reads configuration from an optional .env file and the environment.
func Load(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: could not load %s file: %v", envFilePath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("Warning: error checking %s file: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}

	return &cfg, nil
}
