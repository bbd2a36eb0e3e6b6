package api

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backends selectable with STORAGE_BACKEND.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config carries environment-driven settings for the API and worker processes.
type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"local"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	StorageBackend  string        `env:"STORAGE_BACKEND"`
	PostgresDSN     string        `env:"POSTGRES_DSN"`

	TemporalAddress   string `env:"TEMPORAL_ADDRESS" envDefault:"localhost:7233"`
	TemporalNamespace string `env:"TEMPORAL_NAMESPACE" envDefault:"default"`
	TemporalDisabled  bool   `env:"TEMPORAL_DISABLED"`

	S3 S3Config

	SMTP SMTPConfig

	DocumentsPortalURL string `env:"DOCUMENTS_PORTAL_URL" envDefault:"http://localhost:3000/documentos"`
}

// S3Config addresses the bucket receiving uploaded documents. An empty bucket selects the in-memory store.
type S3Config struct {
	Bucket          string `env:"S3_BUCKET"`
	Region          string `env:"S3_REGION"`
	Endpoint        string `env:"S3_ENDPOINT"`
	PublicBaseURL   string `env:"S3_PUBLIC_BASE_URL"`
	ForcePathStyle  bool   `env:"S3_FORCE_PATH_STYLE"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
}

// SMTPConfig configures outgoing mail. An empty host logs invitations instead of sending them.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"MAIL_FROM" envDefault:"adocao@localhost"`
}

// LoadConfig loads ENV_FILE (default .env) when present, then parses the environment and validates it.
func LoadConfig() (Config, error) {
	envFile := strings.TrimSpace(os.Getenv("ENV_FILE"))
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.normalize()
}

func (c *Config) normalize() error {
	c.PostgresDSN = strings.TrimSpace(c.PostgresDSN)
	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	if c.StorageBackend == "" {
		c.StorageBackend = StorageMemory
		if c.PostgresDSN != "" {
			c.StorageBackend = StoragePostgres
		}
	}
	switch c.StorageBackend {
	case StorageMemory:
	case StoragePostgres:
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StorageMemory, StoragePostgres, c.StorageBackend)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.SMTP.Port <= 0 {
		return errors.New("SMTP_PORT must be a positive integer")
	}
	return nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
