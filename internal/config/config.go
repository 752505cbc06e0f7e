package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/admin.db"`
	SPADir   string     `env:"SPA_DIR" envDefault:"../web/dist"`

	APIBaseURL string `env:"API_BASE_URL"`
	APIToken   string `env:"API_TOKEN"`

	SupabaseURL   string        `env:"SUPABASE_URL"`
	SupabaseKey   string        `env:"SUPABASE_KEY"`
	StorageBucket string        `env:"STORAGE_BUCKET" envDefault:"documentos"`
	SignedURLTTL  time.Duration `env:"SIGNED_URL_TTL" envDefault:"60s"`

	RedisURL string `env:"REDIS_URL"`

	PageSize int `env:"PAGE_SIZE" envDefault:"6"`

	// The initial admin is seeded only when ADMIN_PASSWORD_HASH is set.
	AdminEmail        string `env:"ADMIN_EMAIL" envDefault:"admin@carrera.local"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
}

// Load reads an optional .env file from the working directory and then
// parses the environment. Variables already set win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	if c.APIBaseURL == "" {
		return errors.New("API_BASE_URL is required")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.SignedURLTTL < time.Second {
		return fmt.Errorf("SIGNED_URL_TTL must be at least 1s, got %s", c.SignedURLTTL)
	}
	if c.AdminPasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(c.AdminPasswordHash)); err != nil {
			return fmt.Errorf("ADMIN_PASSWORD_HASH is not a bcrypt hash: %w", err)
		}
	}
	return nil
}
