package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var ErrMissingAPIKey = errors.New("ESV_API_KEY is not set")

// Config is read from the environment, optionally seeded by a .env file.
type Config struct {
	ESV   ESVConfig
	Cache CacheConfig
	Log   LogConfig
}

type ESVConfig struct {
	APIKey  string        `env:"ESV_API_KEY"`
	BaseURL string        `env:"ESV_BASE_URL" env-default:"https://api.esv.org"`
	Timeout time.Duration `env:"ESV_TIMEOUT"  env-default:"15s"`
}

type CacheConfig struct {
	Disabled bool          `env:"CACHE_DISABLED" env-default:"false"`
	TTL      time.Duration `env:"CACHE_TTL"      env-default:"24h"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
	File  string `env:"LOG_FILE"`
}

// Load reads a dotenv file (if present) into the process environment, then
// the environment into a Config. Variables already set win over the file.
// An explicit envFile that does not exist is an error; the default ".env"
// is optional.
func Load(envFile string) (*Config, error) {
	explicit := envFile != ""
	if !explicit {
		envFile = ".env"
	}

	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", envFile, err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if cfg.Log.File == "" {
		cfg.Log.File = defaultLogFile()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks values cleanenv cannot.
func (c *Config) Validate() error {
	if c.ESV.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.ESV.Timeout <= 0 {
		return fmt.Errorf("ESV_TIMEOUT must be positive, got %s", c.ESV.Timeout)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative, got %s", c.Cache.TTL)
	}
	return nil
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "scripture-tui.log"
	}
	return filepath.Join(dir, "scripture-tui", "scripture-tui.log")
}
