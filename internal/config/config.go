// Package config loads client settings from a YAML file, an optional .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL   = "http://localhost:8000"
	DefaultTimeout  = 10 * time.Second
	DefaultCurrency = "USD"
)

type Config struct {
	API      APIConfig     `yaml:"api"`
	Store    StoreConfig   `yaml:"store"`
	Logging  LoggingConfig `yaml:"logging"`
	Currency string        `yaml:"currency"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"` // memory, sqlite, postgres
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"` // json, console
}

func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: DefaultAPIURL,
			Timeout: DefaultTimeout,
		},
		Store: StoreConfig{
			Driver: "sqlite",
			Path:   defaultStorePath(),
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
		Currency: DefaultCurrency,
	}
}

// Load reads path (if non-empty), then .env (if present), then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("os.ReadFile: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("yaml.Unmarshal: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("godotenv.Load: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.API.BaseURL = getEnv("FLUXSHOP_API_URL", c.API.BaseURL)
	c.Store.Driver = getEnv("FLUXSHOP_STORE_DRIVER", c.Store.Driver)
	c.Store.Path = getEnv("FLUXSHOP_STORE_PATH", c.Store.Path)
	c.Store.DSN = getEnv("FLUXSHOP_STORE_DSN", c.Store.DSN)
	c.Logging.Level = getEnv("FLUXSHOP_LOG_LEVEL", c.Logging.Level)
	c.Currency = getEnv("FLUXSHOP_CURRENCY", c.Currency)

	if raw := os.Getenv("FLUXSHOP_API_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			c.API.Timeout = d
		}
	}
}

func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url[%s] is not valid", c.API.BaseURL)
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout[%s] must be positive", c.API.Timeout)
	}

	switch c.Store.Driver {
	case "memory":
	case "sqlite":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is empty")
		}
	case "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is empty")
		}
	default:
		return fmt.Errorf("store.driver[%s] is not supported", c.Store.Driver)
	}

	if _, err := c.CurrencyUnit(); err != nil {
		return err
	}

	return nil
}

func (c Config) CurrencyUnit() (currency.Unit, error) {
	unit, err := currency.ParseISO(c.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", c.Currency, err)
	}
	return unit, nil
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "fluxshop", "state.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
