// Package config loads storefront configuration from an optional YAML
// file, on top of defaults, with STOREFRONT_* environment overrides
// applied last.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API      APIConfig      `yaml:"api"`
	Storage  StorageConfig  `yaml:"storage"`
	Checkout CheckoutConfig `yaml:"checkout"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// APIConfig points at the remote backend.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// StorageConfig locates the local persisted store.
type StorageConfig struct {
	Dir string `yaml:"dir"`
}

type CheckoutConfig struct {
	// WhatsAppPhone is the business number orders are sent to,
	// country code included.
	WhatsAppPhone string `yaml:"whatsapp_phone"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:4000",
			Timeout: "10s",
		},
		Storage: StorageConfig{
			Dir: ".storefront",
		},
		Checkout: CheckoutConfig{
			WhatsAppPhone: "573001112233",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the config file at path (skipped when empty or absent)
// over the defaults, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return Config{}, fmt.Errorf("os.ReadFile[%s]: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("yaml.Unmarshal[%s]: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if _, err := cfg.API.TimeoutDuration(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("STOREFRONT_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("STOREFRONT_API_TIMEOUT"); v != "" {
		cfg.API.Timeout = v
	}
	if v := os.Getenv("STOREFRONT_STORAGE_DIR"); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv("STOREFRONT_WHATSAPP_PHONE"); v != "" {
		cfg.Checkout.WhatsAppPhone = v
	}
	if v := os.Getenv("STOREFRONT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func (a APIConfig) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(a.Timeout)
	if err != nil {
		return 0, fmt.Errorf("api.timeout[%s]: %w", a.Timeout, err)
	}
	return d, nil
}
