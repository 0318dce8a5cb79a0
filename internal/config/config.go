// Package config loads sheetform settings with Viper from a YAML file,
// SHEETFORM_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"sheetform/internal/sheets"

	"github.com/spf13/viper"
)

const EnvPrefix = "SHEETFORM"

var (
	ErrSubmitURLMissing = errors.New("submit_url is not configured")
	ErrFetchURLMissing  = errors.New("fetch_url is not configured")
)

type Config struct {
	SubmitURL   string      `mapstructure:"submit_url" yaml:"submit_url"`
	FetchURL    string      `mapstructure:"fetch_url" yaml:"fetch_url"`
	Fetch       FetchConfig `mapstructure:"fetch" yaml:"fetch"`
	HTTP        HTTPConfig  `mapstructure:"http" yaml:"http"`
	DatabaseURL string      `mapstructure:"database_url" yaml:"database_url"`
	Migrations  string      `mapstructure:"migrations" yaml:"migrations"`
	LogLevel    string      `mapstructure:"log_level" yaml:"log_level"`
}

type FetchConfig struct {
	AttachAction bool `mapstructure:"attach_action" yaml:"attach_action"`
}

type HTTPConfig struct {
	Addr       string        `mapstructure:"addr" yaml:"addr"`
	SessionTTL time.Duration `mapstructure:"session_ttl" yaml:"session_ttl"`
}

// Configure registers defaults and environment binding on v. Every key gets a
// default so AutomaticEnv can resolve it during Unmarshal.
func Configure(v *viper.Viper) {
	v.SetDefault("submit_url", "")
	v.SetDefault("fetch_url", "")
	v.SetDefault("fetch.attach_action", true)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.session_ttl", 30*time.Minute)
	v.SetDefault("database_url", "")
	v.SetDefault("migrations", "file://migrations")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.SubmitURL = strings.TrimSpace(cfg.SubmitURL)
	cfg.FetchURL = strings.TrimSpace(cfg.FetchURL)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Endpoints returns the sheet client view of the configuration.
func (c *Config) Endpoints() sheets.Endpoints {
	return sheets.Endpoints{
		SubmitURL:    c.SubmitURL,
		FetchURL:     c.FetchURL,
		AttachAction: c.Fetch.AttachAction,
	}
}

func (c *Config) RequireSubmitURL() error {
	if c.SubmitURL == "" {
		return ErrSubmitURLMissing
	}
	return nil
}

func (c *Config) RequireFetchURL() error {
	if c.FetchURL == "" {
		return ErrFetchURLMissing
	}
	return nil
}

func validate(cfg *Config) error {
	for key, raw := range map[string]string{"submit_url": cfg.SubmitURL, "fetch_url": cfg.FetchURL} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%s: scheme must be http or https, got %q", key, u.Scheme)
		}
		if u.Host == "" {
			return fmt.Errorf("%s: missing host", key)
		}
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return fmt.Errorf("http.addr must not be empty")
	}
	if cfg.HTTP.SessionTTL <= 0 {
		return fmt.Errorf("http.session_ttl must be positive, got %s", cfg.HTTP.SessionTTL)
	}
	return nil
}
