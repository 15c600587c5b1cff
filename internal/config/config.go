// Package config loads runtime configuration from a YAML file with
// environment-variable overrides for deployment secrets.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 2330
	defaultEnv        = "development"
)

// AppConfig holds runtime startup configuration.
type AppConfig struct {
	Port           int         `yaml:"port"            env:"FOLIO_PORT"`
	Env            string      `yaml:"env"             env:"FOLIO_ENV"` // "development" | "production"
	DSN            string      `yaml:"dsn"             env:"FOLIO_DSN"`
	JWTSecret      string      `yaml:"jwt_secret"      env:"FOLIO_JWT_SECRET"`
	SiteURL        string      `yaml:"site_url"        env:"FOLIO_SITE_URL"`
	AllowedOrigins []string    `yaml:"allowed_origins" env:"FOLIO_ALLOWED_ORIGINS" envSeparator:","`
	Media          MediaConfig `yaml:"media"`
}

// MediaConfig configures the S3-compatible media host. The secret key never
// leaves the server; clients receive only short-lived presigned credentials.
type MediaConfig struct {
	Endpoint        string `yaml:"endpoint"          env:"FOLIO_MEDIA_ENDPOINT"`
	Region          string `yaml:"region"            env:"FOLIO_MEDIA_REGION"`
	Bucket          string `yaml:"bucket"            env:"FOLIO_MEDIA_BUCKET"`
	AccessKeyID     string `yaml:"access_key_id"     env:"FOLIO_MEDIA_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"FOLIO_MEDIA_SECRET_ACCESS_KEY"`
	PublicBaseURL   string `yaml:"public_base_url"   env:"FOLIO_MEDIA_PUBLIC_BASE_URL"`
	UploadPrefix    string `yaml:"upload_prefix"     env:"FOLIO_MEDIA_UPLOAD_PREFIX"`
	PathStyleAccess bool   `yaml:"path_style_access" env:"FOLIO_MEDIA_PATH_STYLE"`
}

// Load reads the YAML file at path (missing file is not an error: env-only
// deployments are supported), then applies environment overrides.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err) && path == DefaultConfigPath:
			// fall through to env-only config
		default:
			if err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env overrides: %w", err)
	}

	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.Port <= 0 {
		cfg.Port = defaultPort
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required (dsn / FOLIO_DSN)")
	}
	return cfg, nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }
