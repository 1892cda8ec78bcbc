// Package config defines the service configuration and its defaults.
package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Port            int           `koanf:"port"`
	Mode            string        `koanf:"mode"` // gin mode: debug, release, test
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	// DSN is a postgres URL; empty or sqlite://path selects the embedded
	// SQLite database used for local development.
	DSN          string `koanf:"url"`
	MaxOpenConns int    `koanf:"max_open_conns"`
}

type RedisConfig struct {
	// URL enables the redis ledger for redeemed tokens when set.
	URL string `koanf:"url"`
}

type EmailConfig struct {
	SMTPHost  string `koanf:"smtp_host"`
	SMTPPort  int    `koanf:"smtp_port"`
	SMTPUser  string `koanf:"smtp_user"`
	APIKey    string `koanf:"api_key"`
	FromEmail string `koanf:"from_email"`
	FromName  string `koanf:"from_name"`
	DryRun    bool   `koanf:"dry_run"`
}

type AuthConfig struct {
	SecretKey string        `koanf:"secret_key"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
	Issuer    string        `koanf:"issuer"`
}

type FrontendConfig struct {
	Origin string `koanf:"origin"`
}

type FilesConfig struct {
	FontPath string `koanf:"font_path"`
}

type UsageConfig struct {
	FreeChecks      int           `koanf:"free_checks"`
	AnonymousLimit  int           `koanf:"anonymous_limit"`
	AnonymousWindow time.Duration `koanf:"anonymous_window"`
}

type Config struct {
	LogLevel string         `koanf:"log_level"`
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Email    EmailConfig    `koanf:"email"`
	Auth     AuthConfig     `koanf:"auth"`
	Frontend FrontendConfig `koanf:"frontend"`
	Files    FilesConfig    `koanf:"files"`
	Usage    UsageConfig    `koanf:"usage"`
}

const DevSecretKey = "dev-secret-key-change-in-production"

// New returns a Config populated with defaults suitable for local development.
func New() *Config {
	return &Config{
		LogLevel: "info",
		Server: ServerConfig{
			Port:            5000,
			Mode:            "release",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns: 10,
		},
		Email: EmailConfig{
			SMTPHost:  "smtp.resend.com",
			SMTPPort:  465,
			SMTPUser:  "resend",
			FromEmail: "noreply@solarverify.co.uk",
			FromName:  "SolarVerify",
		},
		Auth: AuthConfig{
			SecretKey: DevSecretKey,
			TokenTTL:  15 * time.Minute,
			Issuer:    "solarverify",
		},
		Frontend: FrontendConfig{
			Origin: "http://localhost:3000",
		},
		Usage: UsageConfig{
			FreeChecks:      3,
			AnonymousLimit:  1,
			AnonymousWindow: 24 * time.Hour,
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Server.Port <= 0 || c.Server.Port > 65535:
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	case c.Auth.SecretKey == "":
		return fmt.Errorf("%w: auth.secret_key must not be empty", ErrInvalidConfig)
	case c.Auth.TokenTTL <= 0:
		return fmt.Errorf("%w: auth.token_ttl must be positive", ErrInvalidConfig)
	case c.Frontend.Origin == "":
		return fmt.Errorf("%w: frontend.origin must not be empty", ErrInvalidConfig)
	case c.Usage.FreeChecks < 0 || c.Usage.AnonymousLimit < 0:
		return fmt.Errorf("%w: usage limits must not be negative", ErrInvalidConfig)
	case c.Usage.AnonymousWindow <= 0:
		return fmt.Errorf("%w: usage.anonymous_window must be positive", ErrInvalidConfig)
	}
	return nil
}

// FromAddress formats the sender as "Name <address>".
func (c EmailConfig) FromAddress() string {
	if c.FromName == "" {
		return c.FromEmail
	}
	return fmt.Sprintf("%s <%s>", c.FromName, c.FromEmail)
}

// DeliveryEnabled is false when no provider key is configured or dry run is on.
func (c EmailConfig) DeliveryEnabled() bool {
	return !c.DryRun && c.APIKey != ""
}
