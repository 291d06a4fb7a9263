package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/labsite/go-admin-client/core"
)

// Config is the adminctl configuration.
type Config struct {
	BaseURL        string        `koanf:"base_url" yaml:"base_url"`
	ApiPrefix      string        `koanf:"api_prefix" yaml:"api_prefix"`
	Token          string        `koanf:"token" yaml:"token"`
	Username       string        `koanf:"username" yaml:"username"`
	Password       string        `koanf:"password" yaml:"password"`
	SslVerify      bool          `koanf:"ssl_verify" yaml:"ssl_verify"`
	Timeout        time.Duration `koanf:"timeout" yaml:"timeout"`
	MaxConnections int           `koanf:"max_connections" yaml:"max_connections"`
	PageLimit      int           `koanf:"page_limit" yaml:"page_limit"`
	ServerVersion  string        `koanf:"server_version" yaml:"server_version"`
	DocPath        string        `koanf:"doc_path" yaml:"doc_path"`
	Output         string        `koanf:"output" yaml:"output"`
	LogFile        string        `koanf:"log_file" yaml:"log_file"`
	LogLevel       string        `koanf:"log_level" yaml:"log_level"`
}

// New returns the defaults.
func New() *Config {
	return &Config{
		ApiPrefix:      core.DefaultApiPrefix,
		SslVerify:      true,
		Timeout:        30 * time.Second,
		MaxConnections: core.DefaultMaxConnections,
		PageLimit:      core.DefaultPageLimit,
		DocPath:        "/api-json",
		Output:         "table",
		LogLevel:       "info",
	}
}

// Validate checks the fields the client cannot default.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base_url must not be empty", ErrInvalidConfig)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidConfig)
	}
	switch c.Output {
	case "table", "json", "yaml", "msgpack":
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidConfig, c.Output)
	}
	return nil
}

// AdminConfig converts c into the client configuration.
func (c *Config) AdminConfig(logger *zap.Logger) *core.AdminConfig {
	timeout := c.Timeout
	return &core.AdminConfig{
		BaseURL:        c.BaseURL,
		ApiPrefix:      c.ApiPrefix,
		ApiToken:       c.Token,
		Username:       c.Username,
		Password:       c.Password,
		SslVerify:      c.SslVerify,
		Timeout:        &timeout,
		MaxConnections: c.MaxConnections,
		PageLimit:      c.PageLimit,
		ServerVersion:  c.ServerVersion,
		Logger:         logger,
	}
}
