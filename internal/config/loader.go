package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override: ADMINCTL_BASE_URL, ADMINCTL_TOKEN, ...
	EnvPrefix = "ADMINCTL_"
	// EnvConfigFile names the YAML file to load when no path is given.
	EnvConfigFile = EnvPrefix + "CONFIG"
)

// LoadOptions selects the optional sources of Load.
type LoadOptions struct {
	// File is a YAML config file. Empty falls back to $ADMINCTL_CONFIG.
	File string
	// DotEnv files are loaded into the environment first. Missing files are
	// skipped. Variables already set are never overwritten.
	DotEnv []string
	// Overrides are applied last, e.g. values of command line flags.
	// Empty strings are ignored.
	Overrides map[string]string
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) from opts.File or ADMINCTL_CONFIG
//  3. env (prefix ADMINCTL_), after .env files were read
//  4. opts.Overrides
func Load(opts LoadOptions) (*Config, error) {
	for _, path := range opts.DotEnv {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	k := koanf.New(".")

	path := opts.File
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// ADMINCTL_BASE_URL -> base_url
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	for key, value := range opts.Overrides {
		if value == "" {
			continue
		}
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
