package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/labsite/go-admin-client/internal/config"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When only the base url is set in the environment", func() {
			_ = os.Setenv("ADMINCTL_BASE_URL", "http://localhost:3000")

			cfg, err := config.Load(config.LoadOptions{})

			convey.Convey("Then the defaults fill the rest", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "http://localhost:3000")
				convey.So(cfg.ApiPrefix, convey.ShouldEqual, "/api")
				convey.So(cfg.Timeout, convey.ShouldEqual, 30*time.Second)
				convey.So(cfg.PageLimit, convey.ShouldEqual, 10)
				convey.So(cfg.Output, convey.ShouldEqual, "table")
				convey.So(cfg.SslVerify, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			path := writeFile(t, "adminctl.yaml", `
base_url: "https://admin.example.com"
token: file-token
timeout: 5s
page_limit: 50
output: yaml
`)
			cfg, err := config.Load(config.LoadOptions{File: path})

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "https://admin.example.com")
				convey.So(cfg.Token, convey.ShouldEqual, "file-token")
				convey.So(cfg.Timeout, convey.ShouldEqual, 5*time.Second)
				convey.So(cfg.PageLimit, convey.ShouldEqual, 50)
				convey.So(cfg.Output, convey.ShouldEqual, "yaml")
			})
		})

		convey.Convey("When both file and environment variables are set", func() {
			path := writeFile(t, "adminctl.yaml", `
base_url: "https://admin.example.com"
token: file-token
page_limit: 50
`)
			_ = os.Setenv("ADMINCTL_CONFIG", path)
			_ = os.Setenv("ADMINCTL_TOKEN", "env-token")

			cfg, err := config.Load(config.LoadOptions{})

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Token, convey.ShouldEqual, "env-token")
				convey.So(cfg.PageLimit, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When overrides are given", func() {
			_ = os.Setenv("ADMINCTL_BASE_URL", "http://localhost:3000")

			cfg, err := config.Load(config.LoadOptions{Overrides: map[string]string{
				"base_url": "http://override:8080",
				"output":   "",
			}})

			convey.Convey("Then non-empty overrides win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "http://override:8080")
				convey.So(cfg.Output, convey.ShouldEqual, "table")
			})
		})

		convey.Convey("When a .env file is given", func() {
			path := writeFile(t, ".env", "ADMINCTL_BASE_URL=http://dotenv:3000\nADMINCTL_LOG_LEVEL=debug\n")

			cfg, err := config.Load(config.LoadOptions{DotEnv: []string{path, filepath.Join(t.TempDir(), "missing.env")}})

			convey.Convey("Then its variables are picked up and missing files are skipped", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "http://dotenv:3000")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			path := writeFile(t, "broken.yaml", `invalid: yaml: content: [`)

			cfg, err := config.Load(config.LoadOptions{File: path})

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			cfg, err := config.Load(config.LoadOptions{File: "/non/existent/file.yaml"})

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the base url is missing", func() {
			cfg, err := config.Load(config.LoadOptions{})

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "base_url must not be empty")
			})
		})

		convey.Convey("When the output format is unknown", func() {
			_ = os.Setenv("ADMINCTL_BASE_URL", "http://localhost:3000")
			_ = os.Setenv("ADMINCTL_OUTPUT", "xml")

			_, err := config.Load(config.LoadOptions{})

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestAdminConfig(t *testing.T) {
	convey.Convey("Given a loaded config", t, func() {
		cfg := config.New()
		cfg.BaseURL = "http://localhost:3000"
		cfg.Token = "secret"
		cfg.Timeout = 7 * time.Second

		convey.Convey("When converting it to a client config", func() {
			admin := cfg.AdminConfig(nil)

			convey.Convey("Then credentials and transport settings carry over", func() {
				convey.So(admin.BaseURL, convey.ShouldEqual, "http://localhost:3000")
				convey.So(admin.ApiToken, convey.ShouldEqual, "secret")
				convey.So(*admin.Timeout, convey.ShouldEqual, 7*time.Second)
				convey.So(admin.PageLimit, convey.ShouldEqual, 10)
			})
		})
	})
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"ADMINCTL_CONFIG", "ADMINCTL_BASE_URL", "ADMINCTL_TOKEN", "ADMINCTL_OUTPUT", "ADMINCTL_LOG_LEVEL",
	} {
		_ = os.Unsetenv(key)
	}
}
