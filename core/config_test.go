package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestAdminConfig_Validators(t *testing.T) {
	t.Run("defaults are applied", func(t *testing.T) {
		config := &AdminConfig{BaseURL: "https://admin.example.com/"}
		config.Validate(
			WithBaseURL,
			WithApiPrefix(DefaultApiPrefix),
			WithTimeout(30*time.Second),
			WithMaxConnections(DefaultMaxConnections),
			WithPageLimit(DefaultPageLimit),
			WithUserAgent,
			WithLogger,
			WithServerVersion,
		)
		assert.Equal(t, "https://admin.example.com", config.BaseURL)
		assert.Equal(t, "/api", config.ApiPrefix)
		require.NotNil(t, config.Timeout)
		assert.Equal(t, 30*time.Second, *config.Timeout)
		assert.Equal(t, DefaultMaxConnections, config.MaxConnections)
		assert.Equal(t, DefaultPageLimit, config.PageLimit)
		assert.Contains(t, config.UserAgent, "go-admin-client-"+ClientVersion())
		assert.NotNil(t, config.Logger)
	})

	t.Run("explicit values win", func(t *testing.T) {
		timeout := 3 * time.Second
		config := &AdminConfig{
			BaseURL:        "http://localhost:3000",
			ApiPrefix:      "admin/api/",
			Timeout:        &timeout,
			MaxConnections: 2,
			PageLimit:      50,
			UserAgent:      "custom",
		}
		config.Validate(
			WithBaseURL,
			WithApiPrefix(DefaultApiPrefix),
			WithTimeout(30*time.Second),
			WithMaxConnections(DefaultMaxConnections),
			WithPageLimit(DefaultPageLimit),
			WithUserAgent,
		)
		assert.Equal(t, "/admin/api", config.ApiPrefix)
		assert.Equal(t, timeout, *config.Timeout)
		assert.Equal(t, 2, config.MaxConnections)
		assert.Equal(t, 50, config.PageLimit)
		assert.Equal(t, "custom", config.UserAgent)
	})

	t.Run("root prefix disables prefixing", func(t *testing.T) {
		config := &AdminConfig{ApiPrefix: "/"}
		config.Validate(WithApiPrefix(DefaultApiPrefix))
		assert.Empty(t, config.ApiPrefix)
	})

	invalid := []struct {
		name   string
		config AdminConfig
		fn     AdminConfigFunc
	}{
		{name: "empty base url", config: AdminConfig{}, fn: WithBaseURL},
		{name: "relative base url", config: AdminConfig{BaseURL: "/api"}, fn: WithBaseURL},
		{name: "unsupported scheme", config: AdminConfig{BaseURL: "ftp://example.com"}, fn: WithBaseURL},
		{name: "bad server version", config: AdminConfig{ServerVersion: "latest"}, fn: WithServerVersion},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			config := tt.config
			assert.Panics(t, func() { config.Validate(tt.fn) })
		})
	}
}

func TestWithLogger_Env(t *testing.T) {
	t.Setenv("ADMIN_CLIENT_LOG", "debug")
	config := &AdminConfig{}
	config.Validate(WithLogger)
	require.NotNil(t, config.Logger)
	assert.NotNil(t, config.Logger.Check(zapcore.DebugLevel, "debug entry"))
}

func TestWithFillFn(t *testing.T) {
	original := fillFunc
	t.Cleanup(func() { fillFunc = original })

	var called bool
	config := &AdminConfig{FillFn: func(r Record, container any) error {
		called = true
		return original(r, container)
	}}
	config.Validate(WithFillFn)

	var out struct {
		Id int `json:"id"`
	}
	require.NoError(t, Record{"id": 1}.Fill(&out))
	assert.True(t, called)
	assert.Equal(t, 1, out.Id)
}

func TestClientVersion(t *testing.T) {
	assert.NotEmpty(t, ClientVersion())
	assert.Equal(t, ClientVersion(), ParsedClientVersion().String())
}
