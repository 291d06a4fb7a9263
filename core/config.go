package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// AdminConfig represents the configuration required to create an admin session.
// It is passed explicitly to NewAdminRest; nothing in this package keeps a
// process-wide client instance.
type AdminConfig struct {
	BaseURL        string         // Scheme and host of the backend, e.g. "https://admin.example.com".
	ApiPrefix      string         // Path prefix prepended to every resource path. Defaults to "/api".
	ApiToken       string         // Optional bearer token.
	Username       string         // Optional username for Basic authentication (used with Password).
	Password       string         // Optional password for Basic authentication (used with Username).
	SslVerify      bool           // Whether to verify TLS certificates.
	Timeout        *time.Duration // Per-request timeout. If nil, a default is applied by validators.
	MaxConnections int            // Maximum number of concurrent HTTP connections per host.
	UserAgent      string         // Optional custom User-Agent header.
	PageLimit      int            // Default page size ("limit") for paginated iterators.
	ServerVersion  string         // Optional backend version; enables per-resource version gates.
	Headers        http.Header    // Default headers added to every request unless already set.

	// Context is an optional external context for controlling HTTP request lifecycle.
	// Resource methods without an explicit context use it as their parent context.
	Context context.Context

	// Logger receives request/response logs. Defaults to a no-op logger.
	Logger *zap.Logger

	// Registerer, when set, receives the client request metrics.
	Registerer prometheus.Registerer

	// HTTPClient overrides the HTTP client built from the transport settings above.
	HTTPClient *http.Client

	// BeforeRequestFn is an optional hook executed before a request is sent.
	// Returning an error aborts the request.
	BeforeRequestFn func(ctx context.Context, r *http.Request, verb Verb, url string, body io.Reader) error

	// AfterRequestFn is an optional hook executed after the response envelope was
	// unwrapped. It may replace the returned value.
	AfterRequestFn func(ctx context.Context, response Renderable) (Renderable, error)

	// FillFn optionally overrides the function used to populate structs from Records.
	FillFn func(r Record, container any) error
}

// AdminConfigFunc defines a function that can modify or validate an AdminConfig.
type AdminConfigFunc func(*AdminConfig) error

// Validate applies the given validators to the config.
// Panics if any validator returns an error.
func (config *AdminConfig) Validate(validators ...AdminConfigFunc) {
	for _, fn := range validators {
		if err := fn(config); err != nil {
			panic(err)
		}
	}
}

// WithTimeout sets a default timeout if none is provided.
func WithTimeout(timeout time.Duration) AdminConfigFunc {
	return func(config *AdminConfig) error {
		if config.Timeout == nil {
			config.Timeout = &timeout
		}
		return nil
	}
}

// WithMaxConnections sets the maximum number of connections if not explicitly provided.
func WithMaxConnections(maxConnections int) AdminConfigFunc {
	return func(config *AdminConfig) error {
		if config.MaxConnections == 0 {
			config.MaxConnections = maxConnections
		}
		return nil
	}
}

// WithPageLimit sets the default page size for iterators.
func WithPageLimit(limit int) AdminConfigFunc {
	return func(config *AdminConfig) error {
		if config.PageLimit <= 0 {
			config.PageLimit = limit
		}
		return nil
	}
}

// WithBaseURL validates that BaseURL is an absolute http(s) URL and strips a
// trailing slash.
func WithBaseURL(config *AdminConfig) error {
	if config.BaseURL == "" {
		return errors.New("base url cannot be empty string")
	}
	parsed, err := urlpkg.Parse(config.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url %q: %w", config.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base url %q must use http or https scheme", config.BaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("base url %q has no host", config.BaseURL)
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	return nil
}

// WithApiPrefix sets a default API prefix and normalizes it to "/segment" form.
// A prefix of "/" disables prefixing.
func WithApiPrefix(defaultPrefix string) AdminConfigFunc {
	return func(config *AdminConfig) error {
		if config.ApiPrefix == "" {
			config.ApiPrefix = defaultPrefix
		}
		trimmed := strings.Trim(config.ApiPrefix, "/")
		if trimmed == "" {
			config.ApiPrefix = ""
		} else {
			config.ApiPrefix = "/" + trimmed
		}
		return nil
	}
}

// WithUserAgent sets a default User-Agent header if none is provided.
func WithUserAgent(config *AdminConfig) error {
	if config.UserAgent == "" {
		config.UserAgent = fmt.Sprintf(
			"go-admin-client-%s,os:%s,arch:%s",
			ClientVersion(),
			runtime.GOOS,
			runtime.GOARCH,
		)
	}
	return nil
}

// WithLogger installs a logger when none is configured. ADMIN_CLIENT_LOG=info|debug
// enables a development logger at that level, otherwise logging is a no-op.
func WithLogger(config *AdminConfig) error {
	if config.Logger != nil {
		return nil
	}
	switch strings.ToLower(os.Getenv("ADMIN_CLIENT_LOG")) {
	case "debug":
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		config.Logger = logger
	case "info":
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		logger, err := cfg.Build()
		if err != nil {
			return err
		}
		config.Logger = logger
	default:
		config.Logger = zap.NewNop()
	}
	return nil
}

// WithServerVersion validates ServerVersion when set.
func WithServerVersion(config *AdminConfig) error {
	if config.ServerVersion == "" {
		return nil
	}
	if _, err := parseVersion(config.ServerVersion); err != nil {
		return fmt.Errorf("invalid server version %q: %w", config.ServerVersion, err)
	}
	return nil
}

// WithFillFn installs a custom FillFn into the fill function used by Record.Fill.
func WithFillFn(config *AdminConfig) error {
	if config.FillFn != nil {
		fillFunc = config.FillFn
	}
	return nil
}
