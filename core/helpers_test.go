package core

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testRest is a minimal AdminRestAPI for exercising resources against httptest servers.
type testRest struct {
	ctx     context.Context
	session RESTSession
}

func (r *testRest) GetSession() RESTSession { return r.session }
func (r *testRest) GetCtx() context.Context { return r.ctx }
func (r *testRest) SetCtx(ctx context.Context) { r.ctx = ctx }

func newTestConfig(baseURL string) *AdminConfig {
	config := &AdminConfig{BaseURL: baseURL}
	config.Validate(
		WithBaseURL,
		WithApiPrefix(DefaultApiPrefix),
		WithTimeout(5*time.Second),
		WithMaxConnections(DefaultMaxConnections),
		WithPageLimit(DefaultPageLimit),
		WithUserAgent,
		WithLogger,
	)
	return config
}

// newTestSession starts a server with handler and returns a session pointing at it.
func newTestSession(t *testing.T, handler http.HandlerFunc, mutate ...func(*AdminConfig)) (*AdminSession, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	config := newTestConfig(server.URL)
	for _, fn := range mutate {
		fn(config)
	}
	session, err := NewAdminSession(config)
	require.NoError(t, err)
	return session, server
}

func newTestRest(session RESTSession) *testRest {
	return &testRest{ctx: context.Background(), session: session}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set(HeaderContentType, ContentTypeJSON)
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func okEnvelope(data any) map[string]any {
	return map[string]any{"status": 0, "message": "ok", "data": data}
}

func stringPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func boolPtr(b bool) *bool { return &b }
