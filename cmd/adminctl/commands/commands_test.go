package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/labsite/go-admin-client/core"
	"github.com/labsite/go-admin-client/resources/typed"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	w.Header().Set(core.HeaderContentType, core.ContentTypeJSON)
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"status": 0, "message": "ok", "data": data}))
}

// runCLI executes adminctl against baseURL and returns stdout and stderr.
func runCLI(t *testing.T, baseURL string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("ADMINCTL_CONFIG", "")
	t.Setenv("LOG_LEVEL", "")
	var stdout, stderr bytes.Buffer
	root := NewRootCmd(&stdout, &stderr)
	full := append([]string{
		"--base-url", baseURL,
		"--token", "secret",
		"--log-file", filepath.Join(t.TempDir(), "adminctl.log"),
	}, args...)
	root.SetArgs(full)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestReadPayload(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "brand.json")
	yamlPath := filepath.Join(dir, "brand.yaml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"name":"Leica","sort":2}`), 0o600))
	require.NoError(t, os.WriteFile(yamlPath, []byte("name: Zeiss\nsort: 3\n"), 0o600))

	var fromJSON typed.AgentBrandRequestBody
	require.NoError(t, readPayload(jsonPath, nil, &fromJSON))
	assert.Equal(t, "Leica", fromJSON.Name)
	assert.Equal(t, 2, fromJSON.Sort)

	var fromYAML typed.AgentBrandRequestBody
	require.NoError(t, readPayload(yamlPath, nil, &fromYAML))
	assert.Equal(t, "Zeiss", fromYAML.Name)

	var fromStdin typed.AgentBrandRequestBody
	require.NoError(t, readPayload("-", strings.NewReader(`{"name":"Nikon"}`), &fromStdin))
	assert.Equal(t, "Nikon", fromStdin.Name)

	assert.Error(t, readPayload("", nil, &fromStdin))
	assert.Error(t, readPayload(filepath.Join(dir, "missing.json"), nil, &fromStdin))
}

func TestVersionCommand(t *testing.T) {
	var stdout bytes.Buffer
	root := NewRootCmd(&stdout, io.Discard)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Contains(t, stdout.String(), "client library "+core.ClientVersion())
}

func TestCheckClientVersion(t *testing.T) {
	assert.NoError(t, checkClientVersion(">= 0.1"))
	assert.Error(t, checkClientVersion("> 99.0"))
	assert.Error(t, checkClientVersion("not a constraint"))
}

func TestArticlesList(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/articles", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get(core.HeaderAuthorization))
		gotQuery = r.URL.RawQuery
		writeEnvelope(t, w, map[string]any{
			"items": []map[string]any{{"id": "a1", "title": "Open day", "type": "news"}},
			"meta":  map[string]any{"totalItems": 1, "itemCount": 1, "itemsPerPage": 10, "totalPages": 1, "currentPage": 1},
		})
	}))
	defer server.Close()

	stdout, _, err := runCLI(t, server.URL, "-o", "json", "articles", "list", "--type", "news")
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "type=news")
	assert.Contains(t, stdout, `"title": "Open day"`)
}

func TestArticlesList_RejectsUnknownType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	}))
	defer server.Close()

	_, _, err := runCLI(t, server.URL, "articles", "list", "--type", "podcast")
	assert.Error(t, err)
}

func TestRentalNoticesBulk(t *testing.T) {
	var received []map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/rental/notices/bulk", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		writeEnvelope(t, w, []map[string]any{
			{"id": 1, "title": "Deposit", "content": "A deposit is required", "sort": 1},
		})
	}))
	defer server.Close()

	payload := filepath.Join(t.TempDir(), "notices.yaml")
	require.NoError(t, os.WriteFile(payload, []byte("- title: Deposit\n  content: A deposit is required\n  sort: 1\n"), 0o600))

	stdout, stderr, err := runCLI(t, server.URL, "-o", "yaml", "rental", "notices", "bulk", "-f", payload)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "Deposit", received[0]["title"])
	assert.Contains(t, stdout, "title: Deposit")
	assert.Contains(t, stderr, "1 rental notices stored")
}

func TestEnvelopeErrorIsReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(core.HeaderContentType, core.ContentTypeJSON)
		_, _ = w.Write([]byte(`{"status":1,"message":"brand not found"}`))
	}))
	defer server.Close()

	_, _, err := runCLI(t, server.URL, "agent-brands", "delete", "9")
	require.Error(t, err)
	assert.Equal(t, "brand not found", core.ErrorMessage(err))
}

func TestTakeSnapshot(t *testing.T) {
	var calls atomic.Int32
	sources := map[string]func(context.Context) (any, error){
		"a": func(ctx context.Context) (any, error) { calls.Add(1); return []int{1}, nil },
		"b": func(ctx context.Context) (any, error) { calls.Add(1); return "two", nil },
	}

	result, err := takeSnapshot(context.Background(), sources, 1, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "two", result["b"])

	boom := errors.New("boom")
	sources["c"] = func(ctx context.Context) (any, error) { return nil, boom }
	_, err = takeSnapshot(context.Background(), sources, 0, zap.NewNop())
	assert.ErrorIs(t, err, boom)
}

func TestSnapshotLimit(t *testing.T) {
	limit, err := snapshotLimit(0, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, limit)

	limit, err = snapshotLimit(3, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, limit)

	_, err = snapshotLimit(-1, 10)
	assert.Error(t, err)
}

func TestSnapshotCommand_Concurrency(t *testing.T) {
	var inFlight, peak, calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		current := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			seen := peak.Load()
			if current <= seen || peak.CompareAndSwap(seen, current) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		if r.URL.Path == "/api/company" {
			writeEnvelope(t, w, map[string]any{"phone": "555-1234"})
			return
		}
		writeEnvelope(t, w, []any{})
	}))
	defer server.Close()

	stdout, _, err := runCLI(t, server.URL, "-o", "json", "snapshot", "--concurrency", "1")
	require.NoError(t, err)
	assert.Equal(t, int32(8), calls.Load())
	assert.Equal(t, int32(1), peak.Load())

	var snapshot map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &snapshot))
	assert.Len(t, snapshot, 8)
	assert.Contains(t, snapshot, "company")
}

func TestSnapshotCommand_RejectsNegativeConcurrency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	}))
	defer server.Close()

	_, _, err := runCLI(t, server.URL, "snapshot", "--concurrency", "-1")
	assert.Error(t, err)
}
