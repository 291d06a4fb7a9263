package core

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogging(t *testing.T) {
	tests := []struct {
		name        string
		level       zapcore.Level
		wantBody    bool
		wantPayload bool
	}{
		{name: "info", level: zapcore.InfoLevel},
		{name: "debug", level: zapcore.DebugLevel, wantBody: true, wantPayload: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(tt.level)
			session, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusOK, okEnvelope([]any{map[string]any{"id": 1}}))
			}, func(c *AdminConfig) {
				c.Logger = zap.New(core)
			})
			resource := NewResource("/messages", "Message", newTestRest(session), NewResourceOps(C), nil)

			_, err := Request[RecordSet](context.Background(), resource, VerbPost, "/messages/search", nil, Params{"q": "x"})
			require.NoError(t, err)

			started := logs.FilterMessage("http request start").All()
			require.Len(t, started, 1)
			fields := started[0].ContextMap()
			assert.Equal(t, "Message", fields["resource"])
			assert.Equal(t, "POST", fields["verb"])
			_, hasBody := fields["body"]
			assert.Equal(t, tt.wantBody, hasBody)
			if tt.wantBody {
				assert.Equal(t, `{"q":"x"}`, fields["body"])
			}

			responses := logs.FilterMessage("http response").All()
			require.Len(t, responses, 1)
			responseFields := responses[0].ContextMap()
			assert.Equal(t, "record set with 1 record(s) of type Message", responseFields["summary"])
			_, hasPayload := responseFields["payload"]
			assert.Equal(t, tt.wantPayload, hasPayload)
		})
	}
}

func TestResponseSummary(t *testing.T) {
	assert.Equal(t, "empty record", responseSummary(Record{}))
	assert.Equal(t, "record", responseSummary(Record{"id": 1}))
	assert.Equal(t, "record of type Article", responseSummary(Record{ResourceTypeKey: "Article"}))
	assert.Equal(t, "record set with 0 record(s)", responseSummary(RecordSet{}))
}

func TestDummyCallerSkipsResourceKey(t *testing.T) {
	session, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, okEnvelope(map[string]any{"id": 1}))
	})
	result, err := session.Get(context.Background(), "/company", nil, nil)
	require.NoError(t, err)
	assert.NotContains(t, result.(Record), ResourceTypeKey)
}
