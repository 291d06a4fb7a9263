package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantMessage string
		wantWrapped bool
		wantData    string
	}{
		{name: "empty body", body: "", wantWrapped: true},
		{name: "whitespace body", body: "  \n", wantWrapped: true},
		{
			name:        "status envelope",
			body:        `{"status":0,"message":"ok","data":{"id":1}}`,
			wantMessage: "ok",
			wantWrapped: true,
			wantData:    `{"id":1}`,
		},
		{
			name:        "failed status",
			body:        `{"status":3,"message":"name exists"}`,
			wantStatus:  3,
			wantMessage: "name exists",
			wantWrapped: true,
		},
		{
			name:        "string status",
			body:        `{"status":"2","data":null}`,
			wantStatus:  2,
			wantWrapped: true,
			wantData:    `null`,
		},
		{
			name:        "legacy success true",
			body:        `{"success":true,"data":[1,2]}`,
			wantWrapped: true,
			wantData:    `[1,2]`,
		},
		{
			name:        "legacy success false",
			body:        `{"success":false,"message":"denied","code":403}`,
			wantStatus:  1,
			wantMessage: "denied",
			wantWrapped: true,
		},
		{name: "raw array", body: `[{"id":1}]`, wantData: `[{"id":1}]`},
		{name: "raw object", body: `{"id":5,"name":"x"}`, wantData: `{"id":5,"name":"x"}`},
		{name: "raw scalar", body: `true`, wantData: `true`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := decodeEnvelope([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, env.Status)
			assert.Equal(t, tt.wantMessage, env.Message)
			assert.Equal(t, tt.wantWrapped, env.Wrapped)
			assert.Equal(t, tt.wantStatus == 0, env.Ok())
			if tt.wantData == "" {
				assert.Empty(t, env.Data)
			} else {
				assert.JSONEq(t, tt.wantData, string(env.Data))
			}
		})
	}
}

func TestDecodeEnvelope_InvalidJSON(t *testing.T) {
	_, err := decodeEnvelope([]byte("<html>bad gateway</html>"))
	assert.Error(t, err)
}

func TestEnvelope_Unwrap(t *testing.T) {
	t.Run("object data", func(t *testing.T) {
		env, err := decodeEnvelope([]byte(`{"status":0,"data":{"id":1,"name":"a"}}`))
		require.NoError(t, err)
		result, err := env.Unwrap()
		require.NoError(t, err)
		assert.Equal(t, Record{"id": float64(1), "name": "a"}, result)
	})

	t.Run("array data", func(t *testing.T) {
		env, err := decodeEnvelope([]byte(`{"status":0,"data":[{"id":1},{"id":2}]}`))
		require.NoError(t, err)
		result, err := env.Unwrap()
		require.NoError(t, err)
		rs, ok := result.(RecordSet)
		require.True(t, ok)
		assert.Len(t, rs, 2)
	})

	t.Run("scalar array data", func(t *testing.T) {
		env, err := decodeEnvelope([]byte(`{"status":0,"data":["a","b"]}`))
		require.NoError(t, err)
		result, err := env.Unwrap()
		require.NoError(t, err)
		assert.Equal(t, RecordSet{{RawValueKey: "a"}, {RawValueKey: "b"}}, result)
	})

	t.Run("null data", func(t *testing.T) {
		env, err := decodeEnvelope([]byte(`{"status":0,"data":null}`))
		require.NoError(t, err)
		result, err := env.Unwrap()
		require.NoError(t, err)
		assert.Equal(t, Record{}, result)
	})

	t.Run("scalar data", func(t *testing.T) {
		env, err := decodeEnvelope([]byte(`{"status":0,"data":true}`))
		require.NoError(t, err)
		result, err := env.Unwrap()
		require.NoError(t, err)
		assert.Equal(t, Record{RawValueKey: true}, result)
	})

	t.Run("nested envelope", func(t *testing.T) {
		env, err := decodeEnvelope([]byte(`{"status":0,"data":{"status":0,"data":{"phone":"123"}}}`))
		require.NoError(t, err)
		result, err := env.Unwrap()
		require.NoError(t, err)
		assert.Equal(t, Record{"phone": "123"}, result)
	})

	t.Run("nested envelope with failed status", func(t *testing.T) {
		env, err := decodeEnvelope([]byte(`{"status":0,"message":"ok","data":{"status":3,"message":"profile locked","code":423}}`))
		require.NoError(t, err)
		_, err = env.Unwrap()
		var envErr *EnvelopeError
		require.ErrorAs(t, err, &envErr)
		assert.Equal(t, 3, envErr.Status)
		assert.Equal(t, 423, envErr.Code)
		assert.Equal(t, "profile locked", ErrorMessage(err))
	})

	t.Run("record with status and data fields", func(t *testing.T) {
		env, err := decodeEnvelope([]byte(`{"status":0,"data":{"id":4,"status":2,"data":"serial"}}`))
		require.NoError(t, err)
		result, err := env.Unwrap()
		require.NoError(t, err)
		assert.Equal(t, Record{"id": float64(4), "status": float64(2), "data": "serial"}, result)
	})

	t.Run("failed status", func(t *testing.T) {
		env, err := decodeEnvelope([]byte(`{"status":1,"message":"no such type","code":404}`))
		require.NoError(t, err)
		_, err = env.Unwrap()
		var envErr *EnvelopeError
		require.ErrorAs(t, err, &envErr)
		assert.Equal(t, 1, envErr.Status)
		assert.Equal(t, 404, envErr.Code)
		assert.Equal(t, "no such type", ErrorMessage(err))
	})
}

func TestDecodeApiResponse(t *testing.T) {
	type item struct {
		Id    int    `json:"id"`
		Views string `json:"views"`
	}

	resp, err := DecodeApiResponse[item]([]byte(`{"status":0,"message":"created","data":{"id":"7","views":12}}`))
	require.NoError(t, err)
	assert.True(t, resp.Ok())
	assert.Equal(t, "created", resp.Message)
	assert.Equal(t, item{Id: 7, Views: "12"}, resp.Data)

	failed, err := DecodeApiResponse[item]([]byte(`{"status":2,"message":"duplicate"}`))
	require.NoError(t, err)
	assert.False(t, failed.Ok())
	assert.Equal(t, "duplicate", failed.Message)
	assert.Equal(t, item{}, failed.Data)

	list, err := DecodeApiResponse[[]item]([]byte(`[{"id":1},{"id":2}]`))
	require.NoError(t, err)
	assert.Len(t, list.Data, 2)
}
