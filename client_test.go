package admin_client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectToSearch(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{name: "nil", params: nil, want: ""},
		{name: "only nil values", params: Params{"a": nil}, want: ""},
		{name: "sorted keys", params: Params{"b": 2, "a": "x"}, want: "?a=x&b=2"},
		{name: "false kept", params: Params{"published": false}, want: "?published=false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ObjectToSearch(tt.params))
		})
	}
}

func TestNewUntypedAdminRest_InvalidBaseURL(t *testing.T) {
	for _, baseURL := range []string{"", "ftp://admin.example.com", "http://"} {
		assert.Panics(t, func() {
			_, _ = NewUntypedAdminRest(&AdminConfig{BaseURL: baseURL})
		}, baseURL)
	}
}

func TestNewTypedAdminRest(t *testing.T) {
	client, err := NewTypedAdminRest(&AdminConfig{BaseURL: "https://admin.example.com/"})
	require.NoError(t, err)
	assert.Equal(t, "https://admin.example.com", client.GetSession().GetConfig().BaseURL)
}
