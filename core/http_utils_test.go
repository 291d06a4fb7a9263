package core

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMapToQuery(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		expected string
	}{
		{name: "nil params", params: nil, expected: ""},
		{name: "empty params", params: Params{}, expected: ""},
		{name: "only nil values", params: Params{"a": nil, "b": nil}, expected: ""},
		{name: "keys are sorted", params: Params{"b": 2, "a": "x"}, expected: "a=x&b=2"},
		{name: "typed nil pointer is skipped", params: Params{"p": (*int)(nil), "q": 1}, expected: "q=1"},
		{name: "pointer is dereferenced", params: Params{"p": intPtr(5)}, expected: "p=5"},
		{name: "bool pointer", params: Params{"published": boolPtr(false)}, expected: "published=false"},
		{
			name:     "falsy values are kept",
			params:   Params{"f": false, "z": 0, "e": ""},
			expected: "e=&f=false&z=0",
		},
		{name: "slice is comma joined", params: Params{"ids": []int{1, 2, 3}}, expected: "ids=1%2C2%2C3"},
		{name: "array is comma joined", params: Params{"tags": [2]string{"a", "b"}}, expected: "tags=a%2Cb"},
		{name: "nil slice is skipped", params: Params{"ids": []int(nil)}, expected: ""},
		{name: "values are escaped", params: Params{"keyword": "a b&c"}, expected: "keyword=a+b%26c"},
		{name: "float", params: Params{"price": 2.5}, expected: "price=2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, convertMapToQuery(tt.params))
			assert.Equal(t, tt.expected, tt.params.ToQuery())
		})
	}
}

func TestObjectToSearch(t *testing.T) {
	assert.Equal(t, "", ObjectToSearch(nil))
	assert.Equal(t, "", ObjectToSearch(Params{"type": nil}))
	assert.Equal(t, "?limit=10&page=1", ObjectToSearch(Params{"page": 1, "limit": 10, "type": nil}))
}

func TestBuildUrl(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		prefix   string
		path     string
		query    string
		expected string
	}{
		{
			name:     "default prefix",
			baseURL:  "http://example.com",
			path:     "/articles",
			expected: "http://example.com/api/articles",
		},
		{
			name:     "trims slashes and keeps query",
			baseURL:  "http://example.com/",
			path:     "articles/7/",
			query:    "page=2",
			expected: "http://example.com/api/articles/7?page=2",
		},
		{
			name:     "root prefix disables prefixing",
			baseURL:  "http://example.com",
			prefix:   "/",
			path:     "/company",
			expected: "http://example.com/company",
		},
		{
			name:     "base url with path",
			baseURL:  "https://example.com/admin",
			prefix:   "v2/",
			path:     "/messages/list",
			expected: "https://example.com/admin/v2/messages/list",
		},
		{
			name:     "escaped segment survives",
			baseURL:  "http://example.com",
			path:     "/articles/type/news%20letter",
			expected: "http://example.com/api/articles/type/news%20letter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &AdminConfig{BaseURL: tt.baseURL, ApiPrefix: tt.prefix}
			config.Validate(WithBaseURL, WithApiPrefix(DefaultApiPrefix))
			session, err := NewAdminSession(config)
			require.NoError(t, err)

			got, err := buildUrl(session, tt.path, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPathToUrl(t *testing.T) {
	session, err := NewAdminSession(newTestConfig("http://example.com"))
	require.NoError(t, err)

	got, err := pathToUrl(session, "https://other.example.com/api/x?y=1")
	require.NoError(t, err)
	assert.Equal(t, "https://other.example.com/api/x?y=1", got)

	got, err = pathToUrl(session, "articles?page=2")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/api/articles?page=2", got)
}

func TestValidateResponse(t *testing.T) {
	request := httptest.NewRequest(http.MethodPost, "http://example.com/api/articles", nil)

	t.Run("2xx", func(t *testing.T) {
		assert.NoError(t, validateResponse(&http.Response{StatusCode: http.StatusCreated}, nil))
	})

	t.Run("nil response", func(t *testing.T) {
		err := validateResponse(nil, nil)
		var apiErr *ApiError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 0, apiErr.StatusCode)
	})

	t.Run("server message is used", func(t *testing.T) {
		body := []byte(`{"status": 1, "message": "title is required"}`)
		err := validateResponse(&http.Response{StatusCode: http.StatusBadRequest, Request: request}, body)
		var apiErr *ApiError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "title is required", apiErr.Message)
		assert.Equal(t, http.MethodPost, apiErr.Method)
		assert.Equal(t, "http://example.com/api/articles", apiErr.URL)
		assert.Equal(t, "title is required", ErrorMessage(err))
	})

	t.Run("fallback message", func(t *testing.T) {
		err := validateResponse(&http.Response{StatusCode: http.StatusInternalServerError, Request: request}, []byte("oops"))
		var apiErr *ApiError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "HTTP error! status: 500", apiErr.Message)
		assert.Equal(t, "oops", apiErr.Body)
	})
}

func TestConsolidateHeaders(t *testing.T) {
	config := newTestConfig("http://example.com")
	config.UserAgent = "TestAgent/1.0"
	config.Headers = http.Header{"X-Tenant": []string{"main"}, HeaderAccept: []string{"text/html"}}
	session, err := NewAdminSession(config)
	require.NoError(t, err)

	t.Run("defaults without body", func(t *testing.T) {
		result := consolidateHeaders(session, nil, false)
		assert.Equal(t, "text/html", result.Get(HeaderAccept))
		assert.Empty(t, result.Get(HeaderContentType))
		assert.Equal(t, "TestAgent/1.0", result.Get(HeaderUserAgent))
		assert.Equal(t, "main", result.Get("X-Tenant"))
		_, err := uuid.Parse(result.Get(HeaderXRequestID))
		assert.NoError(t, err)
	})

	t.Run("json content type with body", func(t *testing.T) {
		result := consolidateHeaders(session, nil, true)
		assert.Equal(t, ContentTypeJSON, result.Get(HeaderContentType))
	})

	t.Run("custom headers win", func(t *testing.T) {
		custom := []http.Header{
			{HeaderContentType: []string{ContentTypeMultipartForm}, "X-First": []string{"1"}},
			{HeaderAccept: []string{ContentTypeTextPlain}, HeaderXRequestID: []string{"fixed"}},
		}
		result := consolidateHeaders(session, custom, true)
		assert.Equal(t, ContentTypeMultipartForm, result.Get(HeaderContentType))
		assert.Equal(t, ContentTypeTextPlain, result.Get(HeaderAccept))
		assert.Equal(t, "fixed", result.Get(HeaderXRequestID))
		assert.Equal(t, "1", result.Get("X-First"))
	})

	t.Run("request ids differ", func(t *testing.T) {
		first := consolidateHeaders(session, nil, false).Get(HeaderXRequestID)
		second := consolidateHeaders(session, nil, false).Get(HeaderXRequestID)
		assert.NotEqual(t, first, second)
	})
}
