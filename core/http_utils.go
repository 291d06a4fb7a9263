package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	urlpkg "net/url"
	"reflect"
	"sort"
	"strings"
)

// validateResponse checks the response for a 2xx status code.
// body is the already-read response body; for non-2xx responses the envelope
// "message" (when present) becomes ApiError.Message.
func validateResponse(response *http.Response, body []byte) error {
	requestURL := "<unknown URL>"
	method := "<unknown method>"
	if response == nil {
		return &ApiError{
			Method:     method,
			URL:        requestURL,
			StatusCode: 0,
			Body:       "server unreachable: verify the base url is correct and the network is accessible",
		}
	}
	if response.StatusCode >= 200 && response.StatusCode <= 299 {
		return nil
	}
	if response.Request != nil {
		if response.Request.URL != nil {
			requestURL = response.Request.URL.String()
		}
		method = response.Request.Method
	}
	message := fmt.Sprintf("HTTP error! status: %d", response.StatusCode)
	if env, err := decodeEnvelope(body); err == nil && env.Message != "" {
		message = env.Message
	}
	return &ApiError{
		Method:     method,
		URL:        requestURL,
		StatusCode: response.StatusCode,
		Body:       prettyBody(body),
		Message:    message,
	}
}

// pathToUrl returns a full URL for input.
// Absolute URLs are returned unchanged. Relative inputs are joined to
// BaseURL and ApiPrefix, keeping any query string they carry.
func pathToUrl(s RESTSession, input string) (string, error) {
	parsedURL, parseErr := urlpkg.Parse(input)
	if parseErr == nil && parsedURL.Scheme != "" {
		return input, nil
	}
	if !strings.HasPrefix(input, "/") {
		input = "/" + input
	}
	pathAndQuery, err := urlpkg.ParseRequestURI(input)
	if err != nil {
		return "", fmt.Errorf("invalid relative URL: %w", err)
	}
	return buildUrl(s, pathAndQuery.EscapedPath(), pathAndQuery.RawQuery)
}

// buildUrl joins BaseURL, ApiPrefix and path, attaching query when not empty.
func buildUrl(s RESTSession, path, query string) (string, error) {
	config := s.GetConfig()
	base, err := urlpkg.Parse(config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", config.BaseURL, err)
	}
	trimmed := strings.Trim(path, "/")
	joined := strings.TrimRight(base.Path, "/") + config.ApiPrefix
	if trimmed != "" {
		joined += "/" + trimmed
	}
	if unescaped, err := urlpkg.PathUnescape(joined); err == nil {
		base.Path = unescaped
		base.RawPath = joined
	} else {
		base.Path = joined
	}
	base.RawQuery = query
	return base.String(), nil
}

// BuildUrl is buildUrl for callers outside the package.
func BuildUrl(s RESTSession, path, query string) (string, error) {
	return buildUrl(s, path, query)
}

// convertMapToQuery converts Params to a URL query string.
// Keys are sorted, nil values are skipped, slices are joined with ",".
// false, 0 and "" are kept.
func convertMapToQuery(params Params) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf strings.Builder
	for _, k := range keys {
		value, ok := queryValue(params[k])
		if !ok {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(urlpkg.QueryEscape(k))
		buf.WriteByte('=')
		buf.WriteString(urlpkg.QueryEscape(value))
	}
	return buf.String()
}

// ObjectToSearch renders params as "?query", or "" when nothing survives
// nil filtering.
func ObjectToSearch(params Params) string {
	query := convertMapToQuery(params)
	if query == "" {
		return ""
	}
	return "?" + query
}

// queryValue stringifies a single query value. The second result is false
// for nil values (including typed nil pointers, maps and slices).
func queryValue(v any) (string, bool) {
	if isNilValue(v) {
		return "", false
	}
	switch typed := v.(type) {
	case string:
		return typed, true
	case []byte:
		return string(typed), true
	case fmt.Stringer:
		return typed.String(), true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, ok := queryValue(rv.Index(i).Interface())
			if !ok {
				item = ""
			}
			parts = append(parts, item)
		}
		return strings.Join(parts, ","), true
	case reflect.Map, reflect.Struct:
		if s, ok := rv.Interface().(fmt.Stringer); ok {
			return s.String(), true
		}
		b, err := json.Marshal(rv.Interface())
		if err != nil {
			return fmt.Sprint(rv.Interface()), true
		}
		return string(b), true
	default:
		return fmt.Sprint(rv.Interface()), true
	}
}

// isNilValue reports whether v is nil or a nil pointer, map, slice or interface.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	for {
		switch rv.Kind() {
		case reflect.Ptr, reflect.Interface:
			if rv.IsNil() {
				return true
			}
			rv = rv.Elem()
			continue
		case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return rv.IsNil()
		}
		return false
	}
}

// prettyBody returns body as indented JSON when possible, raw text otherwise.
func prettyBody(body []byte) string {
	var b bytes.Buffer
	if err := json.Indent(&b, body, "", "  "); err == nil {
		return b.String()
	}
	return string(body)
}
