package core

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const (
	caller            contextKey = "@caller" // resource that issued the request
	dummyResourceType            = "Dummy"
)

type RESTSession interface {
	Get(context.Context, string, any, []http.Header) (Renderable, error)
	Post(context.Context, string, any, []http.Header) (Renderable, error)
	Put(context.Context, string, any, []http.Header) (Renderable, error)
	Patch(context.Context, string, any, []http.Header) (Renderable, error)
	Delete(context.Context, string, any, []http.Header) (Renderable, error)
	// Do sends the request and returns the decoded envelope without unwrapping it.
	Do(context.Context, Verb, string, any, []http.Header) (*Envelope, error)
	GetConfig() *AdminConfig
	GetAuthenticator() Authenticator
}

type AdminSession struct {
	config  *AdminConfig
	client  *http.Client
	auth    Authenticator
	metrics *clientMetrics
}

type AdminSessionMethod func(context.Context, string, any, []http.Header) (Renderable, error)

func NewAdminSession(config *AdminConfig) (*AdminSession, error) {
	client := config.HTTPClient
	if client == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: !config.SslVerify}
		transport.MaxConnsPerHost = config.MaxConnections
		client = &http.Client{Transport: transport}
		if config.Timeout != nil {
			transport.IdleConnTimeout = *config.Timeout
			client.Timeout = *config.Timeout
		}
	}
	authenticator, err := createAuthenticator(config)
	if err != nil {
		return nil, err
	}
	metrics, err := newClientMetrics(config.Registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register client metrics: %w", err)
	}
	return &AdminSession{
		config:  config,
		client:  client,
		auth:    authenticator,
		metrics: metrics,
	}, nil
}

// WithCaller attaches the issuing resource to ctx so the session runs its
// interceptors and labels metrics with its type.
func WithCaller(ctx context.Context, r InterceptableResourceAPI) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, caller, r)
}

func Request[T RecordUnion](
	ctx context.Context,
	r InterceptableResourceAPI,
	verb Verb,
	path string,
	query Params,
	body any,
) (T, error) {
	return RequestWithHeaders[T](ctx, r, verb, path, query, body, nil)
}

func RequestWithHeaders[T RecordUnion](
	ctx context.Context,
	r InterceptableResourceAPI,
	verb Verb,
	path string,
	query Params,
	body any,
	headers []http.Header,
) (T, error) {
	response, url, err := send(ctx, r, verb, path, query, body, headers)
	if err != nil {
		return nil, err
	}
	return coerceResponse[T](response, url)
}

// RequestRenderable is Request for endpoints whose payload may be either an
// object or an array; the unwrapped data is returned as is.
func RequestRenderable(
	ctx context.Context,
	r InterceptableResourceAPI,
	verb Verb,
	path string,
	query Params,
	body any,
) (Renderable, error) {
	response, _, err := send(ctx, r, verb, path, query, body, nil)
	return response, err
}

func send(
	ctx context.Context,
	r InterceptableResourceAPI,
	verb Verb,
	path string,
	query Params,
	body any,
	headers []http.Header,
) (Renderable, string, error) {
	var method AdminSessionMethod
	ctx = WithCaller(ctx, r)
	session := r.Session()

	switch verb {
	case VerbGet:
		method = session.Get
	case VerbPost:
		method = session.Post
	case VerbPut:
		method = session.Put
	case VerbPatch:
		method = session.Patch
	case VerbDelete:
		method = session.Delete
	default:
		return nil, "", fmt.Errorf("unknown verb: %s", verb)
	}
	url, err := buildUrl(session, path, query.ToQuery())
	if err != nil {
		return nil, "", err
	}
	response, err := method(ctx, url, body, headers)
	if err != nil {
		return nil, "", err
	}
	return response, url, nil
}

// coerceResponse converts response to T. A single Record is wrapped into a
// RecordSet when one is expected; a paginated {items: [...]} Record yields its items.
func coerceResponse[T RecordUnion](response Renderable, url string) (T, error) {
	var zero T
	if record, ok := response.(Record); ok && typeMatch[RecordSet](Renderable(zero)) {
		switch {
		case record.Empty():
			response = RecordSet{}
		case isPage(record):
			items, _, err := pageItems(record)
			if err != nil {
				return nil, err
			}
			response = items
		default:
			response = RecordSet{record}
		}
	}
	resultVal, ok := response.(T)
	if !ok {
		return nil, fmt.Errorf(
			"unexpected response type for request to %s: got %T, expected %T. "+
				"Convert the response inside the AfterRequest interceptor",
			url, response, zero,
		)
	}
	return resultVal, nil
}

// Get never sends a body.
func (s *AdminSession) Get(ctx context.Context, url string, _ any, headers []http.Header) (Renderable, error) {
	return doRequest(ctx, s, VerbGet, url, nil, headers)
}

func (s *AdminSession) Post(ctx context.Context, url string, body any, headers []http.Header) (Renderable, error) {
	return doRequest(ctx, s, VerbPost, url, body, headers)
}

func (s *AdminSession) Put(ctx context.Context, url string, body any, headers []http.Header) (Renderable, error) {
	return doRequest(ctx, s, VerbPut, url, body, headers)
}

func (s *AdminSession) Patch(ctx context.Context, url string, body any, headers []http.Header) (Renderable, error) {
	return doRequest(ctx, s, VerbPatch, url, body, headers)
}

func (s *AdminSession) Delete(ctx context.Context, url string, body any, headers []http.Header) (Renderable, error) {
	return doRequest(ctx, s, VerbDelete, url, body, headers)
}

func (s *AdminSession) Do(ctx context.Context, verb Verb, url string, body any, headers []http.Header) (*Envelope, error) {
	if !verb.Valid() {
		return nil, fmt.Errorf("unknown verb: %s", verb)
	}
	if verb == VerbGet {
		body = nil
	}
	started := time.Now()
	_, resourceCaller := callerFrom(ctx)
	env, err := exchange(ctx, s, resourceCaller, verb, url, body, headers)
	s.metrics.observe(verb, resourceCaller.GetResourceType(), outcomeOf(err), started)
	return env, err
}

func (s *AdminSession) GetConfig() *AdminConfig {
	return s.config
}

func (s *AdminSession) GetAuthenticator() Authenticator {
	return s.auth
}

// HTTPClient returns the client the session sends requests with.
func (s *AdminSession) HTTPClient() *http.Client {
	return s.client
}

// callerFrom returns the resource stored in ctx, or a dummy resource for
// direct session calls.
func callerFrom(ctx context.Context) (context.Context, requestCaller) {
	if ctx == nil {
		ctx = context.Background()
	}
	if r, ok := ctx.Value(caller).(requestCaller); ok {
		return ctx, r
	}
	return ctx, newDummy()
}

// consolidateHeaders merges custom headers with defaults. Custom values win;
// Content-Type defaults to JSON only when a body is sent.
func consolidateHeaders(s RESTSession, customHeaders []http.Header, hasBody bool) http.Header {
	finalHeaders := make(http.Header)
	config := s.GetConfig()

	// Apply custom headers first
	for _, header := range customHeaders {
		for key, values := range header {
			for _, value := range values {
				finalHeaders.Add(key, value)
			}
		}
	}
	for key, values := range config.Headers {
		if finalHeaders.Get(key) != "" {
			continue
		}
		for _, value := range values {
			finalHeaders.Add(key, value)
		}
	}

	// Set default headers only if not already provided
	if finalHeaders.Get(HeaderAccept) == "" {
		finalHeaders.Set(HeaderAccept, ContentTypeJSON)
	}
	if hasBody && finalHeaders.Get(HeaderContentType) == "" {
		finalHeaders.Set(HeaderContentType, ContentTypeJSON)
	}
	if finalHeaders.Get(HeaderUserAgent) == "" && config.UserAgent != "" {
		finalHeaders.Set(HeaderUserAgent, config.UserAgent)
	}
	if finalHeaders.Get(HeaderXRequestID) == "" {
		finalHeaders.Set(HeaderXRequestID, uuid.NewString())
	}
	return finalHeaders
}

func setupHeaders(s RESTSession, r *http.Request, headers http.Header) {
	for key, values := range headers {
		for _, value := range values {
			r.Header.Add(key, value)
		}
	}
	// Explicit Authorization header from the caller wins.
	if auth := s.GetAuthenticator(); auth != nil && r.Header.Get(HeaderAuthorization) == "" {
		auth.setAuthHeader(&r.Header)
	}
}

// encodeBody turns body into a request reader. The second value is a copy of
// the JSON payload handed to BeforeRequest hooks (nil for multipart and streams).
func encodeBody(body any, headers http.Header) (io.Reader, []byte, error) {
	if isNilValue(body) {
		return nil, nil, nil
	}
	useMultipart := strings.Contains(strings.ToLower(headers.Get(HeaderContentType)), ContentTypeMultipartForm)
	switch typed := body.(type) {
	case Params:
		if useMultipart {
			multipartData, err := typed.ToMultipartFormData()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to create multipart form data: %w", err)
			}
			// The boundary is only known now.
			headers.Set(HeaderContentType, multipartData.ContentType)
			return multipartData.Body, nil, nil
		}
	case *MultipartFormData:
		headers.Set(HeaderContentType, typed.ContentType)
		return typed.Body, nil, nil
	case io.Reader:
		return typed, nil, nil
	case []byte:
		return bytes.NewReader(typed), typed, nil
	}
	if useMultipart {
		return nil, nil, fmt.Errorf("multipart body must be Params, got %T", body)
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return bytes.NewReader(payload), payload, nil
}

// doRequest sends the request and unwraps the envelope into a Record or RecordSet.
func doRequest(ctx context.Context, s *AdminSession, verb Verb, url string, body any, headers []http.Header) (Renderable, error) {
	started := time.Now()
	ctx, resourceCaller := callerFrom(ctx)
	result, err := func() (Renderable, error) {
		env, err := exchange(ctx, s, resourceCaller, verb, url, body, headers)
		if err != nil {
			return nil, err
		}
		if err = env.Err(verb.String(), url); err != nil {
			return nil, err
		}
		result, err := env.Unwrap()
		if err != nil {
			return nil, err
		}
		return resourceCaller.doAfterRequest(ctx, s, result)
	}()
	s.metrics.observe(verb, resourceCaller.GetResourceType(), outcomeOf(err), started)
	return result, err
}

// exchange builds and sends one HTTP request and decodes the response envelope.
// Non-2xx responses yield *ApiError.
func exchange(
	ctx context.Context,
	s *AdminSession,
	resourceCaller requestCaller,
	verb Verb,
	url string,
	body any,
	headers []http.Header,
) (*Envelope, error) {
	var err error
	// Convert to full URI if needed.
	if url, err = pathToUrl(s, url); err != nil {
		return nil, err
	}
	finalHeaders := consolidateHeaders(s, headers, !isNilValue(body))
	requestData, hookCopy, err := encodeBody(body, finalHeaders)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, verb.String(), url, requestData)
	if err != nil {
		return nil, err
	}
	setupHeaders(s, req, finalHeaders)

	var hookBody io.Reader
	if hookCopy != nil {
		hookBody = bytes.NewReader(hookCopy)
	}
	if err = resourceCaller.doBeforeRequest(ctx, s, req, verb, url, hookBody); err != nil {
		return nil, err
	}

	response, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform %s request to %s: %w", verb, url, err)
	}
	defer response.Body.Close()
	respBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", url, err)
	}
	if err = validateResponse(response, respBody); err != nil {
		return nil, err
	}
	if response.StatusCode == http.StatusNoContent {
		return &Envelope{Wrapped: true}, nil
	}
	env, err := decodeEnvelope(respBody)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response from %s %s: %w", verb, url, err)
	}
	return env, nil
}
