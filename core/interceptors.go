package core

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ######################################################
//
//	REQUEST/RESPONSE INTERCEPTORS
//
// ######################################################

// BeforeRequest No op in current implementation. Shadow this method on a
// particular resource (declare the same method on Company, Article etc.).
func (e *Resource) BeforeRequest(_ context.Context, _ *http.Request, _ Verb, _ string, _ io.Reader) error {
	return nil
}

// AfterRequest No op in current implementation. Shadow this method on a
// particular resource to normalize its responses.
func (e *Resource) AfterRequest(_ context.Context, response Renderable) (Renderable, error) {
	return response, nil
}

// interceptor returns the embedding resource when it exists so shadowed
// hooks are the ones that run.
func (e *Resource) interceptor() RequestInterceptor {
	if i, ok := e.parent.(RequestInterceptor); ok {
		return i
	}
	return e
}

// doBeforeRequest Do not override this method in resource implementations. For internal use only
func (e *Resource) doBeforeRequest(ctx context.Context, s RESTSession, r *http.Request, verb Verb, url string, body io.Reader) error {
	config := s.GetConfig()
	beforeRequestLog(loggerOf(config), e.resourceType, verb, url, body)
	if err := e.interceptor().BeforeRequest(ctx, r, verb, url, body); err != nil {
		return err
	}
	// User-defined callback
	if config.BeforeRequestFn != nil {
		return config.BeforeRequestFn(ctx, r, verb, url, body)
	}
	return nil
}

// doAfterRequest Do not override this method in resource implementations. For internal use only
func (e *Resource) doAfterRequest(ctx context.Context, s RESTSession, response Renderable) (Renderable, error) {
	var err error
	config := s.GetConfig()
	isDummyResource := e.resourceType == dummyResourceType
	if !isDummyResource {
		// Resource hooks and AfterRequestFn may branch on @resourceType.
		if err = setResourceKey(response, e.resourceType); err != nil {
			return nil, err
		}
	}
	afterRequestLog(loggerOf(config), response)
	if response, err = e.interceptor().AfterRequest(ctx, response); err != nil {
		return nil, err
	}
	// User-defined callback
	if config.AfterRequestFn != nil {
		if response, err = config.AfterRequestFn(ctx, response); err != nil {
			return nil, err
		}
	}
	// Hooks may have built new records that lack the key.
	if !isDummyResource {
		if err = setResourceKey(response, e.resourceType); err != nil {
			return nil, err
		}
	}
	return response, nil
}

// ######################################################
//
//	REQUEST/RESPONSE LOGGING
//
// ######################################################

func loggerOf(config *AdminConfig) *zap.Logger {
	if config == nil || config.Logger == nil {
		return zap.NewNop()
	}
	return config.Logger
}

// beforeRequestLog logs the verb and url. The request body is included only
// when debug logging is enabled.
func beforeRequestLog(logger *zap.Logger, resource string, verb Verb, url string, body io.Reader) {
	fields := []zap.Field{
		zap.String("resource", resource),
		zap.Stringer("verb", verb),
		zap.String("url", url),
	}
	if body != nil && logger.Core().Enabled(zapcore.DebugLevel) {
		bodyBytes, err := io.ReadAll(body)
		if err != nil {
			logger.Error("failed to read request body", zap.Error(err))
			return
		}
		trimmed := bytes.TrimSpace(bodyBytes)
		if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
			var compact bytes.Buffer
			if err := json.Compact(&compact, trimmed); err == nil {
				fields = append(fields, zap.String("body", compact.String()))
			} else {
				fields = append(fields, zap.ByteString("body", trimmed))
			}
		}
		logger.Debug("http request start", fields...)
		return
	}
	logger.Info("http request start", fields...)
}

// afterRequestLog logs a response summary at info level and the full payload at debug level.
func afterRequestLog(logger *zap.Logger, response Renderable) {
	fields := []zap.Field{zap.String("summary", responseSummary(response))}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		fields = append(fields, zap.String("payload", response.PrettyJson()))
		logger.Debug("http response", fields...)
		return
	}
	logger.Info("http response", fields...)
}

func responseSummary(response Renderable) string {
	switch resp := response.(type) {
	case Record:
		if resp.Empty() {
			return "empty record"
		}
		if resourceType, ok := resp[ResourceTypeKey].(string); ok && resourceType != "" {
			return "record of type " + resourceType
		}
		return "record"
	case RecordSet:
		summary := "record set with " + strconv.Itoa(len(resp)) + " record(s)"
		if len(resp) > 0 {
			if resourceType, ok := resp[0][ResourceTypeKey].(string); ok && resourceType != "" {
				summary += " of type " + resourceType
			}
		}
		return summary
	}
	return "response"
}
