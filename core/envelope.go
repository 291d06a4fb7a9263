package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Envelope is the wire wrapper every admin endpoint answers with:
//
//	{"status": 0, "data": ..., "message": "ok", "code": 200}
//
// status 0 means success. Bodies using the older {"success": bool} form and
// bodies carrying no wrapper at all are normalized into the same shape.
type Envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message,omitempty"`
	Code    int             `json:"code,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`

	// Wrapped is false when the body had no status/success key and Data holds the whole body.
	Wrapped bool `json:"-"`
}

// Ok reports whether the envelope signals success.
func (env *Envelope) Ok() bool {
	return env != nil && env.Status == 0
}

// Err returns an *EnvelopeError for a non-zero status, nil otherwise.
func (env *Envelope) Err(method, url string) error {
	if env.Ok() {
		return nil
	}
	return &EnvelopeError{
		Method:  method,
		URL:     url,
		Status:  env.Status,
		Code:    env.Code,
		Message: env.Message,
	}
}

// Unwrap returns the envelope payload as a Record or RecordSet.
func (env *Envelope) Unwrap() (Renderable, error) {
	if err := env.Err("", ""); err != nil {
		return nil, err
	}
	payload := env.Payload()
	if len(payload) == 0 {
		return Record{}, nil
	}
	var value any
	if err := json.Unmarshal(payload, &value); err != nil {
		return nil, fmt.Errorf("failed to decode envelope data: %w", err)
	}
	return anyToRenderable(value), nil
}

// Payload returns the raw data. Empty and null data yield nil.
func (env *Envelope) Payload() json.RawMessage {
	if env == nil {
		return nil
	}
	trimmed := bytes.TrimSpace(env.Data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return trimmed
}

// decodeEnvelope parses a response body.
func decodeEnvelope(body []byte) (*Envelope, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &Envelope{Wrapped: true}, nil
	}
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("response body is not valid JSON: %.128s", trimmed)
	}
	if trimmed[0] != '{' {
		return &Envelope{Data: trimmed}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, err
	}
	env := &Envelope{}
	statusRaw, hasStatus := fields["status"]
	successRaw, hasSuccess := fields["success"]
	switch {
	case hasStatus:
		status, err := rawToInt(statusRaw)
		if err != nil {
			return nil, fmt.Errorf("invalid envelope status: %w", err)
		}
		env.Status = status
	case hasSuccess:
		var success bool
		if err := json.Unmarshal(successRaw, &success); err != nil || !success {
			env.Status = 1
		}
	default:
		return &Envelope{Data: trimmed}, nil
	}
	env.Wrapped = true
	env.Data = fields["data"]
	env.Message = rawToString(fields["message"])
	if codeRaw, ok := fields["code"]; ok {
		env.Code, _ = rawToInt(codeRaw)
	}
	if env.Ok() {
		foldNested(env)
	}
	return env, nil
}

// envelopeKeys are the only keys a nested envelope may carry. Objects with any
// other key are records and are left alone.
var envelopeKeys = map[string]bool{"status": true, "data": true, "message": true, "code": true}

// foldNested replaces env with the envelope found in its data, one level deep.
// The inner status wins, so a failed inner envelope surfaces through Err.
func foldNested(env *Envelope) {
	trimmed := bytes.TrimSpace(env.Data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return
	}
	statusRaw, hasStatus := fields["status"]
	if !hasStatus {
		return
	}
	for key := range fields {
		if !envelopeKeys[key] {
			return
		}
	}
	status, err := rawToInt(statusRaw)
	if err != nil {
		return
	}
	env.Status = status
	env.Data = fields["data"]
	if message := rawToString(fields["message"]); message != "" {
		env.Message = message
	}
	if codeRaw, ok := fields["code"]; ok {
		env.Code, _ = rawToInt(codeRaw)
	}
}

func rawToInt(raw json.RawMessage) (int, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		i, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return 0, err
			}
			return int(f), nil
		}
		return int(i), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("expected number, got %s", raw)
	}
	return strconv.Atoi(s)
}

func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return ""
	}
	return string(raw)
}

// ApiResponse is the typed form of Envelope returned by DirectFetch.
type ApiResponse[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
	Data    T      `json:"data"`
}

// Ok reports whether the response signals success.
func (r *ApiResponse[T]) Ok() bool {
	return r != nil && r.Status == 0
}

// DecodeApiResponse decodes a raw body into an ApiResponse. Data is decoded
// even when status is non-zero; absent data leaves the zero value.
func DecodeApiResponse[T any](body []byte) (*ApiResponse[T], error) {
	env, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	return envelopeToApiResponse[T](env)
}

func envelopeToApiResponse[T any](env *Envelope) (*ApiResponse[T], error) {
	response := &ApiResponse[T]{
		Status:  env.Status,
		Message: env.Message,
		Code:    env.Code,
	}
	if err := decodePayload(env.Payload(), &response.Data); err != nil {
		return nil, err
	}
	return response, nil
}

// decodePayload decodes payload into target, leaving it untouched when payload is empty.
func decodePayload(payload json.RawMessage, target any) error {
	if len(payload) == 0 {
		return nil
	}
	if err := FlexibleUnmarshal(payload, target); err != nil {
		return fmt.Errorf("failed to decode response data into %T: %w", target, err)
	}
	return nil
}
