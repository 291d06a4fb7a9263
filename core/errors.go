package core

import (
	"errors"
	"fmt"
)

// ErrEmptyID is returned before any request is sent when a by-id call gets a
// nil or blank id.
var ErrEmptyID = errors.New("resource id is empty")

// ApiError represents a non-2xx response from the backend.
type ApiError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	// Message is the envelope "message" when the error body carried one,
	// otherwise "HTTP error! status: <code>".
	Message string
	hints   string
}

// Error implements the error interface.
func (e *ApiError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("response body: %s", e.Body)
	}
	msg := fmt.Sprintf(
		"%s request to %s returned status code %d: %s", e.Method, e.URL, e.StatusCode, e.Message,
	)
	if e.hints != "" {
		msg += "\nResource details:\n" + e.hints
	}
	return msg
}

// EnvelopeError is returned when the HTTP exchange succeeded but the envelope
// reported a non-zero status.
type EnvelopeError struct {
	Method  string
	URL     string
	Status  int
	Code    int
	Message string
}

func (e *EnvelopeError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s failed with status %d", e.Method, e.URL, e.Status)
	}
	return fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.URL, e.Status, e.Message)
}

type NotFoundError struct {
	Resource string
	Query    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource '%s' not found for params '%s'", e.Resource, e.Query)
}

type TooManyRecordsError struct {
	ResourcePath string
	Params       Params
}

func (e *TooManyRecordsError) Error() string {
	return fmt.Sprintf("too many records found for resource '%s' with params '%v'", e.ResourcePath, e.Params)
}

// UnsupportedOperationError is returned by a Resource for an operation its
// ResourceOps do not enable.
type UnsupportedOperationError struct {
	Resource  string
	Operation ResourceOps
	Hints     string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("operation %s is not supported by resource %s\n%s", e.Operation, e.Resource, e.Hints)
}

func IsApiError(err error) bool {
	var apiErr *ApiError
	return errors.As(err, &apiErr)
}

func IsEnvelopeError(err error) bool {
	var envErr *EnvelopeError
	return errors.As(err, &envErr)
}

func IsNotFoundErr(err error) bool {
	var nfErr *NotFoundError
	return errors.As(err, &nfErr)
}

func IsTooManyRecordsErr(err error) bool {
	var tooManyRecordsErr *TooManyRecordsError
	return errors.As(err, &tooManyRecordsErr)
}

func IgnoreNotFound(val Record, err error) (Record, error) {
	if IsNotFoundErr(err) {
		return val, nil
	}
	return val, err
}

// IgnoreStatusCodes returns nil when err is an ApiError with one of the given codes.
func IgnoreStatusCodes(err error, codes ...int) error {
	if ExpectStatusCodes(err, codes...) {
		return nil
	}
	return err
}

// ExpectStatusCodes reports whether err is an ApiError with one of the given codes.
func ExpectStatusCodes(err error, codes ...int) bool {
	var apiErr *ApiError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.StatusCode == code {
			return true
		}
	}
	return false
}

// ErrorMessage extracts the message the backend attached to err, falling back to
// err.Error() for transport and decoding failures.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var envErr *EnvelopeError
	if errors.As(err, &envErr) && envErr.Message != "" {
		return envErr.Message
	}
	var apiErr *ApiError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
