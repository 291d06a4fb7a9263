package core

import (
	"encoding/base64"
	"errors"
	"net/http"
	"sync"
)

// Authenticator decorates outgoing requests with credentials.
type Authenticator interface {
	authorize() error
	setAuthHeader(headers *http.Header)
	equal(other Authenticator) bool
	// Scheme names the authorization scheme, "" for anonymous access.
	Scheme() string
}

// createAuthenticator builds the Authenticator for config.
// Priority: ApiToken > Username/Password > anonymous.
func createAuthenticator(config *AdminConfig) (Authenticator, error) {
	var authenticator Authenticator
	switch {
	case config.ApiToken != "":
		authenticator = &BearerAuthenticator{Token: config.ApiToken}
	case config.Username != "" || config.Password != "":
		authenticator = &BasicAuthenticator{Username: config.Username, Password: config.Password}
	default:
		authenticator = &AnonymousAuthenticator{}
	}
	if err := authenticator.authorize(); err != nil {
		return nil, err
	}
	return authenticator, nil
}

// AuthHeaders returns the credential headers s would attach to a request.
// Used for calls that bypass the session, such as fetching the API document.
func AuthHeaders(s RESTSession) http.Header {
	headers := http.Header{}
	if auth := s.GetAuthenticator(); auth != nil {
		auth.setAuthHeader(&headers)
	}
	return headers
}

// BearerAuthenticator sends "Authorization: Bearer <token>".
type BearerAuthenticator struct {
	Token string
}

func (auth *BearerAuthenticator) authorize() error {
	if auth.Token == "" {
		return errors.New("bearer authenticator: token is empty")
	}
	return nil
}

func (auth *BearerAuthenticator) setAuthHeader(headers *http.Header) {
	headers.Set(HeaderAuthorization, AuthTypeBearer+" "+auth.Token)
}

func (auth *BearerAuthenticator) equal(other Authenticator) bool {
	otherAuth, ok := other.(*BearerAuthenticator)
	return ok && auth.Token == otherAuth.Token
}

func (auth *BearerAuthenticator) Scheme() string { return AuthTypeBearer }

// BasicAuthenticator sends HTTP Basic credentials.
type BasicAuthenticator struct {
	Username string
	Password string

	once        sync.Once
	encodedAuth string
}

func (auth *BasicAuthenticator) authorize() error {
	if auth.Username == "" || auth.Password == "" {
		return errors.New("basic authenticator: both username and password are required")
	}
	auth.once.Do(func() {
		auth.encodedAuth = base64.StdEncoding.EncodeToString([]byte(auth.Username + ":" + auth.Password))
	})
	return nil
}

func (auth *BasicAuthenticator) setAuthHeader(headers *http.Header) {
	headers.Set(HeaderAuthorization, AuthTypeBasic+" "+auth.encodedAuth)
}

func (auth *BasicAuthenticator) equal(other Authenticator) bool {
	otherAuth, ok := other.(*BasicAuthenticator)
	return ok && auth.Username == otherAuth.Username && auth.Password == otherAuth.Password
}

func (auth *BasicAuthenticator) Scheme() string { return AuthTypeBasic }

// AnonymousAuthenticator sends no credentials.
type AnonymousAuthenticator struct{}

func (auth *AnonymousAuthenticator) authorize() error { return nil }

func (auth *AnonymousAuthenticator) setAuthHeader(_ *http.Header) {}

func (auth *AnonymousAuthenticator) equal(other Authenticator) bool {
	_, ok := other.(*AnonymousAuthenticator)
	return ok
}

func (auth *AnonymousAuthenticator) Scheme() string { return "" }
