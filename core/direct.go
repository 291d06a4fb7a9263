package core

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// DirectOptions configures DirectFetch. The zero value is a GET without parameters.
type DirectOptions struct {
	Verb Verb
	// Params are sent as the query string for GET and as the JSON body otherwise.
	Params Params
	// Body overrides Params as the request body for non-GET verbs.
	Body    any
	Headers []http.Header
}

// DirectFetch sends one request and returns the whole envelope, including a
// non-zero status, leaving the decision to the caller. It fails only on
// transport errors, non-2xx responses (*ApiError carrying the server message)
// and data that cannot be decoded into T.
//
//	resp, err := core.DirectFetch[Article](ctx, session, "/articles", core.DirectOptions{
//	    Verb:   core.VerbPost,
//	    Params: core.Params{"title": "hello"},
//	})
//	if err == nil && !resp.Ok() {
//	    fmt.Println(resp.Message)
//	}
func DirectFetch[T any](ctx context.Context, session RESTSession, path string, opts DirectOptions) (*ApiResponse[T], error) {
	var (
		query string
		body  any
	)
	if opts.Verb.SendsQuery() {
		query = opts.Params.ToQuery()
	} else if opts.Body != nil {
		body = opts.Body
	} else if opts.Params != nil {
		body = opts.Params
	}
	url, err := buildUrl(session, path, query)
	if err != nil {
		return nil, err
	}
	env, err := session.Do(ctx, opts.Verb, url, body, opts.Headers)
	if err != nil {
		return nil, err
	}
	return envelopeToApiResponse[T](env)
}

// FetchParams configures FetchInto.
type FetchParams struct {
	Path string
	Verb Verb
	// Params become the query string for GET and the JSON body otherwise.
	Params Params
	// RawQuery, when set, is used verbatim as the GET query instead of Params.
	RawQuery string
	// Body overrides Params as the request body for non-GET verbs.
	Body    any
	Headers []http.Header
}

// FetchInto sends one request, unwraps the envelope and decodes its data into T.
// A non-zero envelope status yields *EnvelopeError; absent data yields the zero T.
func FetchInto[T any](ctx context.Context, session RESTSession, p FetchParams) (T, error) {
	var (
		zero  T
		query string
		body  any
	)
	if p.Verb.SendsQuery() {
		if p.RawQuery != "" {
			query = strings.TrimPrefix(p.RawQuery, "?")
		} else {
			query = p.Params.ToQuery()
		}
	} else if p.Body != nil {
		body = p.Body
	} else if p.Params != nil {
		body = p.Params
	}
	url, err := buildUrl(session, p.Path, query)
	if err != nil {
		return zero, err
	}
	env, err := session.Do(ctx, p.Verb, url, body, p.Headers)
	if err != nil {
		return zero, err
	}
	if err = env.Err(p.Verb.String(), url); err != nil {
		return zero, err
	}
	var result T
	if err = decodePayload(env.Payload(), &result); err != nil {
		return zero, fmt.Errorf("%s %s: %w", p.Verb, url, err)
	}
	return result, nil
}
