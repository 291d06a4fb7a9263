package core

import (
	"fmt"
	"net/http"
	"strings"
)

// Verb enumerates the HTTP methods the admin backend exposes.
// Every session call is dispatched through a switch over Verb, so an unsupported
// method is rejected before any request is built.
type Verb int

const (
	VerbGet Verb = iota
	VerbPost
	VerbPut
	VerbPatch
	VerbDelete
)

var verbNames = [...]string{
	VerbGet:    http.MethodGet,
	VerbPost:   http.MethodPost,
	VerbPut:    http.MethodPut,
	VerbPatch:  http.MethodPatch,
	VerbDelete: http.MethodDelete,
}

// String returns the upper-case HTTP method name.
func (v Verb) String() string {
	if v < 0 || int(v) >= len(verbNames) {
		return fmt.Sprintf("Verb(%d)", int(v))
	}
	return verbNames[v]
}

// Valid reports whether v is one of the declared verbs.
func (v Verb) Valid() bool {
	return v >= VerbGet && v <= VerbDelete
}

// SendsQuery reports whether Params for this verb belong in the query string
// rather than the request body.
func (v Verb) SendsQuery() bool {
	return v == VerbGet
}

// ParseVerb converts a method name (any case) to a Verb.
func ParseVerb(method string) (Verb, error) {
	normalized := strings.ToUpper(strings.TrimSpace(method))
	for i, name := range verbNames {
		if name == normalized {
			return Verb(i), nil
		}
	}
	return 0, fmt.Errorf("unknown verb: %q", method)
}

// HasBody reports whether requests with this verb may carry a body.
func (v Verb) HasBody() bool {
	return v.Valid() && v != VerbGet
}
