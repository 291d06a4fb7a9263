// Package typed wraps the untyped admin resources with request and response
// models. Every service embeds *core.TypedResource and sends its requests on
// behalf of the untyped resource of the same name, so interceptors, logging
// and metrics are shared by both layers.
package typed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labsite/go-admin-client/core"
)

// execute sends a request whose payload the caller does not need. A non-zero
// envelope status is returned as *core.EnvelopeError.
func execute(ctx context.Context, session core.RESTSession, p core.FetchParams) error {
	_, err := core.FetchInto[json.RawMessage](ctx, session, p)
	return err
}

func multipartHeaders() []http.Header {
	return []http.Header{{
		core.HeaderContentType: []string{core.ContentTypeMultipartForm},
	}}
}

// ListResult is a list payload whose shape varies between endpoints: either
// a bare array or an object carrying the rows under "list", "items",
// "records" or "data" next to a "total" (or meta.totalItems) count.
type ListResult[T any] struct {
	Items []T `json:"items" yaml:"items"`
	Total int `json:"total" yaml:"total"`
}

func (l *ListResult[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '[' {
		if err := core.FlexibleUnmarshal(trimmed, &l.Items); err != nil {
			return err
		}
		l.Total = len(l.Items)
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return fmt.Errorf("list payload must be an array or an object: %w", err)
	}
	for _, key := range []string{"list", "items", "records", "data"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := core.FlexibleUnmarshal(raw, &l.Items); err != nil {
			return fmt.Errorf("invalid %q rows: %w", key, err)
		}
		break
	}
	l.Total = len(l.Items)
	if raw, ok := fields["total"]; ok {
		var total int
		if err := core.FlexibleUnmarshal(raw, &total); err == nil {
			l.Total = total
		}
	} else if raw, ok := fields["meta"]; ok {
		var meta core.PageMeta
		if err := core.FlexibleUnmarshal(raw, &meta); err == nil && meta.TotalItems > 0 {
			l.Total = meta.TotalItems
		}
	}
	return nil
}
