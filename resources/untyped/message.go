package untyped

import (
	"context"

	"github.com/labsite/go-admin-client/core"
)

// Message is a visitor message left through the public contact form.
type Message struct {
	*core.Resource
}

// SearchWithContext
// method: POST
// url: /messages/list
// Filters (page, pageSize, isRead, keyword) travel in the JSON body.
func (m *Message) SearchWithContext(ctx context.Context, query core.Params) (core.Renderable, error) {
	if query == nil {
		query = core.Params{}
	}
	return core.RequestRenderable(ctx, m, core.VerbPost, m.GetResourcePath()+"/list", nil, query.Compact())
}

func (m *Message) Search(query core.Params) (core.Renderable, error) {
	return m.SearchWithContext(m.Rest.GetCtx(), query)
}

// MarkAsReadWithContext
// method: PATCH
// url: /messages/{id}/read
func (m *Message) MarkAsReadWithContext(ctx context.Context, id any) (core.Record, error) {
	path, err := core.BuildResourcePathWithID(m.GetResourcePath(), id, "read")
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, m, core.VerbPatch, path, nil, nil)
}

func (m *Message) MarkAsRead(id any) (core.Record, error) {
	return m.MarkAsReadWithContext(m.Rest.GetCtx(), id)
}
