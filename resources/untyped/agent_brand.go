package untyped

import (
	"context"

	"github.com/labsite/go-admin-client/core"
)

type AgentBrand struct {
	*core.Resource
}

// SaveWithContext
// method: POST
// url: /agent-brand
// The same route adds a brand or, when body carries an id, updates it.
func (b *AgentBrand) SaveWithContext(ctx context.Context, body core.Params) (core.Record, error) {
	return b.CreateWithContext(ctx, body)
}

func (b *AgentBrand) Save(body core.Params) (core.Record, error) {
	return b.SaveWithContext(b.Rest.GetCtx(), body)
}
