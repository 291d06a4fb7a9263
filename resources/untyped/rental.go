package untyped

import (
	"context"
	"fmt"

	"github.com/labsite/go-admin-client/core"
)

type RentalProduct struct {
	*core.Resource
}

type RentalNotice struct {
	*core.Resource
}

// BulkReplaceWithContext
// method: PUT
// url: /rental/notices/bulk
// Replaces the whole notice list; the body is a JSON array.
func (n *RentalNotice) BulkReplaceWithContext(ctx context.Context, notices []core.Params) (core.RecordSet, error) {
	if notices == nil {
		return nil, fmt.Errorf("bulk notice update needs a list, got nil")
	}
	if err := n.Check(core.U); err != nil {
		return nil, err
	}
	path := n.GetResourcePath() + "/bulk"
	return core.Request[core.RecordSet](ctx, n, core.VerbPut, path, nil, notices)
}

func (n *RentalNotice) BulkReplace(notices []core.Params) (core.RecordSet, error) {
	return n.BulkReplaceWithContext(n.Rest.GetCtx(), notices)
}
