package untyped

import (
	"context"
	"net/http"

	"github.com/labsite/go-admin-client/core"
)

// Company is the single company profile record.
type Company struct {
	*core.Resource
}

// AfterRequest strips the extra {"data": ...} wrapper the company endpoint
// puts around the profile.
func (c *Company) AfterRequest(_ context.Context, response core.Renderable) (core.Renderable, error) {
	if record, ok := response.(core.Record); ok {
		return UnwrapProfile(record), nil
	}
	return response, nil
}

// UnwrapProfile returns record["data"] when it is the only payload key of
// record, and record itself otherwise.
func UnwrapProfile(record core.Record) core.Record {
	var inner map[string]any
	switch data := record["data"].(type) {
	case map[string]any:
		inner = data
	case core.Record:
		inner = data
	default:
		return record
	}
	for key := range record {
		if key != "data" && key != core.ResourceTypeKey && key != "status" && key != "message" {
			return record
		}
	}
	return core.ToRecord(inner)
}

// InfoWithContext
// method: GET
// url: /company
func (c *Company) InfoWithContext(ctx context.Context) (core.Record, error) {
	return core.Request[core.Record](ctx, c, core.VerbGet, c.GetResourcePath(), nil, nil)
}

func (c *Company) Info() (core.Record, error) {
	return c.InfoWithContext(c.Rest.GetCtx())
}

// UpdateInfoWithContext
// method: PUT
// url: /company
// The profile is sent as a multipart form; a core.FileData under
// "wechatQrCode" uploads a new QR code image.
func (c *Company) UpdateInfoWithContext(ctx context.Context, body core.Params) (core.Record, error) {
	if err := c.Check(core.U); err != nil {
		return nil, err
	}
	headers := []http.Header{{
		core.HeaderContentType: []string{core.ContentTypeMultipartForm},
	}}
	return core.RequestWithHeaders[core.Record](ctx, c, core.VerbPut, c.GetResourcePath(), nil, body.Compact(), headers)
}

func (c *Company) UpdateInfo(body core.Params) (core.Record, error) {
	return c.UpdateInfoWithContext(c.Rest.GetCtx(), body)
}
