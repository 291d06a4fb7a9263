package untyped

import (
	"context"

	"github.com/labsite/go-admin-client/core"
)

// Instrument covers instruments and their product types. The backend exposes
// RPC-style routes under /instrument, so the generic CRUD set is disabled and
// every operation is an explicit method.
type Instrument struct {
	*core.Resource
}

// SearchWithContext
// method: POST
// url: /instrument/list
// query is sent as the JSON body, e.g. {"name": "...", "page": {"currentPage": 1, "pageSize": 10}}.
func (i *Instrument) SearchWithContext(ctx context.Context, query core.Params) (core.Renderable, error) {
	if query == nil {
		query = core.Params{}
	}
	return core.RequestRenderable(ctx, i, core.VerbPost, i.GetResourcePath()+"/list", nil, query.Compact())
}

func (i *Instrument) Search(query core.Params) (core.Renderable, error) {
	return i.SearchWithContext(i.Rest.GetCtx(), query)
}

// SaveWithContext
// method: POST
// url: /instrument/save
// Creates the instrument, or updates it when body carries an id.
func (i *Instrument) SaveWithContext(ctx context.Context, body core.Params) (core.Record, error) {
	return core.Request[core.Record](ctx, i, core.VerbPost, i.GetResourcePath()+"/save", nil, body)
}

func (i *Instrument) Save(body core.Params) (core.Record, error) {
	return i.SaveWithContext(i.Rest.GetCtx(), body)
}

// DetailWithContext
// method: GET
// url: /instrument/detail/{id}
func (i *Instrument) DetailWithContext(ctx context.Context, id any) (core.Record, error) {
	path, err := core.BuildResourcePathWithID(i.GetResourcePath()+"/detail", id)
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, i, core.VerbGet, path, nil, nil)
}

func (i *Instrument) Detail(id any) (core.Record, error) {
	return i.DetailWithContext(i.Rest.GetCtx(), id)
}

// RemoveWithContext
// method: GET
// url: /instrument/delete/{id}
// The backend deletes through a GET route.
func (i *Instrument) RemoveWithContext(ctx context.Context, id any) (core.Record, error) {
	path, err := core.BuildResourcePathWithID(i.GetResourcePath()+"/delete", id)
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, i, core.VerbGet, path, nil, nil)
}

func (i *Instrument) Remove(id any) (core.Record, error) {
	return i.RemoveWithContext(i.Rest.GetCtx(), id)
}

// TypesWithContext
// method: GET
// url: /instrument/types
func (i *Instrument) TypesWithContext(ctx context.Context) (core.RecordSet, error) {
	return core.Request[core.RecordSet](ctx, i, core.VerbGet, i.GetResourcePath()+"/types", nil, nil)
}

func (i *Instrument) Types() (core.RecordSet, error) {
	return i.TypesWithContext(i.Rest.GetCtx())
}

// SaveTypeWithContext
// method: POST
// url: /instrument/type/save
func (i *Instrument) SaveTypeWithContext(ctx context.Context, body core.Params) (core.Record, error) {
	return core.Request[core.Record](ctx, i, core.VerbPost, i.GetResourcePath()+"/type/save", nil, body)
}

func (i *Instrument) SaveType(body core.Params) (core.Record, error) {
	return i.SaveTypeWithContext(i.Rest.GetCtx(), body)
}

// RemoveTypeWithContext
// method: GET
// url: /instrument/type/delete/{id}
func (i *Instrument) RemoveTypeWithContext(ctx context.Context, id any) (core.Record, error) {
	path, err := core.BuildResourcePathWithID(i.GetResourcePath()+"/type/delete", id)
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, i, core.VerbGet, path, nil, nil)
}

func (i *Instrument) RemoveType(id any) (core.Record, error) {
	return i.RemoveTypeWithContext(i.Rest.GetCtx(), id)
}
