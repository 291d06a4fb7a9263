package typed

import (
	"context"
	"fmt"

	"github.com/labsite/go-admin-client/core"
)

type RentalProductRequestBody struct {
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Image       string   `json:"image,omitempty" yaml:"image,omitempty"`
	Price       *float64 `json:"price,omitempty" yaml:"price,omitempty"`
	Unit        string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Sort        *int     `json:"sort,omitempty" yaml:"sort,omitempty"`
	IsActive    *bool    `json:"isActive,omitempty" yaml:"isActive,omitempty"`
}

type RentalProductResponseBody struct {
	Id          int64   `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Image       string  `json:"image,omitempty" yaml:"image,omitempty"`
	Price       float64 `json:"price" yaml:"price"`
	Unit        string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Sort        int     `json:"sort" yaml:"sort"`
	IsActive    bool    `json:"isActive" yaml:"isActive"`
}

type RentalNoticeRequestBody struct {
	Id      int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
	Sort    *int   `json:"sort,omitempty" yaml:"sort,omitempty"`
}

type RentalNoticeResponseBody struct {
	Id      int64  `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
	Sort    int    `json:"sort" yaml:"sort"`
}

// rentalCrud implements the list/create/update/delete set shared by rental
// products and notices: plain REST routes whose answers are unwrapped to data.
type rentalCrud[Req, Resp any] struct {
	*core.TypedResource
}

func (r rentalCrud[Req, Resp]) path() string {
	return r.Resource().GetResourcePath()
}

func (r rentalCrud[Req, Resp]) pathWithID(id any) (string, error) {
	return core.BuildResourcePathWithID(r.path(), id)
}

func (r rentalCrud[Req, Resp]) list(ctx context.Context) ([]Resp, error) {
	items, err := core.FetchInto[[]Resp](r.CallerContext(ctx), r.Session(), core.FetchParams{
		Path: r.path(),
		Verb: core.VerbGet,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Resp{}
	}
	return items, nil
}

func (r rentalCrud[Req, Resp]) send(ctx context.Context, verb core.Verb, path string, body any) (*Resp, error) {
	result, err := core.FetchInto[Resp](r.CallerContext(ctx), r.Session(), core.FetchParams{
		Path: path,
		Verb: verb,
		Body: body,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r rentalCrud[Req, Resp]) create(ctx context.Context, body *Req) (*Resp, error) {
	if body == nil {
		return nil, fmt.Errorf("%s body is required", r.GetResourceType())
	}
	return r.send(ctx, core.VerbPost, r.path(), body)
}

func (r rentalCrud[Req, Resp]) update(ctx context.Context, id any, body *Req) (*Resp, error) {
	if body == nil {
		return nil, fmt.Errorf("%s body is required", r.GetResourceType())
	}
	path, err := r.pathWithID(id)
	if err != nil {
		return nil, err
	}
	return r.send(ctx, core.VerbPatch, path, body)
}

func (r rentalCrud[Req, Resp]) delete(ctx context.Context, id any) error {
	path, err := r.pathWithID(id)
	if err != nil {
		return err
	}
	return execute(r.CallerContext(ctx), r.Session(), core.FetchParams{
		Path: path,
		Verb: core.VerbDelete,
	})
}

// -----------------------------------------------------
// RENTAL PRODUCTS
// -----------------------------------------------------

type RentalProduct struct {
	*core.TypedResource
}

func (r *RentalProduct) crud() rentalCrud[RentalProductRequestBody, RentalProductResponseBody] {
	return rentalCrud[RentalProductRequestBody, RentalProductResponseBody]{r.TypedResource}
}

func (r *RentalProduct) ListWithContext(ctx context.Context) ([]RentalProductResponseBody, error) {
	return r.crud().list(ctx)
}

func (r *RentalProduct) List() ([]RentalProductResponseBody, error) {
	return r.ListWithContext(r.Ctx())
}

func (r *RentalProduct) CreateWithContext(ctx context.Context, body *RentalProductRequestBody) (*RentalProductResponseBody, error) {
	return r.crud().create(ctx, body)
}

func (r *RentalProduct) Create(body *RentalProductRequestBody) (*RentalProductResponseBody, error) {
	return r.CreateWithContext(r.Ctx(), body)
}

func (r *RentalProduct) UpdateWithContext(ctx context.Context, id any, body *RentalProductRequestBody) (*RentalProductResponseBody, error) {
	return r.crud().update(ctx, id, body)
}

func (r *RentalProduct) Update(id any, body *RentalProductRequestBody) (*RentalProductResponseBody, error) {
	return r.UpdateWithContext(r.Ctx(), id, body)
}

func (r *RentalProduct) DeleteWithContext(ctx context.Context, id any) error {
	return r.crud().delete(ctx, id)
}

func (r *RentalProduct) Delete(id any) error {
	return r.DeleteWithContext(r.Ctx(), id)
}

// -----------------------------------------------------
// RENTAL NOTICES
// -----------------------------------------------------

type RentalNotice struct {
	*core.TypedResource
}

func (r *RentalNotice) crud() rentalCrud[RentalNoticeRequestBody, RentalNoticeResponseBody] {
	return rentalCrud[RentalNoticeRequestBody, RentalNoticeResponseBody]{r.TypedResource}
}

func (r *RentalNotice) ListWithContext(ctx context.Context) ([]RentalNoticeResponseBody, error) {
	return r.crud().list(ctx)
}

func (r *RentalNotice) List() ([]RentalNoticeResponseBody, error) {
	return r.ListWithContext(r.Ctx())
}

func (r *RentalNotice) CreateWithContext(ctx context.Context, body *RentalNoticeRequestBody) (*RentalNoticeResponseBody, error) {
	return r.crud().create(ctx, body)
}

func (r *RentalNotice) Create(body *RentalNoticeRequestBody) (*RentalNoticeResponseBody, error) {
	return r.CreateWithContext(r.Ctx(), body)
}

func (r *RentalNotice) UpdateWithContext(ctx context.Context, id any, body *RentalNoticeRequestBody) (*RentalNoticeResponseBody, error) {
	return r.crud().update(ctx, id, body)
}

func (r *RentalNotice) Update(id any, body *RentalNoticeRequestBody) (*RentalNoticeResponseBody, error) {
	return r.UpdateWithContext(r.Ctx(), id, body)
}

func (r *RentalNotice) DeleteWithContext(ctx context.Context, id any) error {
	return r.crud().delete(ctx, id)
}

func (r *RentalNotice) Delete(id any) error {
	return r.DeleteWithContext(r.Ctx(), id)
}

// UpdateAllWithContext replaces every notice at once (PUT /rental/notices/bulk).
// An empty slice clears the list.
func (r *RentalNotice) UpdateAllWithContext(ctx context.Context, notices []RentalNoticeRequestBody) ([]RentalNoticeResponseBody, error) {
	if notices == nil {
		notices = []RentalNoticeRequestBody{}
	}
	result, err := core.FetchInto[[]RentalNoticeResponseBody](r.CallerContext(ctx), r.Session(), core.FetchParams{
		Path: r.crud().path() + "/bulk",
		Verb: core.VerbPut,
		Body: notices,
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []RentalNoticeResponseBody{}
	}
	return result, nil
}

func (r *RentalNotice) UpdateAll(notices []RentalNoticeRequestBody) ([]RentalNoticeResponseBody, error) {
	return r.UpdateAllWithContext(r.Ctx(), notices)
}
