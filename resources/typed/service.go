package typed

import (
	"context"
	"fmt"

	"github.com/labsite/go-admin-client/core"
	"github.com/labsite/go-admin-client/resources/untyped"
)

// -----------------------------------------------------
// MODELS
// -----------------------------------------------------

type ServiceCategoryRequestBody struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	SortOrder   *int   `json:"sort_order,omitempty" yaml:"sort_order,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty" yaml:"is_active,omitempty"`
}

type ServiceCategoryResponseBody struct {
	Id          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	SortOrder   int    `json:"sort_order" yaml:"sort_order"`
	IsActive    bool   `json:"is_active" yaml:"is_active"`
	CreatedAt   string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

type ServiceImage struct {
	Url         string `json:"url" yaml:"url"`
	Description string `json:"description" yaml:"description"`
}

type ServiceItemRequestBody struct {
	CategoryId          int64          `json:"category_id,omitempty" yaml:"category_id,omitempty"`
	Name                string         `json:"name,omitempty" yaml:"name,omitempty"`
	Description         string         `json:"description,omitempty" yaml:"description,omitempty"`
	DetailedDescription string         `json:"detailed_description,omitempty" yaml:"detailed_description,omitempty"`
	Images              []ServiceImage `json:"images,omitempty" yaml:"images,omitempty"`
	SortOrder           *int           `json:"sort_order,omitempty" yaml:"sort_order,omitempty"`
	IsActive            *bool          `json:"is_active,omitempty" yaml:"is_active,omitempty"`
}

type ServiceItemResponseBody struct {
	Id                  int64          `json:"id" yaml:"id"`
	CategoryId          int64          `json:"category_id" yaml:"category_id"`
	Name                string         `json:"name" yaml:"name"`
	Description         string         `json:"description" yaml:"description"`
	DetailedDescription string         `json:"detailed_description,omitempty" yaml:"detailed_description,omitempty"`
	Images              []ServiceImage `json:"images,omitempty" yaml:"images,omitempty"`
	SortOrder           int            `json:"sort_order" yaml:"sort_order"`
	IsActive            bool           `json:"is_active" yaml:"is_active"`
	CreatedAt           string         `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt           string         `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// directCrud covers the GET-one and the create, update and delete calls that
// return the whole envelope.
type directCrud[Req, Resp any] struct {
	*core.TypedResource
}

func (r directCrud[Req, Resp]) getById(ctx context.Context, id any) (*Resp, error) {
	path, err := core.BuildResourcePathWithID(r.Resource().GetResourcePath(), id)
	if err != nil {
		return nil, err
	}
	result, err := core.FetchInto[Resp](r.CallerContext(ctx), r.Session(), core.FetchParams{
		Path: path,
		Verb: core.VerbGet,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r directCrud[Req, Resp]) create(ctx context.Context, body *Req) (*core.ApiResponse[Resp], error) {
	if body == nil {
		return nil, fmt.Errorf("%s body is required", r.GetResourceType())
	}
	return core.DirectFetch[Resp](r.CallerContext(ctx), r.Session(), r.Resource().GetResourcePath(), core.DirectOptions{
		Verb: core.VerbPost,
		Body: body,
	})
}

func (r directCrud[Req, Resp]) update(ctx context.Context, id any, body *Req) (*core.ApiResponse[Resp], error) {
	if body == nil {
		return nil, fmt.Errorf("%s body is required", r.GetResourceType())
	}
	path, err := core.BuildResourcePathWithID(r.Resource().GetResourcePath(), id)
	if err != nil {
		return nil, err
	}
	return core.DirectFetch[Resp](r.CallerContext(ctx), r.Session(), path, core.DirectOptions{
		Verb: core.VerbPatch,
		Body: body,
	})
}

func (r directCrud[Req, Resp]) delete(ctx context.Context, id any) (*core.ApiResponse[any], error) {
	path, err := core.BuildResourcePathWithID(r.Resource().GetResourcePath(), id)
	if err != nil {
		return nil, err
	}
	return core.DirectFetch[any](r.CallerContext(ctx), r.Session(), path, core.DirectOptions{
		Verb: core.VerbDelete,
	})
}

// -----------------------------------------------------
// SERVICE CATEGORIES
// -----------------------------------------------------

type ServiceCategory struct {
	*core.TypedResource
}

func (r *ServiceCategory) untyped() *untyped.ServiceCategory {
	return r.Resource().(*untyped.ServiceCategory)
}

func (r *ServiceCategory) crud() directCrud[ServiceCategoryRequestBody, ServiceCategoryResponseBody] {
	return directCrud[ServiceCategoryRequestBody, ServiceCategoryResponseBody]{r.TypedResource}
}

// ListWithContext returns every category, inactive ones included.
func (r *ServiceCategory) ListWithContext(ctx context.Context) ([]ServiceCategoryResponseBody, error) {
	records, err := r.untyped().AllWithContext(ctx)
	if err != nil {
		return nil, err
	}
	categories := []ServiceCategoryResponseBody{}
	if err = records.Fill(&categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *ServiceCategory) List() ([]ServiceCategoryResponseBody, error) {
	return r.ListWithContext(r.Ctx())
}

func (r *ServiceCategory) GetByIdWithContext(ctx context.Context, id any) (*ServiceCategoryResponseBody, error) {
	return r.crud().getById(ctx, id)
}

func (r *ServiceCategory) GetById(id any) (*ServiceCategoryResponseBody, error) {
	return r.GetByIdWithContext(r.Ctx(), id)
}

func (r *ServiceCategory) CreateWithContext(ctx context.Context, body *ServiceCategoryRequestBody) (*core.ApiResponse[ServiceCategoryResponseBody], error) {
	return r.crud().create(ctx, body)
}

func (r *ServiceCategory) Create(body *ServiceCategoryRequestBody) (*core.ApiResponse[ServiceCategoryResponseBody], error) {
	return r.CreateWithContext(r.Ctx(), body)
}

func (r *ServiceCategory) UpdateWithContext(ctx context.Context, id any, body *ServiceCategoryRequestBody) (*core.ApiResponse[ServiceCategoryResponseBody], error) {
	return r.crud().update(ctx, id, body)
}

func (r *ServiceCategory) Update(id any, body *ServiceCategoryRequestBody) (*core.ApiResponse[ServiceCategoryResponseBody], error) {
	return r.UpdateWithContext(r.Ctx(), id, body)
}

func (r *ServiceCategory) DeleteWithContext(ctx context.Context, id any) (*core.ApiResponse[any], error) {
	return r.crud().delete(ctx, id)
}

func (r *ServiceCategory) Delete(id any) (*core.ApiResponse[any], error) {
	return r.DeleteWithContext(r.Ctx(), id)
}

// -----------------------------------------------------
// SERVICE ITEMS
// -----------------------------------------------------

type ServiceItem struct {
	*core.TypedResource
}

func (r *ServiceItem) untyped() *untyped.ServiceItem {
	return r.Resource().(*untyped.ServiceItem)
}

func (r *ServiceItem) crud() directCrud[ServiceItemRequestBody, ServiceItemResponseBody] {
	return directCrud[ServiceItemRequestBody, ServiceItemResponseBody]{r.TypedResource}
}

func fillServiceItems(records core.RecordSet) ([]ServiceItemResponseBody, error) {
	items := []ServiceItemResponseBody{}
	if err := records.Fill(&items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ServiceItem) ListWithContext(ctx context.Context) ([]ServiceItemResponseBody, error) {
	records, err := r.untyped().AllWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return fillServiceItems(records)
}

func (r *ServiceItem) List() ([]ServiceItemResponseBody, error) {
	return r.ListWithContext(r.Ctx())
}

// ListByCategoryWithContext returns the services of one category.
func (r *ServiceItem) ListByCategoryWithContext(ctx context.Context, categoryId any) ([]ServiceItemResponseBody, error) {
	categories, ok := r.Untyped.GetResourceMap()["ServiceCategory"].(*untyped.ServiceCategory)
	if !ok {
		return nil, fmt.Errorf("service categories are not registered")
	}
	records, err := categories.ServicesWithContext(ctx, categoryId)
	if err != nil {
		return nil, err
	}
	return fillServiceItems(records)
}

func (r *ServiceItem) ListByCategory(categoryId any) ([]ServiceItemResponseBody, error) {
	return r.ListByCategoryWithContext(r.Ctx(), categoryId)
}

func (r *ServiceItem) GetByIdWithContext(ctx context.Context, id any) (*ServiceItemResponseBody, error) {
	return r.crud().getById(ctx, id)
}

func (r *ServiceItem) GetById(id any) (*ServiceItemResponseBody, error) {
	return r.GetByIdWithContext(r.Ctx(), id)
}

func (r *ServiceItem) CreateWithContext(ctx context.Context, body *ServiceItemRequestBody) (*core.ApiResponse[ServiceItemResponseBody], error) {
	return r.crud().create(ctx, body)
}

func (r *ServiceItem) Create(body *ServiceItemRequestBody) (*core.ApiResponse[ServiceItemResponseBody], error) {
	return r.CreateWithContext(r.Ctx(), body)
}

func (r *ServiceItem) UpdateWithContext(ctx context.Context, id any, body *ServiceItemRequestBody) (*core.ApiResponse[ServiceItemResponseBody], error) {
	return r.crud().update(ctx, id, body)
}

func (r *ServiceItem) Update(id any, body *ServiceItemRequestBody) (*core.ApiResponse[ServiceItemResponseBody], error) {
	return r.UpdateWithContext(r.Ctx(), id, body)
}

func (r *ServiceItem) DeleteWithContext(ctx context.Context, id any) (*core.ApiResponse[any], error) {
	return r.crud().delete(ctx, id)
}

func (r *ServiceItem) Delete(id any) (*core.ApiResponse[any], error) {
	return r.DeleteWithContext(r.Ctx(), id)
}
