package typed

import (
	"context"
	"fmt"

	"github.com/labsite/go-admin-client/core"
	"github.com/labsite/go-admin-client/resources/untyped"
)

// -----------------------------------------------------
// SEARCH PARAMS
// -----------------------------------------------------

type InstrumentPageParams struct {
	CurrentPage int `json:"currentPage" yaml:"currentPage"`
	PageSize    int `json:"pageSize" yaml:"pageSize"`
}

// InstrumentSearchParams is the POST /instrument/list body.
type InstrumentSearchParams struct {
	Name string                `json:"name,omitempty" yaml:"name,omitempty"`
	Type string                `json:"type,omitempty" yaml:"type,omitempty"`
	Page *InstrumentPageParams `json:"page,omitempty" yaml:"page,omitempty"`
}

// -----------------------------------------------------
// MODELS
// -----------------------------------------------------

type Picture struct {
	Name string `json:"name" yaml:"name"`
	Url  string `json:"url" yaml:"url"`
}

type InstrumentFeature struct {
	Images []Picture `json:"images,omitempty" yaml:"images,omitempty"`
	Text   string    `json:"text" yaml:"text"`
}

type InstrumentParam struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

type InstrumentModel struct {
	Name   string            `json:"name" yaml:"name"`
	Params []InstrumentParam `json:"params,omitempty" yaml:"params,omitempty"`
}

type ProductType struct {
	Id   int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Name string `json:"name" yaml:"name"`
}

// InstrumentRequestBody is the save payload; a non-zero Id updates.
type InstrumentRequestBody struct {
	Id                int64               `json:"id,omitempty" yaml:"id,omitempty"`
	Name              string              `json:"name" yaml:"name"`
	Desc              string              `json:"desc" yaml:"desc"`
	Region            string              `json:"region" yaml:"region"`
	TypeId            string              `json:"typeId" yaml:"typeId"`
	WorkingPrinciple  string              `json:"workingPrinciple,omitempty" yaml:"workingPrinciple,omitempty"`
	ApplicationScenes []string            `json:"applicationScenes" yaml:"applicationScenes"`
	Features          []InstrumentFeature `json:"features" yaml:"features"`
	Models            []InstrumentModel   `json:"models" yaml:"models"`
	Images            []Picture           `json:"images" yaml:"images"`
}

type InstrumentResponseBody struct {
	Id                int64               `json:"id,omitempty" yaml:"id,omitempty"`
	Name              string              `json:"name" yaml:"name"`
	Desc              string              `json:"desc" yaml:"desc"`
	Region            string              `json:"region" yaml:"region"`
	TypeId            string              `json:"typeId" yaml:"typeId"`
	WorkingPrinciple  string              `json:"workingPrinciple,omitempty" yaml:"workingPrinciple,omitempty"`
	ApplicationScenes []string            `json:"applicationScenes" yaml:"applicationScenes"`
	Features          []InstrumentFeature `json:"features" yaml:"features"`
	Models            []InstrumentModel   `json:"models" yaml:"models"`
	Images            []Picture           `json:"images" yaml:"images"`
	Type              ProductType         `json:"type" yaml:"type"`
}

type InstrumentList = ListResult[InstrumentResponseBody]

// -----------------------------------------------------
// RESOURCE METHODS
// -----------------------------------------------------

// Instrument is the typed instruments and instrument types service.
type Instrument struct {
	*core.TypedResource
}

func (r *Instrument) untyped() *untyped.Instrument {
	return r.Resource().(*untyped.Instrument)
}

func (r *Instrument) path(segments ...string) string {
	path := r.untyped().GetResourcePath()
	for _, segment := range segments {
		path += "/" + segment
	}
	return path
}

// ListWithContext searches instruments. A nil req sends an empty filter.
func (r *Instrument) ListWithContext(ctx context.Context, req *InstrumentSearchParams) (*InstrumentList, error) {
	if req == nil {
		req = &InstrumentSearchParams{}
	}
	list, err := core.FetchInto[InstrumentList](r.CallerContext(ctx), r.Session(), core.FetchParams{
		Path: r.path("list"),
		Verb: core.VerbPost,
		Body: req,
	})
	if err != nil {
		return nil, err
	}
	if list.Items == nil {
		list.Items = []InstrumentResponseBody{}
	}
	return &list, nil
}

func (r *Instrument) List(req *InstrumentSearchParams) (*InstrumentList, error) {
	return r.ListWithContext(r.Ctx(), req)
}

// SaveWithContext creates the instrument, or updates it when body.Id is set.
func (r *Instrument) SaveWithContext(ctx context.Context, body *InstrumentRequestBody) error {
	if body == nil {
		return fmt.Errorf("instrument body is required")
	}
	return execute(r.CallerContext(ctx), r.Session(), core.FetchParams{
		Path: r.path("save"),
		Verb: core.VerbPost,
		Body: body,
	})
}

func (r *Instrument) Save(body *InstrumentRequestBody) error {
	return r.SaveWithContext(r.Ctx(), body)
}

func (r *Instrument) GetByIdWithContext(ctx context.Context, id any) (*InstrumentResponseBody, error) {
	record, err := r.untyped().DetailWithContext(ctx, id)
	if err != nil {
		return nil, err
	}
	var response InstrumentResponseBody
	if err = record.Fill(&response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *Instrument) GetById(id any) (*InstrumentResponseBody, error) {
	return r.GetByIdWithContext(r.Ctx(), id)
}

// DeleteWithContext removes the instrument through GET /instrument/delete/{id}.
func (r *Instrument) DeleteWithContext(ctx context.Context, id any) error {
	_, err := r.untyped().RemoveWithContext(ctx, id)
	return err
}

func (r *Instrument) Delete(id any) error {
	return r.DeleteWithContext(r.Ctx(), id)
}

func (r *Instrument) ListTypesWithContext(ctx context.Context) ([]ProductType, error) {
	records, err := r.untyped().TypesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	types := []ProductType{}
	if err = records.Fill(&types); err != nil {
		return nil, err
	}
	return types, nil
}

func (r *Instrument) ListTypes() ([]ProductType, error) {
	return r.ListTypesWithContext(r.Ctx())
}

// SaveTypeWithContext creates the type, or renames it when productType.Id is set.
func (r *Instrument) SaveTypeWithContext(ctx context.Context, productType *ProductType) error {
	if productType == nil || productType.Name == "" {
		return fmt.Errorf("product type name is required")
	}
	return execute(r.CallerContext(ctx), r.Session(), core.FetchParams{
		Path: r.path("type", "save"),
		Verb: core.VerbPost,
		Body: productType,
	})
}

func (r *Instrument) SaveType(productType *ProductType) error {
	return r.SaveTypeWithContext(r.Ctx(), productType)
}

func (r *Instrument) DeleteTypeWithContext(ctx context.Context, id any) error {
	_, err := r.untyped().RemoveTypeWithContext(ctx, id)
	return err
}

func (r *Instrument) DeleteType(id any) error {
	return r.DeleteTypeWithContext(r.Ctx(), id)
}
