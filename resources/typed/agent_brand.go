package typed

import (
	"context"
	"fmt"

	"github.com/labsite/go-admin-client/core"
	"github.com/labsite/go-admin-client/resources/untyped"
)

type AgentBrandRequestBody struct {
	Id          int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string `json:"name" yaml:"name"`
	Logo        string `json:"logo,omitempty" yaml:"logo,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Website     string `json:"website,omitempty" yaml:"website,omitempty"`
	Sort        int    `json:"sort,omitempty" yaml:"sort,omitempty"`
}

type AgentBrandResponseBody struct {
	Id          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Logo        string `json:"logo,omitempty" yaml:"logo,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Website     string `json:"website,omitempty" yaml:"website,omitempty"`
	Sort        int    `json:"sort" yaml:"sort"`
}

// AgentBrand is the typed service for brands the company is an agent of.
type AgentBrand struct {
	*core.TypedResource
}

func (r *AgentBrand) untyped() *untyped.AgentBrand {
	return r.Resource().(*untyped.AgentBrand)
}

func (r *AgentBrand) ListWithContext(ctx context.Context) ([]AgentBrandResponseBody, error) {
	brands, err := core.FetchInto[[]AgentBrandResponseBody](r.CallerContext(ctx), r.Session(), core.FetchParams{
		Path: r.untyped().GetResourcePath(),
		Verb: core.VerbGet,
	})
	if err != nil {
		return nil, err
	}
	if brands == nil {
		brands = []AgentBrandResponseBody{}
	}
	return brands, nil
}

func (r *AgentBrand) List() ([]AgentBrandResponseBody, error) {
	return r.ListWithContext(r.Ctx())
}

// SaveWithContext adds the brand, or updates it when body.Id is set.
func (r *AgentBrand) SaveWithContext(ctx context.Context, body *AgentBrandRequestBody) error {
	if body == nil {
		return fmt.Errorf("agent brand body is required")
	}
	return execute(r.CallerContext(ctx), r.Session(), core.FetchParams{
		Path: r.untyped().GetResourcePath(),
		Verb: core.VerbPost,
		Body: body,
	})
}

func (r *AgentBrand) Save(body *AgentBrandRequestBody) error {
	return r.SaveWithContext(r.Ctx(), body)
}

func (r *AgentBrand) DeleteWithContext(ctx context.Context, id any) error {
	_, err := r.untyped().DeleteByIdWithContext(ctx, id)
	return err
}

func (r *AgentBrand) Delete(id any) error {
	return r.DeleteWithContext(r.Ctx(), id)
}
