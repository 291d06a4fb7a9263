package untyped

import (
	"context"

	"github.com/labsite/go-admin-client/core"
)

type ServiceCategory struct {
	*core.Resource
}

// AllWithContext
// method: GET
// url: /service-categories/admin
// Unlike List it includes inactive categories.
func (c *ServiceCategory) AllWithContext(ctx context.Context) (core.RecordSet, error) {
	return core.Request[core.RecordSet](ctx, c, core.VerbGet, c.GetResourcePath()+"/admin", nil, nil)
}

func (c *ServiceCategory) All() (core.RecordSet, error) {
	return c.AllWithContext(c.Rest.GetCtx())
}

// ServicesWithContext
// method: GET
// url: /service-categories/{id}/services
func (c *ServiceCategory) ServicesWithContext(ctx context.Context, categoryId any) (core.RecordSet, error) {
	path, err := core.BuildResourcePathWithID(c.GetResourcePath(), categoryId, "services")
	if err != nil {
		return nil, err
	}
	return core.Request[core.RecordSet](ctx, c, core.VerbGet, path, nil, nil)
}

func (c *ServiceCategory) Services(categoryId any) (core.RecordSet, error) {
	return c.ServicesWithContext(c.Rest.GetCtx(), categoryId)
}

type ServiceItem struct {
	*core.Resource
}

// AllWithContext
// method: GET
// url: /services/admin
func (s *ServiceItem) AllWithContext(ctx context.Context) (core.RecordSet, error) {
	return core.Request[core.RecordSet](ctx, s, core.VerbGet, s.GetResourcePath()+"/admin", nil, nil)
}

func (s *ServiceItem) All() (core.RecordSet, error) {
	return s.AllWithContext(s.Rest.GetCtx())
}
