package core

import (
	"context"
	"fmt"
)

//  ######################################################
//              TYPED RESOURCE
//  ######################################################

// TypedResource is embedded by typed services. It resolves the untyped
// resource of the same type name and sends requests on its behalf, so
// interceptors, logging and metrics see the same caller either way.
type TypedResource struct {
	resourceType string
	Untyped      ResourceRegistry
}

func NewTypedResource(resourceType string, rest ResourceRegistry) *TypedResource {
	return &TypedResource{
		resourceType: resourceType,
		Untyped:      rest,
	}
}

// Resource returns the untyped resource this typed service fronts.
func (e *TypedResource) Resource() InterceptableResourceAPI {
	res, ok := e.Untyped.GetResourceMap()[e.resourceType]
	if !ok {
		panic(fmt.Sprintf("untyped resource %s is not registered", e.resourceType))
	}
	return res
}

func (e *TypedResource) Session() RESTSession {
	return e.Untyped.GetSession()
}

func (e *TypedResource) GetResourceType() string {
	return e.resourceType
}

// Ctx returns the client context bound to the owning rest.
func (e *TypedResource) Ctx() context.Context {
	if ctx := e.Untyped.GetCtx(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// CallerContext attaches the untyped resource to ctx, see Resource.CallerContext.
func (e *TypedResource) CallerContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = e.Ctx()
	}
	return WithCaller(ctx, e.Resource())
}

// Lock acquires the per-key lock of the untyped resource:
//
//	defer articles.Lock("toggle-publish", id)()
func (e *TypedResource) Lock(keys ...any) func() {
	return e.Resource().Lock(keys...)
}

func (e *TypedResource) String() string {
	return fmt.Sprintf("%s", e.Resource())
}

// GetIteratorWithContext pages through the untyped resource.
func (e *TypedResource) GetIteratorWithContext(ctx context.Context, params Params, pageSize int) Iterator {
	return e.Resource().GetIteratorWithContext(ctx, params, pageSize)
}

func (e *TypedResource) GetIterator(params Params, pageSize int) Iterator {
	return e.GetIteratorWithContext(e.Ctx(), params, pageSize)
}
