package core

import (
	"context"
	"io"
	"net/http"
)

// ResourceAPI defines the record-level CRUD operations shared by every admin resource.
type ResourceAPI interface {
	Session() RESTSession
	GetResourceType() string
	GetResourcePath() string

	List(Params) (RecordSet, error)
	Create(Params) (Record, error)
	Update(any, Params) (Record, error)
	Replace(any, Params) (Record, error)
	Delete(Params) (Record, error)
	DeleteById(any) (Record, error)
	Ensure(Params, Params) (Record, error)
	Get(Params) (Record, error)
	GetById(any) (Record, error)
	Exists(Params) (bool, error)
	MustExists(Params) bool
	GetIterator(Params, int) Iterator
	// Resource-level mutex lock for concurrent access control
	Lock(...any) func()
}

type ResourceAPIWithContext interface {
	ResourceAPI
	ListWithContext(context.Context, Params) (RecordSet, error)
	CreateWithContext(context.Context, Params) (Record, error)
	UpdateWithContext(context.Context, any, Params) (Record, error)
	ReplaceWithContext(context.Context, any, Params) (Record, error)
	DeleteWithContext(context.Context, Params) (Record, error)
	DeleteByIdWithContext(context.Context, any) (Record, error)
	EnsureWithContext(context.Context, Params, Params) (Record, error)
	GetWithContext(context.Context, Params) (Record, error)
	GetByIdWithContext(context.Context, any) (Record, error)
	ExistsWithContext(context.Context, Params) (bool, error)
	MustExistsWithContext(context.Context, Params) bool
	GetIteratorWithContext(context.Context, Params, int) Iterator
}

// InterceptableResourceAPI combines request interception with resource behavior.
type InterceptableResourceAPI interface {
	RequestInterceptor
	ResourceAPIWithContext
}

// RequestInterceptor is a middleware-style hook pair around every request a
// resource sends. Resources shadow BeforeRequest/AfterRequest to mutate
// requests or normalize responses.
type RequestInterceptor interface {
	// BeforeRequest runs after headers are set and before the request is sent.
	// body is a fresh reader over the JSON body (nil for multipart or streamed bodies).
	BeforeRequest(ctx context.Context, r *http.Request, verb Verb, url string, body io.Reader) error

	// AfterRequest runs on the unwrapped envelope data (Record or RecordSet)
	// and may replace it.
	AfterRequest(ctx context.Context, response Renderable) (Renderable, error)

	// doBeforeRequest is the internal chain: logging, resource hook, config hook.
	doBeforeRequest(ctx context.Context, s RESTSession, r *http.Request, verb Verb, url string, body io.Reader) error

	// doAfterRequest is the internal chain: resource key, logging, resource hook, config hook.
	doAfterRequest(ctx context.Context, s RESTSession, response Renderable) (Renderable, error)
}

// requestCaller is what the session looks up in the request context to run
// interceptors and label metrics.
type requestCaller interface {
	RequestInterceptor
	GetResourceType() string
}

// AdminRestAPI is implemented by the top-level client that owns the session
// and the default context.
type AdminRestAPI interface {
	GetSession() RESTSession
	GetCtx() context.Context
	SetCtx(context.Context)
}

// ResourceRegistry is an AdminRestAPI that also indexes its resources by type
// name, so typed wrappers can find the untyped resource they front.
type ResourceRegistry interface {
	AdminRestAPI
	GetResourceMap() map[string]InterceptableResourceAPI
}
