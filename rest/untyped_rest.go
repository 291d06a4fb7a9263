package rest

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/labsite/go-admin-client/core"
	"github.com/labsite/go-admin-client/resources/untyped"
)

// UntypedResourceType is the constraint satisfied by every untyped resource
// (all of them embed *core.Resource).
type UntypedResourceType interface {
	core.InterceptableResourceAPI
}

// Bit flags representing which CRUD operations are supported
const (
	C = core.C
	L = core.L
	R = core.R
	U = core.U
	D = core.D
)

type UntypedAdminRest struct {
	ctx         context.Context
	Session     core.RESTSession
	resourceMap map[string]core.InterceptableResourceAPI // resources by type name

	// extra: GET=/articles/published
	// extra: GET=/articles/type/{type}
	// extra: PATCH=/articles/{id}/toggle-publish
	// extra: POST=/articles/upload-cover
	Articles *untyped.Article
	// extra: GET|PUT=/company
	Company *untyped.Company
	// extra: POST=/instrument/list, POST=/instrument/save
	// extra: GET=/instrument/detail/{id}, GET=/instrument/delete/{id}
	// extra: GET=/instrument/types, POST=/instrument/type/save, GET=/instrument/type/delete/{id}
	Instruments *untyped.Instrument
	AgentBrands *untyped.AgentBrand
	// extra: POST=/messages/list
	// extra: PATCH=/messages/{id}/read
	Messages       *untyped.Message
	RentalProducts *untyped.RentalProduct
	// extra: PUT=/rental/notices/bulk
	RentalNotices *untyped.RentalNotice
	// extra: GET=/service-categories/admin
	// extra: GET=/service-categories/{id}/services
	ServiceCategories *untyped.ServiceCategory
	// extra: GET=/services/admin
	ServiceItems *untyped.ServiceItem
}

func NewUntypedAdminRest(config *core.AdminConfig) (*UntypedAdminRest, error) {
	config.Validate(
		core.WithBaseURL,
		core.WithApiPrefix(core.DefaultApiPrefix),
		core.WithUserAgent,
		core.WithLogger,
		core.WithServerVersion,
		core.WithFillFn,
		core.WithTimeout(time.Second*30),
		core.WithMaxConnections(core.DefaultMaxConnections),
		core.WithPageLimit(core.DefaultPageLimit),
	)
	session, err := core.NewAdminSession(config)
	if err != nil {
		return nil, err
	}
	rest := &UntypedAdminRest{
		Session:     session,
		resourceMap: make(map[string]core.InterceptableResourceAPI),
	}

	// Set context: use provided context or default to background context
	if config.Context != nil {
		rest.SetCtx(config.Context)
	} else {
		rest.SetCtx(context.Background())
	}

	// Fill in each resource, pointing back to the same rest
	rest.Articles = newUntypedResource[untyped.Article](rest, "articles", C, L, R, U, D)
	rest.Company = newUntypedResource[untyped.Company](rest, "company", U)
	rest.Instruments = newUntypedResource[untyped.Instrument](rest, "instrument")
	rest.AgentBrands = newUntypedResource[untyped.AgentBrand](rest, "agent-brand", C, L, D)
	rest.Messages = newUntypedResource[untyped.Message](rest, "messages")
	rest.RentalProducts = newUntypedResource[untyped.RentalProduct](rest, "rental/products", C, L, U, D)
	rest.RentalNotices = newUntypedResource[untyped.RentalNotice](rest, "rental/notices", C, L, U, D)
	rest.ServiceCategories = newUntypedResource[untyped.ServiceCategory](rest, "service-categories", C, R, U, D)
	rest.ServiceItems = newUntypedResource[untyped.ServiceItem](rest, "services", C, R, U, D)

	return rest, nil
}

func (rest *UntypedAdminRest) GetSession() core.RESTSession {
	return rest.Session
}

func (rest *UntypedAdminRest) GetResourceMap() map[string]core.InterceptableResourceAPI {
	return rest.resourceMap
}

func (rest *UntypedAdminRest) GetCtx() context.Context {
	return rest.ctx
}

func (rest *UntypedAdminRest) SetCtx(ctx context.Context) {
	rest.ctx = ctx
}

// BuildUrl returns the absolute URL of path (prefix included) with an
// optional query string.
func (rest *UntypedAdminRest) BuildUrl(path string, query core.Params) (string, error) {
	return core.BuildUrl(rest.Session, path, query.ToQuery())
}

func newUntypedResource[T any, PT interface {
	*T
	UntypedResourceType
}](rest *UntypedAdminRest, resourcePath string, resourceOps ...core.ResourceOps) *T {
	var zero T
	t := reflect.TypeOf(zero)
	resourceType := t.Name()

	instance := reflect.New(t).Interface()

	// Parent reference lets the base resource find shadowed hooks and extra methods.
	resource := core.NewResource(resourcePath, resourceType, rest, core.NewResourceOps(resourceOps...), instance)

	// Every untyped resource embeds *core.Resource
	val := reflect.ValueOf(instance).Elem()
	found := false
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if field.Type() == reflect.TypeOf((*core.Resource)(nil)) && field.CanSet() {
			field.Set(reflect.ValueOf(resource))
			found = true
			break
		}
	}
	if !found {
		panic(fmt.Sprintf("Resource %s does not embed *core.Resource or field is not settable", resourceType))
	}

	result, ok := instance.(*T)
	if !ok {
		panic(fmt.Sprintf("Failed to convert instance to type *%s", resourceType))
	}
	rest.resourceMap[resourceType] = PT(result)
	return result
}
