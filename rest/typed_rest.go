package rest

import (
	"context"
	"fmt"
	"reflect"

	"github.com/labsite/go-admin-client/core"
	"github.com/labsite/go-admin-client/resources/typed"
)

// TypedAdminRest exposes the typed services. Each one fronts the untyped
// resource registered under the same type name.
type TypedAdminRest struct {
	Untyped *UntypedAdminRest

	Articles          *typed.Article
	Company           *typed.Company
	Instruments       *typed.Instrument
	AgentBrands       *typed.AgentBrand
	Messages          *typed.Message
	RentalProducts    *typed.RentalProduct
	RentalNotices     *typed.RentalNotice
	ServiceCategories *typed.ServiceCategory
	ServiceItems      *typed.ServiceItem
}

func NewTypedAdminRest(config *core.AdminConfig) (*TypedAdminRest, error) {
	untyped, err := NewUntypedAdminRest(config)
	if err != nil {
		return nil, err
	}

	rest := &TypedAdminRest{
		Untyped: untyped,
	}

	rest.Articles = newTypedResource[typed.Article](rest)
	rest.Company = newTypedResource[typed.Company](rest)
	rest.Instruments = newTypedResource[typed.Instrument](rest)
	rest.AgentBrands = newTypedResource[typed.AgentBrand](rest)
	rest.Messages = newTypedResource[typed.Message](rest)
	rest.RentalProducts = newTypedResource[typed.RentalProduct](rest)
	rest.RentalNotices = newTypedResource[typed.RentalNotice](rest)
	rest.ServiceCategories = newTypedResource[typed.ServiceCategory](rest)
	rest.ServiceItems = newTypedResource[typed.ServiceItem](rest)

	return rest, nil
}

func (rest *TypedAdminRest) GetSession() core.RESTSession {
	return rest.Untyped.Session
}

func (rest *TypedAdminRest) GetResourceMap() map[string]core.InterceptableResourceAPI {
	return rest.Untyped.resourceMap
}

func (rest *TypedAdminRest) GetCtx() context.Context {
	return rest.Untyped.ctx
}

func (rest *TypedAdminRest) SetCtx(ctx context.Context) {
	rest.Untyped.ctx = ctx
}

func newTypedResource[T any](rest *TypedAdminRest) *T {
	var zero T
	t := reflect.TypeOf(zero)
	resourceType := t.Name()

	// The untyped resource must exist before a typed one can front it.
	if _, ok := rest.Untyped.resourceMap[resourceType]; !ok {
		panic(fmt.Sprintf("untyped resource type %s not found in REST", resourceType))
	}

	instance := reflect.New(t).Interface()
	typedRes := core.NewTypedResource(resourceType, rest)

	// Every typed resource embeds *core.TypedResource
	val := reflect.ValueOf(instance).Elem()
	found := false
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if field.Type() == reflect.TypeOf((*core.TypedResource)(nil)) && field.CanSet() {
			field.Set(reflect.ValueOf(typedRes))
			found = true
			break
		}
	}
	if !found {
		panic(fmt.Sprintf("Resource %s does not embed *core.TypedResource or field is not settable", resourceType))
	}

	if result, ok := instance.(*T); ok {
		return result
	}
	panic(fmt.Sprintf("Failed to convert instance to type *%s", resourceType))
}
