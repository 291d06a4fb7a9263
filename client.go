package admin_client

import (
	"github.com/labsite/go-admin-client/core"
	"github.com/labsite/go-admin-client/rest"
)

type (
	AdminConfig              = core.AdminConfig
	Params                   = core.Params
	Record                   = core.Record
	RecordSet                = core.RecordSet
	Renderable               = core.Renderable
	FileData                 = core.FileData
	Verb                     = core.Verb
	TypedAdminRest           = rest.TypedAdminRest
	UntypedAdminRest         = rest.UntypedAdminRest
	ResourceAPI              = core.ResourceAPI
	ResourceAPIWithContext   = core.ResourceAPIWithContext
	InterceptableResourceAPI = core.InterceptableResourceAPI
	ApiError                 = core.ApiError
	EnvelopeError            = core.EnvelopeError
)

const (
	VerbGet    = core.VerbGet
	VerbPost   = core.VerbPost
	VerbPut    = core.VerbPut
	VerbPatch  = core.VerbPatch
	VerbDelete = core.VerbDelete
)

func NewTypedAdminRest(config *AdminConfig) (*TypedAdminRest, error) {
	return rest.NewTypedAdminRest(config)
}

func NewUntypedAdminRest(config *AdminConfig) (*UntypedAdminRest, error) {
	return rest.NewUntypedAdminRest(config)
}

// ObjectToSearch renders params as "?a=1&b=2", or "" when nothing is left
// after dropping nil values.
func ObjectToSearch(params Params) string {
	return core.ObjectToSearch(params)
}
