package core

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/hashicorp/go-version"
)

func newDummy() *Resource {
	return &Resource{resourceType: dummyResourceType}
}

//  ######################################################
//              RESOURCES BASE CRUD OPS
//  ######################################################

// Resource implements ResourceAPIWithContext and provides the behavior shared
// by all admin resources. Entity types embed *Resource and add their own
// typed operations on top.
type Resource struct {
	resourcePath string
	resourceType string
	Rest         AdminRestAPI
	mu           *KeyLocker
	resourceOps  ResourceOps
	minVersion   *version.Version
	parent       any // the struct that embeds this Resource
}

func NewResource(resourcePath string, resourceType string, rest AdminRestAPI, resourceOps ResourceOps, parent any) *Resource {
	return &Resource{
		resourcePath: "/" + strings.Trim(resourcePath, "/"),
		resourceType: resourceType,
		Rest:         rest,
		mu:           NewKeyLocker(),
		resourceOps:  resourceOps,
		parent:       parent,
	}
}

// WithMinVersion declares the oldest backend version serving this resource.
// Requests fail fast when AdminConfig.ServerVersion is older.
func (e *Resource) WithMinVersion(minVersion string) *Resource {
	e.minVersion = version.Must(parseVersion(minVersion))
	return e
}

// Session returns the session of the owning client.
func (e *Resource) Session() RESTSession {
	return e.Rest.GetSession()
}

func (e *Resource) GetResourceType() string {
	return e.resourceType
}

func (e *Resource) GetResourcePath() string {
	return e.resourcePath
}

// Ops returns the operations this resource supports.
func (e *Resource) Ops() ResourceOps {
	return e.resourceOps
}

// self returns the embedding resource when available.
func (e *Resource) self() InterceptableResourceAPI {
	if p, ok := e.parent.(InterceptableResourceAPI); ok {
		return p
	}
	return e
}

// CallerContext attaches this resource to ctx, for requests issued through
// DirectFetch or FetchInto on its behalf. A nil ctx falls back to the client context.
func (e *Resource) CallerContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = e.ctx()
	}
	return WithCaller(ctx, e.self())
}

func (e *Resource) ctx() context.Context {
	if e.Rest != nil {
		if ctx := e.Rest.GetCtx(); ctx != nil {
			return ctx
		}
	}
	return context.Background()
}

// Check verifies the operation is enabled and the backend is recent enough.
func (e *Resource) Check(op ResourceOps) error {
	if !e.resourceOps.has(op) {
		return &UnsupportedOperationError{
			Resource:  e.resourceType,
			Operation: op,
			Hints:     e.describeResourceFrom(e.parent),
		}
	}
	return checkResourceVersionCompat(e)
}

// ListWithContext retrieves all records matching params, following pagination.
func (e *Resource) ListWithContext(ctx context.Context, params Params) (RecordSet, error) {
	if err := e.Check(L); err != nil {
		return nil, err
	}
	iter := e.GetIteratorWithContext(ctx, params, 0)
	return iter.All()
}

// CreateWithContext creates a new record (POST).
func (e *Resource) CreateWithContext(ctx context.Context, body Params) (Record, error) {
	if err := e.Check(C); err != nil {
		return nil, err
	}
	return Request[Record](ctx, e.self(), VerbPost, e.resourcePath, nil, body)
}

// UpdateWithContext partially updates a record by id (PATCH).
func (e *Resource) UpdateWithContext(ctx context.Context, id any, body Params) (Record, error) {
	if err := e.Check(U); err != nil {
		return nil, err
	}
	path, err := BuildResourcePathWithID(e.resourcePath, id)
	if err != nil {
		return nil, err
	}
	return Request[Record](ctx, e.self(), VerbPatch, path, nil, body)
}

// ReplaceWithContext replaces a record by id (PUT).
func (e *Resource) ReplaceWithContext(ctx context.Context, id any, body Params) (Record, error) {
	if err := e.Check(U); err != nil {
		return nil, err
	}
	path, err := BuildResourcePathWithID(e.resourcePath, id)
	if err != nil {
		return nil, err
	}
	return Request[Record](ctx, e.self(), VerbPut, path, nil, body)
}

// DeleteWithContext deletes the single record matching searchParams.
// A missing record is not an error.
func (e *Resource) DeleteWithContext(ctx context.Context, searchParams Params) (Record, error) {
	result, err := e.GetWithContext(ctx, searchParams)
	if err != nil {
		if IsNotFoundErr(err) {
			return Record{}, nil
		}
		return nil, err
	}
	idVal, ok := result["id"]
	if !ok {
		return nil, fmt.Errorf(
			"resource '%s' does not have id field in body"+
				" and thereby cannot be deleted by id", e.GetResourceType(),
		)
	}
	return e.DeleteByIdWithContext(ctx, idVal)
}

// DeleteByIdWithContext deletes a record by id.
func (e *Resource) DeleteByIdWithContext(ctx context.Context, id any) (Record, error) {
	if err := e.Check(D); err != nil {
		return nil, err
	}
	path, err := BuildResourcePathWithID(e.resourcePath, id)
	if err != nil {
		return nil, err
	}
	return Request[Record](ctx, e.self(), VerbDelete, path, nil, nil)
}

// EnsureWithContext returns the record matching searchParams, creating it from body when absent.
func (e *Resource) EnsureWithContext(ctx context.Context, searchParams Params, body Params) (Record, error) {
	result, err := e.GetWithContext(ctx, searchParams)
	if IsNotFoundErr(err) {
		return e.CreateWithContext(ctx, body)
	} else if err != nil {
		return nil, err
	}
	return result, nil
}

// GetWithContext returns the single record matching params.
// Zero matches yield NotFoundError, several yield TooManyRecordsError.
func (e *Resource) GetWithContext(ctx context.Context, params Params) (Record, error) {
	result, err := e.ListWithContext(ctx, params)
	if err != nil {
		return nil, err
	}
	switch len(result) {
	case 0:
		return nil, &NotFoundError{
			Resource: e.resourcePath,
			Query:    params.ToQuery(),
		}
	case 1:
		if result[0].Empty() {
			return nil, &NotFoundError{
				Resource: e.resourcePath,
				Query:    params.ToQuery(),
			}
		}
		return result[0], nil
	default:
		return nil, &TooManyRecordsError{
			ResourcePath: e.resourcePath,
			Params:       params,
		}
	}
}

// GetByIdWithContext fetches one record by id. Ids may be numeric or strings.
func (e *Resource) GetByIdWithContext(ctx context.Context, id any) (Record, error) {
	if err := e.Check(R); err != nil {
		return nil, err
	}
	path, err := BuildResourcePathWithID(e.resourcePath, id)
	if err != nil {
		return nil, err
	}
	return Request[Record](ctx, e.self(), VerbGet, path, nil, nil)
}

// ExistsWithContext reports whether any record matches params.
func (e *Resource) ExistsWithContext(ctx context.Context, params Params) (bool, error) {
	if _, err := e.GetWithContext(ctx, params); err != nil && !IsTooManyRecordsErr(err) {
		if !IsNotFoundErr(err) {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// MustExistsWithContext is ExistsWithContext that panics on unexpected errors.
func (e *Resource) MustExistsWithContext(ctx context.Context, params Params) bool {
	return must(e.ExistsWithContext(ctx, params))
}

func (e *Resource) List(params Params) (RecordSet, error) {
	return e.ListWithContext(e.ctx(), params)
}

func (e *Resource) Create(params Params) (Record, error) {
	return e.CreateWithContext(e.ctx(), params)
}

func (e *Resource) Update(id any, params Params) (Record, error) {
	return e.UpdateWithContext(e.ctx(), id, params)
}

func (e *Resource) Replace(id any, params Params) (Record, error) {
	return e.ReplaceWithContext(e.ctx(), id, params)
}

func (e *Resource) Delete(searchParams Params) (Record, error) {
	return e.DeleteWithContext(e.ctx(), searchParams)
}

func (e *Resource) DeleteById(id any) (Record, error) {
	return e.DeleteByIdWithContext(e.ctx(), id)
}

func (e *Resource) Ensure(searchParams, body Params) (Record, error) {
	return e.EnsureWithContext(e.ctx(), searchParams, body)
}

func (e *Resource) Get(params Params) (Record, error) {
	return e.GetWithContext(e.ctx(), params)
}

func (e *Resource) GetById(id any) (Record, error) {
	return e.GetByIdWithContext(e.ctx(), id)
}

func (e *Resource) Exists(params Params) (bool, error) {
	return e.ExistsWithContext(e.ctx(), params)
}

func (e *Resource) MustExists(params Params) bool {
	return e.MustExistsWithContext(e.ctx(), params)
}

// GetIteratorWithContext creates a page iterator over the resource path.
// pageSize <= 0 uses AdminConfig.PageLimit.
//
//	iter := articles.GetIteratorWithContext(ctx, core.Params{"type": "news"}, 20)
//	for iter.HasNext() {
//	    page, err := iter.Next()
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(len(page))
//	}
func (e *Resource) GetIteratorWithContext(ctx context.Context, params Params, pageSize int) Iterator {
	return NewResourceIterator(ctx, e.self(), params, pageSize)
}

func (e *Resource) GetIterator(params Params, pageSize int) Iterator {
	return e.GetIteratorWithContext(e.ctx(), params, pageSize)
}

// Lock acquires the per-key mutex and returns its release function:
//
//	defer resource.Lock(id)()
func (e *Resource) Lock(keys ...any) func() {
	return e.mu.Lock(keys...)
}

func (e *Resource) String() string {
	target := e.parent
	if target == nil {
		target = e
	}
	return e.describeResourceFrom(target)
}

// describeResourceFrom lists the operations the resource supports, plus the
// exported methods the embedding type adds on top of the base CRUD set.
func (e *Resource) describeResourceFrom(parentResource any) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("| %s (%s)\n", e.resourceType, e.resourcePath))
	if e.minVersion != nil {
		sb.WriteString(fmt.Sprintf("| available from backend version %s\n", e.minVersion))
	}
	sb.WriteString("| supported hints:\n")
	if e.resourceOps == 0 {
		sb.WriteString("|    [-]\n")
	}
	if e.resourceOps.isListable() {
		sb.WriteString("|    [LIST]\n")
		sb.WriteString("|      - List / ListWithContext\n")
		sb.WriteString("|      - Get / GetWithContext\n")
		sb.WriteString("|      - Exists / ExistsWithContext\n")
	}
	if e.resourceOps.isReadable() {
		sb.WriteString("|    [DETAILS]\n")
		sb.WriteString("|      - GetById / GetByIdWithContext\n")
	}
	if e.resourceOps.isCreatable() {
		sb.WriteString("|    [CREATE]\n")
		sb.WriteString("|      - Create / CreateWithContext\n")
		if e.resourceOps.isListable() {
			sb.WriteString("|      - Ensure / EnsureWithContext\n")
		}
	}
	if e.resourceOps.isUpdatable() {
		sb.WriteString("|    [UPDATE]\n")
		sb.WriteString("|      - Update / UpdateWithContext\n")
		sb.WriteString("|      - Replace / ReplaceWithContext\n")
	}
	if e.resourceOps.isDeletable() {
		sb.WriteString("|    [DELETE]\n")
		sb.WriteString("|      - Delete / DeleteWithContext\n")
		sb.WriteString("|      - DeleteById / DeleteByIdWithContext\n")
	}
	if extra := discoverExtraMethods(parentResource); len(extra) > 0 {
		sb.WriteString("| extra methods:\n")
		for _, name := range extra {
			sb.WriteString(fmt.Sprintf("|    - %s\n", name))
		}
	}
	return sb.String()
}

// discoverExtraMethods returns exported methods of resource that *Resource
// does not define, skipping the WithContext twins.
func discoverExtraMethods(resource any) []string {
	if resource == nil {
		return nil
	}
	if _, isBase := resource.(*Resource); isBase {
		return nil
	}
	base := reflect.TypeOf(&Resource{})
	typ := reflect.TypeOf(resource)
	var names []string
	for i := 0; i < typ.NumMethod(); i++ {
		name := typ.Method(i).Name
		if _, inherited := base.MethodByName(name); inherited {
			continue
		}
		if strings.HasSuffix(name, "WithContext") {
			continue
		}
		names = append(names, name)
	}
	return names
}

//  ######################################################
//              VERSION GATE
//  ######################################################

// parseVersion parses a backend version, ignoring segments past x.y.z.
func parseVersion(raw string) (*version.Version, error) {
	sanitized, _ := sanitizeVersion(strings.TrimPrefix(strings.TrimSpace(raw), "v"))
	return version.NewVersion(sanitized)
}

// sanitizeVersion truncates segments above core (x.y.z).
func sanitizeVersion(v string) (string, bool) {
	segments := strings.Split(v, ".")
	if len(segments) <= 3 {
		return v, false
	}
	return strings.Join(segments[:3], "."), true
}

// checkResourceVersionCompat fails when the configured backend version is
// older than the resource's minimum version.
func checkResourceVersionCompat(e *Resource) error {
	if e.minVersion == nil || e.Rest == nil {
		return nil
	}
	session := e.Session()
	if session == nil || session.GetConfig().ServerVersion == "" {
		return nil
	}
	serverVersion, err := parseVersion(session.GetConfig().ServerVersion)
	if err != nil {
		return err
	}
	if serverVersion.LessThan(e.minVersion) {
		return fmt.Errorf(
			"resource %q is not supported by backend version %s (supported from version %s)",
			e.resourceType, serverVersion, e.minVersion,
		)
	}
	return nil
}

//  ######################################################
//              CRUD FLAGS
//  ######################################################

// ResourceOps is a bitmask of the operations a resource supports.
type ResourceOps int

const (
	C ResourceOps = 1 << iota // Create permission
	L                         // Read (List) permissions
	R                         // Read (<entry>/<id>) permission
	U                         // Update permission
	D                         // Delete permission
)

// NewResourceOps creates a new bitmask from the provided flags.
// Example: NewResourceOps(R, U) -> Read+Update.
func NewResourceOps(flags ...ResourceOps) ResourceOps {
	var f ResourceOps
	for _, fl := range flags {
		f |= fl
	}
	return f
}

// has reports whether all given flags are present in the bitmask.
func (ops ResourceOps) has(flag ResourceOps) bool {
	return ops&flag == flag
}

func (ops ResourceOps) isCreatable() bool { return ops&C != 0 }
func (ops ResourceOps) isListable() bool  { return ops&L != 0 }
func (ops ResourceOps) isReadable() bool  { return ops&R != 0 }
func (ops ResourceOps) isUpdatable() bool { return ops&U != 0 }
func (ops ResourceOps) isDeletable() bool { return ops&D != 0 }

// String returns the active flags, e.g. "CLRU", or "-" if none are set.
func (ops ResourceOps) String() string {
	if ops == ResourceOps(0) {
		return "-"
	}
	var b strings.Builder
	for _, flag := range []struct {
		op ResourceOps
		ch byte
	}{{C, 'C'}, {L, 'L'}, {R, 'R'}, {U, 'U'}, {D, 'D'}} {
		if ops&flag.op != 0 {
			b.WriteByte(flag.ch)
		}
	}
	return b.String()
}

// GetCRUDHintsFromResource extracts the ResourceOps of a resource or of a
// struct embedding *Resource.
func GetCRUDHintsFromResource(resource any) ResourceOps {
	type opsProvider interface{ Ops() ResourceOps }
	if p, ok := resource.(opsProvider); ok {
		return p.Ops()
	}
	return ResourceOps(0)
}
