package core

import (
	"context"
	"fmt"
	"strings"
)

// ######################################################
//              ITERATOR INTERFACES
// ######################################################

// Iterator walks page-numbered results. Backends answering with a plain array
// are exposed as a single page.
type Iterator interface {
	// Next advances to the next page and returns its records.
	// Returns an empty RecordSet when there are no more pages.
	Next() (RecordSet, error)

	// Previous moves to the previous page and returns its records.
	// Returns an empty RecordSet when there is no previous page.
	Previous() (RecordSet, error)

	HasNext() bool
	HasPrevious() bool

	// Count returns meta.totalItems, or -1 before the first page is fetched.
	Count() int

	PageSize() int

	// Reset rewinds to the first page and returns it.
	Reset() (RecordSet, error)

	// All fetches all remaining pages and returns them as one RecordSet.
	All() (RecordSet, error)
}

// PageMeta mirrors the "meta" block of paginated responses.
type PageMeta struct {
	TotalItems   int `json:"totalItems"`
	ItemCount    int `json:"itemCount"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
}

// PageLinks mirrors the "links" block of paginated responses.
type PageLinks struct {
	First    string `json:"first"`
	Previous string `json:"previous"`
	Next     string `json:"next"`
	Last     string `json:"last"`
}

// Page is a generic paginated payload: {items, meta, links}.
type Page[T any] struct {
	Items []T       `json:"items"`
	Meta  PageMeta  `json:"meta"`
	Links PageLinks `json:"links"`
}

// EmptyPage returns the page used when the backend sends no data:
// no items, itemsPerPage = limit, currentPage = 1.
func EmptyPage[T any](limit int) Page[T] {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	return Page[T]{
		Items: []T{},
		Meta:  PageMeta{ItemsPerPage: limit, CurrentPage: 1},
	}
}

// isPage reports whether record looks like a {items, meta} payload.
func isPage(record Record) bool {
	_, hasItems := record["items"]
	_, hasMeta := record["meta"]
	return hasItems && hasMeta
}

// pageItems splits a page record into its items and meta.
func pageItems(record Record) (RecordSet, PageMeta, error) {
	var meta PageMeta
	if rawMeta, ok := record["meta"].(map[string]any); ok {
		if err := ToRecord(rawMeta).Fill(&meta); err != nil {
			return nil, meta, fmt.Errorf("invalid page meta: %w", err)
		}
	}
	switch items := record["items"].(type) {
	case nil:
		return RecordSet{}, meta, nil
	case []any:
		rs, ok := anyToRenderable(items).(RecordSet)
		if !ok {
			return nil, meta, fmt.Errorf("unexpected type for items field: %T", items)
		}
		return rs, meta, nil
	case RecordSet:
		return items, meta, nil
	default:
		return nil, meta, fmt.Errorf("unexpected type for items field: %T", items)
	}
}

// ######################################################
//              RESOURCE ITERATOR IMPLEMENTATION
// ######################################################

// ResourceIterator pages through a resource using "page" and "limit" query parameters.
type ResourceIterator struct {
	resource     InterceptableResourceAPI
	ctx          context.Context
	initialQuery Params
	pageSize     int

	current     RecordSet
	currentPage int
	totalPages  int
	totalCount  int
	paginated   bool
	err         error
	initialized bool
}

// NewResourceIterator creates an iterator for resource. A pageSize <= 0 uses
// the configured PageLimit; an explicit "limit" in params wins over both.
func NewResourceIterator(ctx context.Context, resource InterceptableResourceAPI, params Params, pageSize int) Iterator {
	if pageSize <= 0 {
		pageSize = resource.Session().GetConfig().PageLimit
	}
	query := make(Params, len(params)+2)
	query.Update(params, true)
	if limit, ok := query["limit"]; ok {
		if n, err := toInt(limit); err == nil && n > 0 {
			pageSize = int(n)
		}
	}
	if pageSize <= 0 {
		pageSize = DefaultPageLimit
	}
	query["limit"] = pageSize
	startPage := 1
	if page, ok := query["page"]; ok {
		if n, err := toInt(page); err == nil && n > 0 {
			startPage = int(n)
		}
	}
	return &ResourceIterator{
		resource:     resource,
		ctx:          ctx,
		initialQuery: query,
		pageSize:     pageSize,
		currentPage:  startPage - 1,
		totalCount:   -1,
	}
}

// fetchPage requests one page and records its pagination state.
func (it *ResourceIterator) fetchPage(page int) error {
	query := make(Params, len(it.initialQuery))
	query.Update(it.initialQuery, true)
	query["page"] = page

	session := it.resource.Session()
	url, err := buildUrl(session, it.resource.GetResourcePath(), query.ToQuery())
	if err != nil {
		return err
	}
	response, err := session.Get(WithCaller(it.ctx, it.resource), url, nil, nil)
	if err != nil {
		return err
	}
	var record Record
	switch typed := response.(type) {
	case RecordSet:
		it.setSinglePage(typed)
		return nil
	case Record:
		record = typed
	default:
		return fmt.Errorf("unexpected response type: %T", response)
	}
	if !isPage(record) {
		if record.Empty() {
			it.setSinglePage(RecordSet{})
		} else {
			it.setSinglePage(RecordSet{record})
		}
		return nil
	}

	items, meta, err := pageItems(record)
	if err != nil {
		return err
	}
	if err = setResourceKey(items, it.resource.GetResourceType()); err != nil {
		return err
	}
	it.current = items
	it.paginated = true
	it.currentPage = page
	if meta.CurrentPage > 0 {
		it.currentPage = meta.CurrentPage
	}
	it.totalPages = meta.TotalPages
	it.totalCount = meta.TotalItems
	return nil
}

func (it *ResourceIterator) setSinglePage(records RecordSet) {
	it.current = records
	it.paginated = false
	it.currentPage = 1
	it.totalPages = 1
	it.totalCount = len(records)
}

// Next advances to the next page and returns the records and any error.
func (it *ResourceIterator) Next() (RecordSet, error) {
	if !it.initialized {
		it.initialized = true
		it.err = it.fetchPage(it.currentPage + 1)
		if it.err != nil {
			return RecordSet{}, it.err
		}
		return it.current, nil
	}
	if !it.HasNext() {
		return RecordSet{}, nil
	}
	it.err = it.fetchPage(it.currentPage + 1)
	if it.err != nil {
		return RecordSet{}, it.err
	}
	return it.current, nil
}

// Previous moves to the previous page and returns the records and any error.
func (it *ResourceIterator) Previous() (RecordSet, error) {
	if !it.initialized {
		it.err = fmt.Errorf("iterator not initialized, call Next() first")
		return RecordSet{}, it.err
	}
	if !it.HasPrevious() {
		return RecordSet{}, nil
	}
	it.err = it.fetchPage(it.currentPage - 1)
	if it.err != nil {
		return RecordSet{}, it.err
	}
	return it.current, nil
}

// HasNext returns true if there is a next page.
func (it *ResourceIterator) HasNext() bool {
	if !it.initialized {
		return true
	}
	return it.paginated && it.currentPage < it.totalPages
}

// HasPrevious returns true if there is a previous page.
func (it *ResourceIterator) HasPrevious() bool {
	return it.initialized && it.paginated && it.currentPage > 1
}

func (it *ResourceIterator) Count() int {
	return it.totalCount
}

func (it *ResourceIterator) PageSize() int {
	return it.pageSize
}

// CurrentPage returns the 1-based number of the last fetched page.
func (it *ResourceIterator) CurrentPage() int {
	return it.currentPage
}

func (it *ResourceIterator) String() string {
	var sb strings.Builder
	sb.WriteString("ResourceIterator {\n")
	sb.WriteString(fmt.Sprintf("  Resource:      %s\n", it.resource.GetResourceType()))
	sb.WriteString(fmt.Sprintf("  Initialized:   %v\n", it.initialized))
	sb.WriteString(fmt.Sprintf("  Current Page:  %d/%d\n", it.currentPage, it.totalPages))
	sb.WriteString(fmt.Sprintf("  Page Size:     %d\n", it.pageSize))
	sb.WriteString(fmt.Sprintf("  Total Count:   %d\n", it.totalCount))
	sb.WriteString(fmt.Sprintf("  Current:       [... (%d items)]\n", len(it.current)))
	if it.err != nil {
		sb.WriteString(fmt.Sprintf("  Error:         %v\n", it.err))
	}
	sb.WriteString("}")
	return sb.String()
}

// Reset rewinds the iterator to the first page and returns it.
func (it *ResourceIterator) Reset() (RecordSet, error) {
	it.initialized = false
	it.current = nil
	it.currentPage = 0
	it.totalPages = 0
	it.paginated = false
	it.err = nil
	it.totalCount = -1
	return it.Next()
}

// All fetches every remaining page, including the current one once initialized.
func (it *ResourceIterator) All() (RecordSet, error) {
	var allRecords RecordSet
	if !it.initialized {
		records, err := it.Next()
		if err != nil {
			return nil, err
		}
		allRecords = append(allRecords, records...)
	} else {
		allRecords = append(allRecords, it.current...)
	}
	for it.HasNext() {
		records, err := it.Next()
		if err != nil {
			return nil, err
		}
		allRecords = append(allRecords, records...)
	}
	if allRecords == nil {
		allRecords = RecordSet{}
	}
	return allRecords, nil
}
