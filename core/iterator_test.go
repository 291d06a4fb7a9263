package core

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedHandler serves total records split into pages of the requested limit.
func pagedHandler(t *testing.T, total int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		totalPages := (total + limit - 1) / limit
		items := []any{}
		for i := (page-1)*limit + 1; i <= page*limit && i <= total; i++ {
			items = append(items, map[string]any{"id": i})
		}
		writeJSON(t, w, http.StatusOK, okEnvelope(map[string]any{
			"items": items,
			"meta": map[string]any{
				"totalItems":   total,
				"itemCount":    len(items),
				"itemsPerPage": limit,
				"totalPages":   totalPages,
				"currentPage":  page,
			},
		}))
	}
}

func TestResourceIterator_Paginated(t *testing.T) {
	session, _ := newTestSession(t, pagedHandler(t, 5))
	resource := NewResource("/messages", "Message", newTestRest(session), NewResourceOps(L), nil)

	iter := resource.GetIterator(Params{"isRead": false}, 2)
	assert.True(t, iter.HasNext())
	assert.Equal(t, -1, iter.Count())
	assert.Equal(t, 2, iter.PageSize())

	first, err := iter.Next()
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 5, iter.Count())
	assert.Equal(t, "Message", first[0][ResourceTypeKey])
	assert.False(t, iter.HasPrevious())

	second, err := iter.Next()
	require.NoError(t, err)
	assert.Equal(t, float64(3), second[0]["id"])
	assert.True(t, iter.HasPrevious())

	back, err := iter.Previous()
	require.NoError(t, err)
	assert.Equal(t, first[0]["id"], back[0]["id"])

	all, err := iter.All()
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.False(t, iter.HasNext())

	next, err := iter.Next()
	require.NoError(t, err)
	assert.Empty(t, next)

	reset, err := iter.Reset()
	require.NoError(t, err)
	assert.Len(t, reset, 2)
}

func TestResourceIterator_ParamsOverridePageSize(t *testing.T) {
	var queries []string
	handler := pagedHandler(t, 3)
	session, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		handler(w, r)
	}, func(c *AdminConfig) { c.PageLimit = 7 })
	resource := NewResource("/articles", "Article", newTestRest(session), NewResourceOps(L), nil)

	iter := NewResourceIterator(context.Background(), resource, nil, 0)
	assert.Equal(t, 7, iter.PageSize())

	iter = NewResourceIterator(context.Background(), resource, Params{"limit": "1", "page": 2}, 0)
	assert.Equal(t, 1, iter.PageSize())
	records, err := iter.Next()
	require.NoError(t, err)
	assert.Equal(t, float64(2), records[0]["id"])
	assert.Equal(t, []string{"limit=1&page=2"}, queries)
}

func TestResourceIterator_SinglePage(t *testing.T) {
	tests := []struct {
		name     string
		payload  any
		expected int
	}{
		{name: "plain array", payload: okEnvelope([]any{map[string]any{"id": 1}, map[string]any{"id": 2}}), expected: 2},
		{name: "un-enveloped array", payload: []any{map[string]any{"id": 1}}, expected: 1},
		{name: "single object", payload: okEnvelope(map[string]any{"id": 1}), expected: 1},
		{name: "null data", payload: okEnvelope(nil), expected: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits int
			session, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
				hits++
				writeJSON(t, w, http.StatusOK, tt.payload)
			})
			resource := NewResource("/service/category", "ServiceCategory", newTestRest(session), NewResourceOps(L), nil)

			all, err := resource.List(nil)
			require.NoError(t, err)
			assert.Len(t, all, tt.expected)
			assert.Equal(t, 1, hits)
		})
	}
}

func TestEmptyPage(t *testing.T) {
	page := EmptyPage[int](0)
	assert.Equal(t, []int{}, page.Items)
	assert.Equal(t, DefaultPageLimit, page.Meta.ItemsPerPage)
	assert.Equal(t, 1, page.Meta.CurrentPage)

	assert.Equal(t, 25, EmptyPage[string](25).Meta.ItemsPerPage)
}
