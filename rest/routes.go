package rest

import (
	"sort"
	"strings"

	"github.com/labsite/go-admin-client/core"
)

// Route is one method and path (relative to the API prefix) the client calls.
type Route struct {
	Method string
	Path   string
}

// extraRoutes lists the calls resources make beyond their CRUD flags.
var extraRoutes = map[string][]Route{
	"Article": {
		{"GET", "articles/published"},
		{"GET", "articles/type/{type}"},
		{"PATCH", "articles/{id}/toggle-publish"},
		{"POST", "articles/upload-cover"},
	},
	"Company": {
		{"GET", "company"},
		{"PUT", "company"},
	},
	"Instrument": {
		{"POST", "instrument/list"},
		{"POST", "instrument/save"},
		{"GET", "instrument/detail/{id}"},
		{"GET", "instrument/delete/{id}"},
		{"GET", "instrument/types"},
		{"POST", "instrument/type/save"},
		{"GET", "instrument/type/delete/{id}"},
	},
	"Message": {
		{"POST", "messages/list"},
		{"PATCH", "messages/{id}/read"},
	},
	"RentalNotice": {
		{"PUT", "rental/notices/bulk"},
	},
	"ServiceCategory": {
		{"GET", "service-categories/admin"},
		{"GET", "service-categories/{id}/services"},
	},
	"ServiceItem": {
		{"GET", "services/admin"},
	},
}

// customUpdate marks resources whose U flag guards a route that is not
// PATCH {path}/{id}.
var customUpdate = map[string]bool{
	"Company": true,
}

// Routes returns every route the registered resources call, sorted by path
// then method.
func (rest *UntypedAdminRest) Routes() []Route {
	seen := map[Route]bool{}
	var routes []Route
	add := func(r Route) {
		if !seen[r] {
			seen[r] = true
			routes = append(routes, r)
		}
	}
	for resourceType, resource := range rest.resourceMap {
		path := strings.TrimPrefix(resource.GetResourcePath(), "/")
		byId := path + "/{id}"
		ops := core.GetCRUDHintsFromResource(resource)
		if ops&core.C != 0 {
			add(Route{"POST", path})
		}
		if ops&core.L != 0 {
			add(Route{"GET", path})
		}
		if ops&core.R != 0 {
			add(Route{"GET", byId})
		}
		if ops&core.U != 0 && !customUpdate[resourceType] {
			add(Route{"PATCH", byId})
		}
		if ops&core.D != 0 {
			add(Route{"DELETE", byId})
		}
		for _, r := range extraRoutes[resourceType] {
			add(r)
		}
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})
	return routes
}
