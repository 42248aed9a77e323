package engine

import (
	"strings"

	"github.com/goliatone/go-formjourney/pkg/definition"
)

// pageAction identifies which operation of a page a path addresses.
type pageAction int

const (
	// actionPage is the page itself: render on GET, submit (or continue,
	// or confirm) on POST.
	actionPage pageAction = iota
	// actionAdd is the repeat sub-route collecting a new item.
	actionAdd
	// actionEdit is the repeat sub-route editing one item in place.
	actionEdit
	// actionDelete is the item-delete sub-route of repeat and upload
	// pages.
	actionDelete
)

type route struct {
	page   *definition.Page
	action pageAction
	itemID string
}

func buildRoutes(def *definition.Definition) []route {
	routes := make([]route, 0, len(def.Pages))
	for i := range def.Pages {
		routes = append(routes, route{page: &def.Pages[i], action: actionPage})
	}
	return routes
}

// match resolves a request path to a page and action. Sub-routes are only
// recognised for controller kinds that support them, so an item-delete
// request against a plain page falls through to not-found here.
func (e *Engine) match(path string) (route, bool) {
	path = cleanPath(path)

	for _, rt := range e.routes {
		if rt.page.Path == path {
			return rt, true
		}
	}

	// Longest page-path prefix wins so nested page paths stay unambiguous.
	var best *definition.Page
	for _, rt := range e.routes {
		page := rt.page
		if page.Controller != definition.ControllerRepeat && page.Controller != definition.ControllerUpload {
			continue
		}
		if !strings.HasPrefix(path, page.Path+"/") {
			continue
		}
		if best == nil || len(page.Path) > len(best.Path) {
			best = page
		}
	}
	if best == nil {
		return route{}, false
	}

	rest := strings.TrimPrefix(path, best.Path+"/")
	segments := strings.Split(rest, "/")
	switch {
	case len(segments) == 1 && segments[0] == "add" && best.Controller == definition.ControllerRepeat:
		return route{page: best, action: actionAdd}, true
	case len(segments) == 1 && segments[0] != "" && best.Controller == definition.ControllerRepeat:
		return route{page: best, action: actionEdit, itemID: segments[0]}, true
	case len(segments) == 2 && segments[1] == "delete" && segments[0] != "":
		return route{page: best, action: actionDelete, itemID: segments[0]}, true
	default:
		return route{}, false
	}
}

func cleanPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "/"
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	if len(trimmed) > 1 {
		trimmed = strings.TrimRight(trimmed, "/")
	}
	return trimmed
}
