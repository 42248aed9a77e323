// Package formjourney drives multi-page, conditionally branching form
// journeys. A journey is described declaratively (pages, components, named
// conditions, repeating sections) and the engine decides per request which
// page to serve, whether submitted answers are valid, where the journey goes
// next and how repeating list items are added, edited and deleted.
//
// The engine is a library with no executable surface: a host routes requests
// into it, persists sessions through a sessionstore.Store and renders pages
// through a render.Renderer. See pkg/httpadapter for a ready-made net/http
// host layer.
package formjourney
