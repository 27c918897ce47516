// Package router binds the users resource to a chi mux.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dtroode/userdesk-server/internal/api/resource"
	"github.com/dtroode/userdesk-server/internal/api/rest/middleware"
	"github.com/dtroode/userdesk-server/internal/api/rest/render"
)

// Adapter is the label this binding reports in logs and metrics.
const Adapter = "router"

// Router represents the routed HTTP binding.
type Router struct {
	users        *resource.Users
	maxBodyBytes int64
	opts         middleware.Options
}

func New(users *resource.Users, maxBodyBytes int64, opts middleware.Options) *Router {
	return &Router{
		users:        users,
		maxBodyBytes: maxBodyBytes,
		opts:         opts,
	}
}

// Name returns the adapter label.
func (rt *Router) Name() string {
	return Adapter
}

// Handler builds the full handler with the shared middleware applied.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.StripSlashes)

	r.NotFound(rt.routeNotFound)
	r.MethodNotAllowed(rt.routeNotFound)

	r.Get("/api/users", rt.list)
	r.Post("/api/users", rt.create)
	r.Get("/api/users/{storeID}", rt.get)
	r.Put("/api/users/{storeID}", rt.update)
	r.Delete("/api/users/{storeID}", rt.delete)

	return middleware.Wrap(Adapter, rt.opts, r)
}

func (rt *Router) routeNotFound(w http.ResponseWriter, _ *http.Request) {
	render.WriteResult(w, resource.RouteNotFound())
}

func (rt *Router) list(w http.ResponseWriter, r *http.Request) {
	render.WriteResult(w, rt.users.List(r.Context()))
}

func (rt *Router) create(w http.ResponseWriter, r *http.Request) {
	body, err := render.ReadBody(r.Body, rt.maxBodyBytes)
	if err != nil {
		render.WriteResult(w, resource.Malformed())
		return
	}
	render.WriteResult(w, rt.users.Create(r.Context(), body))
}

func (rt *Router) get(w http.ResponseWriter, r *http.Request) {
	id, ok := storeID(r)
	if !ok {
		rt.routeNotFound(w, r)
		return
	}
	render.WriteResult(w, rt.users.Get(r.Context(), id))
}

func (rt *Router) update(w http.ResponseWriter, r *http.Request) {
	id, ok := storeID(r)
	if !ok {
		rt.routeNotFound(w, r)
		return
	}

	body, err := render.ReadBody(r.Body, rt.maxBodyBytes)
	if err != nil {
		render.WriteResult(w, resource.Malformed())
		return
	}
	render.WriteResult(w, rt.users.Update(r.Context(), id, body))
}

func (rt *Router) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := storeID(r)
	if !ok {
		rt.routeNotFound(w, r)
		return
	}
	render.WriteResult(w, rt.users.Delete(r.Context(), id))
}

// storeID returns the id segment as chi matched it. An empty segment
// is not a route.
func storeID(r *http.Request) (string, bool) {
	id := chi.URLParam(r, "storeID")
	return id, id != ""
}
