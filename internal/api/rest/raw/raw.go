// Package raw binds the users resource to a hand-dispatched http.Handler.
// It answers exactly like the router binding.
package raw

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dtroode/userdesk-server/internal/api/resource"
	"github.com/dtroode/userdesk-server/internal/api/rest/middleware"
)

// Adapter is the label this binding reports in logs and metrics.
const Adapter = "raw"

const collectionPath = "/api/users"

// Handler dispatches on method and path without a routing library.
type Handler struct {
	users        *resource.Users
	maxBodyBytes int64
	opts         middleware.Options
}

func New(users *resource.Users, maxBodyBytes int64, opts middleware.Options) *Handler {
	return &Handler{
		users:        users,
		maxBodyBytes: maxBodyBytes,
		opts:         opts,
	}
}

// Name returns the adapter label.
func (h *Handler) Name() string {
	return Adapter
}

// Handler returns the dispatcher with the shared middleware applied.
func (h *Handler) Handler() http.Handler {
	return middleware.Wrap(Adapter, h.opts, http.HandlerFunc(h.serve))
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request) {
	ex := newExchange(w, r)
	ex.advance(dispatchedToHandler)

	path := routingPath(r.URL)

	if path == collectionPath {
		h.collection(ex)
		return
	}

	if id, ok := itemID(path); ok {
		h.item(ex, id)
		return
	}

	ex.respond(resource.RouteNotFound())
}

func (h *Handler) collection(ex *exchange) {
	ctx := ex.r.Context()

	switch ex.r.Method {
	case http.MethodGet:
		ex.advance(parsed)
		ex.respond(h.users.List(ctx))
	case http.MethodPost:
		if !ex.accumulate(h.maxBodyBytes) {
			return
		}
		ex.respond(h.users.Create(ctx, ex.body))
	default:
		ex.respond(resource.RouteNotFound())
	}
}

func (h *Handler) item(ex *exchange, id string) {
	ctx := ex.r.Context()

	switch ex.r.Method {
	case http.MethodGet:
		ex.advance(parsed)
		ex.respond(h.users.Get(ctx, id))
	case http.MethodPut:
		if !ex.accumulate(h.maxBodyBytes) {
			return
		}
		ex.respond(h.users.Update(ctx, id, ex.body))
	case http.MethodDelete:
		ex.advance(parsed)
		ex.respond(h.users.Delete(ctx, id))
	default:
		ex.respond(resource.RouteNotFound())
	}
}

// routingPath reproduces what the router binding matches on: chi's
// StripSlashes drops one trailing slash from the decoded path, otherwise
// chi prefers the raw path when the request carries one.
func routingPath(u *url.URL) string {
	if len(u.Path) > 1 && strings.HasSuffix(u.Path, "/") {
		return u.Path[:len(u.Path)-1]
	}

	if u.RawPath != "" {
		return u.RawPath
	}

	return u.Path
}

// itemID accepts exactly one non-empty segment after the collection.
func itemID(path string) (string, bool) {
	id, ok := strings.CutPrefix(path, collectionPath+"/")
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}
