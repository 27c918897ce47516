// Package rest groups the HTTP bindings of the users resource.
package rest

import (
	"net/http"

	"github.com/dtroode/userdesk-server/internal/api/resource"
	"github.com/dtroode/userdesk-server/internal/api/rest/middleware"
	"github.com/dtroode/userdesk-server/internal/api/rest/raw"
	"github.com/dtroode/userdesk-server/internal/api/rest/router"
)

// Adapter is an HTTP binding of the users resource.
type Adapter interface {
	Name() string
	Handler() http.Handler
}

var (
	_ Adapter = (*router.Router)(nil)
	_ Adapter = (*raw.Handler)(nil)
)

// NewAdapters returns both bindings over the same resource.
func NewAdapters(users *resource.Users, maxBodyBytes int64, opts middleware.Options) (routed, manual Adapter) {
	return router.New(users, maxBodyBytes, opts), raw.New(users, maxBodyBytes, opts)
}
