package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/dtroode/userdesk-server/internal/api/resource"
	"github.com/dtroode/userdesk-server/internal/api/rest/render"
	"github.com/dtroode/userdesk-server/internal/logger"
)

// Recover turns a panic into the internal error envelope. Nothing is
// written when the handler already started the response.
func Recover(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := record(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				log.Error("handler panicked",
					"method", r.Method,
					"path", r.URL.EscapedPath(),
					"panic", v,
					"stack", string(debug.Stack()))

				if rec.status == 0 {
					render.WriteResult(rec, resource.Internal())
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
