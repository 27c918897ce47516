package middleware

import (
	"net/http"
	"strings"

	"github.com/dtroode/userdesk-server/internal/metrics"
)

// Route labels.
const (
	RouteCollection = "/api/users"
	RouteItem       = "/api/users/{storeID}"
	RouteUnmatched  = "unmatched"
)

// RouteLabel maps a request path to its route template so ids never become
// label values.
func RouteLabel(path string) string {
	path = strings.TrimSuffix(path, "/")
	if path == RouteCollection {
		return RouteCollection
	}

	rest, ok := strings.CutPrefix(path, RouteCollection+"/")
	if ok && rest != "" && !strings.Contains(rest, "/") {
		return RouteItem
	}

	return RouteUnmatched
}

// Metrics records request count and latency.
func Metrics(m *metrics.Metrics, adapter string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			done := m.Begin(adapter)
			rec := record(w)

			defer func() {
				status := rec.Status()
				v := recover()
				if v != nil {
					status = http.StatusInternalServerError
				}

				done(r.Method, RouteLabel(r.URL.EscapedPath()), status)

				if v != nil {
					panic(v)
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
