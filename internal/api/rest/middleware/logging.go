package middleware

import (
	"net/http"
	"time"

	"github.com/dtroode/userdesk-server/internal/logger"
)

// Logging writes one line per request.
func Logging(log *logger.Logger, adapter string) func(http.Handler) http.Handler {
	log = log.With("adapter", adapter)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := record(w)

			defer func() {
				status := rec.Status()
				v := recover()
				if v != nil {
					status = http.StatusInternalServerError
				}

				log.Info("http request completed",
					"method", r.Method,
					"path", r.URL.EscapedPath(),
					"status", status,
					"duration_ms", time.Since(start).Milliseconds())

				if v != nil {
					panic(v)
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
