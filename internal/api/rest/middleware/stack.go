package middleware

import (
	"net/http"

	"github.com/dtroode/userdesk-server/internal/logger"
	"github.com/dtroode/userdesk-server/internal/metrics"
)

// Options selects the shared middleware. Nil Metrics or Authenticate
// leave that layer out.
type Options struct {
	Logger       *logger.Logger
	Metrics      *metrics.Metrics
	Authenticate *Authenticate
}

// Wrap applies the shared middleware around h, outermost first:
// CORS, Recover, Logging, Metrics, Authenticate.
func Wrap(adapter string, opts Options, h http.Handler) http.Handler {
	if opts.Authenticate != nil {
		h = opts.Authenticate.Handle(h)
	}
	if opts.Metrics != nil {
		h = Metrics(opts.Metrics, adapter)(h)
	}
	h = Logging(opts.Logger, adapter)(h)
	h = Recover(opts.Logger)(h)

	return CORS(h)
}
