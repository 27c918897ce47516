package middleware

import (
	"net/http"

	"github.com/dtroode/userdesk-server/internal/api/resource"
	"github.com/dtroode/userdesk-server/internal/api/rest/render"
	"github.com/dtroode/userdesk-server/internal/auth"
	"github.com/dtroode/userdesk-server/internal/logger"
	"github.com/dtroode/userdesk-server/internal/model"
)

// Authenticate validates bearer tokens and injects the caller into the context.
type Authenticate struct {
	authenticator  *auth.Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authenticator *auth.Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		authenticator:  authenticator,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, err := m.authenticator.Authenticate(r.Header.Get("Authorization"))
		if err != nil {
			m.logger.Debug("request rejected", "path", r.URL.EscapedPath(), "error", err.Error())
			render.WriteResult(w, resource.Unauthorized())
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetCallerToContext(r.Context(), subject)))
	})
}
