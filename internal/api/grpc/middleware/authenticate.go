package middleware

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/userdesk-server/internal/api/resource"
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
	return &Authenticate{authenticator: authenticator, contextManager: contextManager, logger: logger}
}

// AuthFunc reads the authorization metadata and returns a context carrying the caller.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get("authorization"); len(values) > 0 {
			header = values[0]
		}
	}

	subject, err := m.authenticator.Authenticate(header)
	if err != nil {
		m.logger.Debug("gRPC call rejected", "error", err.Error())
		return nil, status.Error(codes.Unauthenticated, resource.MsgUnauthorized)
	}

	return m.contextManager.SetCallerToContext(ctx, subject), nil
}
