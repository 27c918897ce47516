package auth

import (
	"context"
)

type callerKey struct{}

// Manager stores the authenticated caller in a request context.
// It is shared by the HTTP and gRPC bindings.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetCallerToContext returns a copy of ctx carrying subject.
func (m *Manager) SetCallerToContext(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, callerKey{}, subject)
}

// GetCallerFromContext returns the subject stored by SetCallerToContext.
func (m *Manager) GetCallerFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(callerKey{}).(string)
	if !ok || subject == "" {
		return "", false
	}
	return subject, true
}
