package model

import "context"

// ContextManager stores and retrieves the authenticated caller.
type ContextManager interface {
	SetCallerToContext(ctx context.Context, subject string) context.Context
	GetCallerFromContext(ctx context.Context) (string, bool)
}
