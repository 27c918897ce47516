package middleware

import (
	"context"
	"runtime/debug"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/userdesk-server/internal/api/resource"
	"github.com/dtroode/userdesk-server/internal/logger"
)

// Recover returns an interceptor that turns a panic into codes.Internal.
func Recover(log *logger.Logger) grpc.UnaryServerInterceptor {
	return recovery.UnaryServerInterceptor(
		recovery.WithRecoveryHandlerContext(func(_ context.Context, p any) error {
			log.Error("gRPC handler panicked", "panic", p, "stack", string(debug.Stack()))
			return status.Error(codes.Internal, resource.MsgInternalServerErr)
		}),
	)
}
