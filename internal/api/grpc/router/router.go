package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/userdesk-server/internal/api/grpc/handler"
	"github.com/dtroode/userdesk-server/internal/api/grpc/middleware"
	"github.com/dtroode/userdesk-server/internal/api/grpc/userdeskv1"
	"github.com/dtroode/userdesk-server/internal/api/resource"
	"github.com/dtroode/userdesk-server/internal/logger"
)

// Router represents the gRPC binding of the users resource.
type Router struct {
	users        *resource.Users
	authenticate *middleware.Authenticate
	logger       *logger.Logger
}

// New creates new gRPC Router instance. A nil authenticate serves every
// call without a token.
func New(users *resource.Users, authenticate *middleware.Authenticate, logger *logger.Logger) *Router {
	return &Router{
		users:        users,
		authenticate: authenticate,
		logger:       logger,
	}
}

// authMatch limits the token check to the users service so health probes
// stay open.
func authMatch(_ context.Context, c interceptors.CallMeta) bool {
	return strings.HasPrefix(c.FullMethod(), "/"+userdeskv1.ServiceName+"/")
}

// Register builds the gRPC server with the users and health services.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)

	unary := []grpc.UnaryServerInterceptor{
		middleware.Recover(r.logger),
		logging.HandleGRPC,
	}
	if r.authenticate != nil {
		unary = append(unary, selector.UnaryServerInterceptor(
			auth.UnaryServerInterceptor(r.authenticate.AuthFunc),
			selector.MatchFunc(authMatch),
		))
	}

	s := grpc.NewServer(grpc.ChainUnaryInterceptor(unary...))

	userdeskv1.RegisterUsersServer(s, handler.NewUsers(r.users, r.logger))

	hs := health.NewServer()
	hs.SetServingStatus(userdeskv1.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)

	return s
}
