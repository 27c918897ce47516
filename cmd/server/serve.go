package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/reflection"

	grpcmiddleware "github.com/dtroode/userdesk-server/internal/api/grpc/middleware"
	grpcrouter "github.com/dtroode/userdesk-server/internal/api/grpc/router"
	grpcserver "github.com/dtroode/userdesk-server/internal/api/grpc/server"
	"github.com/dtroode/userdesk-server/internal/api/resource"
	"github.com/dtroode/userdesk-server/internal/api/rest"
	"github.com/dtroode/userdesk-server/internal/api/rest/middleware"
	httpserver "github.com/dtroode/userdesk-server/internal/api/rest/server"
	"github.com/dtroode/userdesk-server/internal/auth"
	"github.com/dtroode/userdesk-server/internal/config"
	"github.com/dtroode/userdesk-server/internal/gateway"
	"github.com/dtroode/userdesk-server/internal/logger"
	"github.com/dtroode/userdesk-server/internal/metrics"
	"github.com/dtroode/userdesk-server/internal/model"
	"github.com/dtroode/userdesk-server/internal/server"
	"github.com/dtroode/userdesk-server/internal/service"
	"github.com/dtroode/userdesk-server/internal/token"
)

const shutdownTimeout = 10 * time.Second

// listener pairs a server with the layer it listens through.
type listener struct {
	srv model.Server
	sl  model.SecurityLayer
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start every enabled listener",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
			defer stop()

			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			log := logger.New(cfg.LogLevel, cfg.LogFormat)

			logAppVersion()

			return serve(ctx, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	open, err := gateway.Open(cfg)
	if err != nil {
		return err
	}

	gw := gateway.New(open)
	if err := gw.Connect(ctx); err != nil {
		log.Fatal("failed to connect to store", "driver", cfg.Store.Driver, "error", err)
	}
	defer func() {
		if err := gw.Close(); err != nil {
			log.Error("failed to close store", "error", err)
		}
	}()
	log.Info("store connected", "driver", cfg.Store.Driver, "collection", cfg.Store.Collection)

	userService := service.NewUser(gw, log, cfg.Store.Timeout)
	users := resource.NewUsers(userService, log)

	m, err := metrics.New()
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	opts := middleware.Options{Logger: log, Metrics: m}
	var grpcAuth *grpcmiddleware.Authenticate
	if cfg.Auth.Required {
		authenticator := auth.NewAuthenticator(token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL))
		manager := auth.NewManager()
		opts.Authenticate = middleware.NewAuthenticate(authenticator, manager, log)
		grpcAuth = grpcmiddleware.NewAuthenticate(authenticator, manager, log)
	}

	secure := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	routed, manual := rest.NewAdapters(users, cfg.HTTP.MaxBodyBytes, opts)

	var listeners []listener
	if config.Enabled(cfg.HTTP.RouterAddr) {
		listeners = append(listeners, listener{
			srv: httpserver.NewHTTPServer(cfg.HTTP.RouterAddr, routed.Handler(), cfg.HTTP.ReadHeaderTimeout),
			sl:  secure,
		})
	}
	if config.Enabled(cfg.HTTP.RawAddr) {
		listeners = append(listeners, listener{
			srv: httpserver.NewHTTPServer(cfg.HTTP.RawAddr, manual.Handler(), cfg.HTTP.ReadHeaderTimeout),
			sl:  secure,
		})
	}
	if config.Enabled(cfg.GRPC.Addr) {
		s := grpcrouter.New(users, grpcAuth, log).Register()
		reflection.Register(s)
		listeners = append(listeners, listener{
			srv: grpcserver.NewGRPCServer(s, cfg.GRPC.Addr),
			sl:  secure,
		})
	}
	if config.Enabled(cfg.Ops.Addr) {
		listeners = append(listeners, listener{
			srv: httpserver.NewHTTPServer(cfg.Ops.Addr, metrics.NewOpsHandler(m, userService), cfg.HTTP.ReadHeaderTimeout),
			sl:  server.NewPlainListener(),
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, l := range listeners {
		l := l
		g.Go(func() error {
			log.Info("starting server", "address", l.srv.Address())
			if err := l.srv.Start(l.sl); err != nil {
				return fmt.Errorf("server on %s: %w", l.srv.Address(), err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, l := range listeners {
			if err := l.srv.Stop(shutdownCtx); err != nil {
				log.Error("error during server shutdown", "error", err, "address", l.srv.Address())
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	err = g.Wait()
	log.Info("shutdown complete")

	return err
}
