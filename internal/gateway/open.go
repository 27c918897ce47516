package gateway

import (
	"context"
	"fmt"

	"github.com/dtroode/userdesk-server/internal/config"
	"github.com/dtroode/userdesk-server/internal/model"
	"github.com/dtroode/userdesk-server/internal/repository/memory"
	"github.com/dtroode/userdesk-server/internal/repository/mongo"
	"github.com/dtroode/userdesk-server/internal/repository/postgres"
	"github.com/dtroode/userdesk-server/internal/repository/redis"
	"github.com/dtroode/userdesk-server/internal/storage/minio"
)

// Open returns the opener for the driver selected in cfg.
func Open(cfg *config.Config) (Opener, error) {
	collection := cfg.Store.Collection

	switch cfg.Store.Driver {
	case config.DriverMongo:
		return func(ctx context.Context) (model.UserStore, error) {
			return mongo.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, collection)
		}, nil

	case config.DriverPostgres:
		return func(ctx context.Context) (model.UserStore, error) {
			conn, err := postgres.NewConnection(ctx, cfg.Database.DSN)
			if err != nil {
				return nil, err
			}
			return postgres.NewUserRepository(conn), nil
		}, nil

	case config.DriverRedis:
		return func(ctx context.Context) (model.UserStore, error) {
			return redis.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, collection)
		}, nil

	case config.DriverMinio:
		return func(ctx context.Context) (model.UserStore, error) {
			client, err := minio.Dial(ctx, cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.Bucket, cfg.Storage.UseSSL)
			if err != nil {
				return nil, err
			}
			return minio.NewUserRepository(client, collection), nil
		}, nil

	case config.DriverMemory:
		return func(context.Context) (model.UserStore, error) {
			return memory.NewUserRepository(), nil
		}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
