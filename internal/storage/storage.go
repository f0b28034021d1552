// Package storage opens the store selected by configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/novaxiii/agency-backend/internal/config"
	"github.com/novaxiii/agency-backend/internal/database"
	"github.com/novaxiii/agency-backend/internal/logger"
	"github.com/novaxiii/agency-backend/internal/repository"
	"github.com/novaxiii/agency-backend/internal/repository/memory"
	"github.com/novaxiii/agency-backend/internal/repository/mongo"
	"github.com/novaxiii/agency-backend/internal/repository/postgres"
)

// Open connects to the configured backend and prepares its schema or indexes.
func Open(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.PostgresDSN())
		if err != nil {
			return repository.Store{}, err
		}
		if err := database.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return repository.Store{}, err
		}
		return postgres.New(pool), nil

	case config.DriverMongo:
		client, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return repository.Store{}, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := database.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return repository.Store{}, err
		}
		return mongo.New(client, db), nil

	case config.DriverMemory:
		logger.Warning("Using in-memory store, data is lost on restart")
		return memory.New(), nil

	default:
		return repository.Store{}, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
