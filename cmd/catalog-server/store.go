// cmd/catalog-server/store.go
package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"franchise-catalog/internal/api"
	"franchise-catalog/internal/common/config"
	"franchise-catalog/internal/common/database"
	"franchise-catalog/internal/store"
)

// backend is the opened document store plus what main needs to probe and
// release it.
type backend struct {
	store     store.Store
	readiness map[string]api.Pinger
	close     func()
}

func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (*backend, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		s := store.NewMemoryStore()
		return &backend{
			store:     s,
			readiness: map[string]api.Pinger{"store": s},
			close:     func() {},
		}, nil

	case config.BackendRedis:
		var rdb *database.RedisClient
		err := retryWithBackoff(func() error {
			var err error
			rdb, err = database.ConnectRedis(ctx, cfg.Database.Redis)
			return err
		}, 10, 2*time.Second, log, "Redis connection")
		if err != nil {
			return nil, err
		}
		s := store.NewRedisStore(rdb.Client, cfg.Database.Redis.KeyPrefix)
		return &backend{
			store:     s,
			readiness: map[string]api.Pinger{"redis": s},
			close:     func() { _ = rdb.Close() },
		}, nil

	case config.BackendPostgres:
		var pg *database.PostgresClient
		err := retryWithBackoff(func() error {
			var err error
			pg, err = database.ConnectPostgres(ctx, cfg.Database.Postgres)
			return err
		}, 15, 2*time.Second, log, "PostgreSQL connection")
		if err != nil {
			return nil, err
		}
		s := store.NewPostgresStore(pg.DB)
		if err := s.EnsureSchema(ctx); err != nil {
			_ = pg.Close()
			return nil, fmt.Errorf("ensure postgres schema: %w", err)
		}
		return &backend{
			store:     s,
			readiness: map[string]api.Pinger{"postgres": s},
			close:     func() { _ = pg.Close() },
		}, nil

	case config.BackendElasticsearch:
		var es *database.ElasticsearchClient
		err := retryWithBackoff(func() error {
			var err error
			es, err = database.ConnectElasticsearch(ctx, cfg.Database.Elasticsearch)
			return err
		}, 15, 2*time.Second, log, "Elasticsearch connection")
		if err != nil {
			return nil, err
		}
		s := store.NewElasticsearchStore(es.Client, cfg.Database.Elasticsearch.Index)
		if err := s.EnsureIndex(ctx); err != nil {
			return nil, fmt.Errorf("ensure elasticsearch index: %w", err)
		}
		return &backend{
			store:     s,
			readiness: map[string]api.Pinger{"elasticsearch": s},
			close:     func() { _ = es.Close() },
		}, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
