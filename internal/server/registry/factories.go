package registry

import (
	"context"

	"github.com/nickzhog/storage-bench/internal/server/config"
	"github.com/nickzhog/storage-bench/internal/server/service"
	"github.com/nickzhog/storage-bench/internal/server/service/cache"
	"github.com/nickzhog/storage-bench/internal/server/service/db"
	"github.com/nickzhog/storage-bench/internal/server/service/kv/leveldb"
	"github.com/nickzhog/storage-bench/internal/server/service/kv/pebble"
	"github.com/nickzhog/storage-bench/internal/server/service/mongo"
	"github.com/nickzhog/storage-bench/internal/server/service/surreal"
	"github.com/nickzhog/storage-bench/pkg/logging"
)

// Factories - таблица имя -> конструктор для всех известных хранилищ.
func Factories(cfg *config.Config, logger *logging.Logger) map[string]Factory {
	s := cfg.Settings

	return map[string]Factory{
		mongo.Name: func(ctx context.Context) (service.Storage, error) {
			return mongo.New(ctx, mongo.Config{
				URI:      s.MongoURL,
				Database: s.MongoDatabase,
			}, logger.GetLoggerWithField("backend", mongo.Name))
		},
		db.Name: func(ctx context.Context) (service.Storage, error) {
			return db.New(ctx, db.Config{
				DSN:             s.PostgresURL,
				MaxConns:        int32(s.PostgresMaxConns),
				ConnectAttempts: s.PostgresConnectAttempts,
			}, logger.GetLoggerWithField("backend", db.Name))
		},
		surreal.Name: func(ctx context.Context) (service.Storage, error) {
			return surreal.New(ctx, surreal.Config{
				URL:       s.SurrealURL,
				User:      s.SurrealUser,
				Pass:      s.SurrealPass,
				Namespace: s.SurrealNamespace,
				Database:  s.SurrealDatabase,
			}, logger.GetLoggerWithField("backend", surreal.Name))
		},
		leveldb.Name: func(ctx context.Context) (service.Storage, error) {
			return leveldb.New(s.LevelDBPath, logger.GetLoggerWithField("backend", leveldb.Name))
		},
		pebble.Name: func(ctx context.Context) (service.Storage, error) {
			return pebble.New(s.PebblePath, logger.GetLoggerWithField("backend", pebble.Name))
		},
		cache.Name: func(ctx context.Context) (service.Storage, error) {
			return cache.NewMemStorage(), nil
		},
	}
}
