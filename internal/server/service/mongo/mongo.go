package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/nickzhog/storage-bench/internal/server/service"
	"github.com/nickzhog/storage-bench/pkg/history"
	"github.com/nickzhog/storage-bench/pkg/logging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	Name = "mongodb"

	depthCollection    = "depth_history"
	runePoolCollection = "rune_pool_history"
)

var (
	_ service.Storage = (*repository)(nil)
	_ service.Reader  = (*repository)(nil)
)

type repository struct {
	client   *mongo.Client
	depth    *mongo.Collection
	runePool *mongo.Collection
	logger   *logging.Logger
}

type Config struct {
	URI      string
	Database string
}

func New(ctx context.Context, cfg Config, logger *logging.Logger) (*repository, error) {
	if cfg.URI == "" {
		return nil, service.ConnectionError(Name, errors.New("empty MONGO_DATABASE_URL"))
	}
	if cfg.Database == "" {
		cfg.Database = "database_metrics"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, service.ConnectionError(Name, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		client.Disconnect(ctx)
		return nil, service.ConnectionError(Name, err)
	}

	db := client.Database(cfg.Database)
	logger.Tracef("%s connected, database %s", Name, cfg.Database)

	return &repository{
		client:   client,
		depth:    db.Collection(depthCollection),
		runePool: db.Collection(runePoolCollection),
		logger:   logger,
	}, nil
}

func (r *repository) Name() string {
	return Name
}

func (r *repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

func (r *repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *repository) InsertDepth(ctx context.Context, d history.DepthRecord) error {
	if _, err := r.depth.InsertOne(ctx, d); err != nil {
		r.logger.Trace(err)
		return service.InsertionError(Name, "insert "+history.KindDepth, err)
	}
	return nil
}

func (r *repository) InsertRunePool(ctx context.Context, p history.RunePoolRecord) error {
	if _, err := r.runePool.InsertOne(ctx, p); err != nil {
		r.logger.Trace(err)
		return service.InsertionError(Name, "insert "+history.KindRunePool, err)
	}
	return nil
}

func (r *repository) ReadAllDepth(ctx context.Context) ([]history.DepthRecord, error) {
	records := make([]history.DepthRecord, 0)
	if err := findAll(ctx, r.depth, &records); err != nil {
		r.logger.Errorf("depth history find err:%s", err.Error())
		return nil, service.ReadError(Name, "read "+history.KindDepth, err)
	}
	return records, nil
}

func (r *repository) ReadAllRunePool(ctx context.Context) ([]history.RunePoolRecord, error) {
	records := make([]history.RunePoolRecord, 0)
	if err := findAll(ctx, r.runePool, &records); err != nil {
		r.logger.Errorf("rune pool history find err:%s", err.Error())
		return nil, service.ReadError(Name, "read "+history.KindRunePool, err)
	}
	return records, nil
}

func findAll(ctx context.Context, coll *mongo.Collection, dst interface{}) error {
	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return err
	}
	return cursor.All(ctx, dst)
}
