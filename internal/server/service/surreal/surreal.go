package surreal

import (
	"context"
	"errors"

	"github.com/nickzhog/storage-bench/internal/server/service"
	"github.com/nickzhog/storage-bench/pkg/history"
	"github.com/nickzhog/storage-bench/pkg/logging"
	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

const (
	Name = "surrealdb"

	depthTable    = models.Table("depth_history")
	runePoolTable = models.Table("rune_pool_history")
)

var (
	_ service.Storage = (*repository)(nil)
	_ service.Reader  = (*repository)(nil)
)

type repository struct {
	db     *surrealdb.DB
	logger *logging.Logger
}

type Config struct {
	URL       string
	User      string
	Pass      string
	Namespace string
	Database  string
}

func (c Config) validate() error {
	switch {
	case c.URL == "":
		return errors.New("empty SURREAL_DATABASE_URL")
	case c.Namespace == "":
		return errors.New("empty SURREAL_NAMESPACE")
	case c.Database == "":
		return errors.New("empty SURREAL_DATABASE")
	case c.User == "" || c.Pass == "":
		return errors.New("empty SURREAL_USER or SURREAL_PASS, session must be authenticated")
	}
	return nil
}

// New открывает сессию, авторизуется и выбирает namespace/database.
func New(ctx context.Context, cfg Config, logger *logging.Logger) (*repository, error) {
	if err := cfg.validate(); err != nil {
		return nil, service.ConnectionError(Name, err)
	}

	db, err := surrealdb.New(cfg.URL)
	if err != nil {
		return nil, service.ConnectionError(Name, err)
	}

	if _, err = db.SignIn(&surrealdb.Auth{Username: cfg.User, Password: cfg.Pass}); err != nil {
		db.Close()
		return nil, service.ConnectionError(Name, err)
	}

	if err = db.Use(cfg.Namespace, cfg.Database); err != nil {
		db.Close()
		return nil, service.ConnectionError(Name, err)
	}

	logger.Tracef("%s connected, %s/%s", Name, cfg.Namespace, cfg.Database)

	return &repository{db: db, logger: logger}, nil
}

func (r *repository) Name() string {
	return Name
}

func (r *repository) Ping(ctx context.Context) error {
	_, err := surrealdb.Query[int](r.db, "RETURN 1;", nil)
	return err
}

func (r *repository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *repository) InsertDepth(ctx context.Context, d history.DepthRecord) error {
	if _, err := surrealdb.Create[depthRow](r.db, depthTable, toDepthRow(d)); err != nil {
		r.logger.Trace(err)
		return service.InsertionError(Name, "insert "+history.KindDepth, err)
	}
	return nil
}

func (r *repository) InsertRunePool(ctx context.Context, p history.RunePoolRecord) error {
	if _, err := surrealdb.Create[runePoolRow](r.db, runePoolTable, toRunePoolRow(p)); err != nil {
		r.logger.Trace(err)
		return service.InsertionError(Name, "insert "+history.KindRunePool, err)
	}
	return nil
}

func (r *repository) ReadAllDepth(ctx context.Context) ([]history.DepthRecord, error) {
	rows, err := surrealdb.Select[[]depthRow](r.db, depthTable)
	if err != nil {
		r.logger.Errorf("depth history select err:%s", err.Error())
		return nil, service.ReadError(Name, "read "+history.KindDepth, err)
	}

	records := make([]history.DepthRecord, 0)
	if rows != nil {
		for _, row := range *rows {
			records = append(records, row.record())
		}
	}
	return records, nil
}

func (r *repository) ReadAllRunePool(ctx context.Context) ([]history.RunePoolRecord, error) {
	rows, err := surrealdb.Select[[]runePoolRow](r.db, runePoolTable)
	if err != nil {
		r.logger.Errorf("rune pool history select err:%s", err.Error())
		return nil, service.ReadError(Name, "read "+history.KindRunePool, err)
	}

	records := make([]history.RunePoolRecord, 0)
	if rows != nil {
		for _, row := range *rows {
			records = append(records, row.record())
		}
	}
	return records, nil
}
