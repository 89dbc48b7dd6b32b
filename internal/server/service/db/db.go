package db

import (
	"context"

	"github.com/nickzhog/storage-bench/internal/server/service"
	"github.com/nickzhog/storage-bench/pkg/history"
	"github.com/nickzhog/storage-bench/pkg/logging"
	"github.com/nickzhog/storage-bench/pkg/postgres"
)

const Name = "postgres"

var (
	_ service.Storage = (*repository)(nil)
	_ service.Reader  = (*repository)(nil)
)

type repository struct {
	client postgres.Client
	logger *logging.Logger
}

type Config struct {
	DSN             string
	MaxConns        int32
	ConnectAttempts int
}

// New подключается к базе и создает таблицы, если их еще нет.
func New(ctx context.Context, cfg Config, logger *logging.Logger) (*repository, error) {
	pool, err := postgres.NewClient(ctx, cfg.ConnectAttempts, cfg.DSN, cfg.MaxConns)
	if err != nil {
		return nil, service.ConnectionError(Name, err)
	}

	r := NewRepository(pool, logger)
	if err = r.CreateTables(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return r, nil
}

func NewRepository(client postgres.Client, logger *logging.Logger) *repository {
	return &repository{
		client: client,
		logger: logger,
	}
}

func (r *repository) Name() string {
	return Name
}

// CreateTables можно вызывать повторно, существующие таблицы не трогаются.
func (r *repository) CreateTables(ctx context.Context) error {
	q := `
	CREATE TABLE IF NOT EXISTS depth_history (
		start_time DOUBLE PRECISION NOT NULL,
		end_time DOUBLE PRECISION NOT NULL,
		asset_depth DOUBLE PRECISION NOT NULL,
		rune_depth DOUBLE PRECISION NOT NULL,
		asset_price DOUBLE PRECISION NOT NULL,
		asset_price_usd DOUBLE PRECISION NOT NULL,
		liquidity_units DOUBLE PRECISION NOT NULL,
		members_count DOUBLE PRECISION NOT NULL,
		synth_units DOUBLE PRECISION NOT NULL,
		synth_supply DOUBLE PRECISION NOT NULL,
		units DOUBLE PRECISION NOT NULL,
		luvi DOUBLE PRECISION NOT NULL
	);
	`
	if _, err := r.client.Exec(ctx, q); err != nil {
		return service.CreationError(Name, "create depth_history", err)
	}

	q = `
	CREATE TABLE IF NOT EXISTS rune_pool_history (
		start_time DOUBLE PRECISION NOT NULL,
		end_time DOUBLE PRECISION NOT NULL,
		count DOUBLE PRECISION NOT NULL,
		units DOUBLE PRECISION NOT NULL
	);
	`
	if _, err := r.client.Exec(ctx, q); err != nil {
		return service.CreationError(Name, "create rune_pool_history", err)
	}

	return nil
}

func (r *repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

func (r *repository) Close(ctx context.Context) error {
	r.client.Close()
	return nil
}

func (r *repository) InsertDepth(ctx context.Context, d history.DepthRecord) error {
	q := `
	INSERT
	INTO depth_history
		(start_time, end_time, asset_depth, rune_depth, asset_price, asset_price_usd,
		liquidity_units, members_count, synth_units, synth_supply, units, luvi)
	VALUES
		($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.client.Exec(ctx, q,
		d.StartTime, d.EndTime, d.AssetDepth, d.RuneDepth, d.AssetPrice, d.AssetPriceUSD,
		d.LiquidityUnits, d.MembersCount, d.SynthUnits, d.SynthSupply, d.Units, d.Luvi)
	if err != nil {
		r.logger.Trace(err)
		return service.InsertionError(Name, "insert "+history.KindDepth, err)
	}

	return nil
}

func (r *repository) InsertRunePool(ctx context.Context, p history.RunePoolRecord) error {
	q := `
	INSERT
	INTO rune_pool_history
		(start_time, end_time, count, units)
	VALUES
		($1, $2, $3, $4);
	`
	_, err := r.client.Exec(ctx, q, p.StartTime, p.EndTime, p.Count, p.Units)
	if err != nil {
		r.logger.Trace(err)
		return service.InsertionError(Name, "insert "+history.KindRunePool, err)
	}

	return nil
}

func (r *repository) ReadAllDepth(ctx context.Context) ([]history.DepthRecord, error) {
	op := "read " + history.KindDepth
	q := `
		SELECT
			start_time, end_time, asset_depth, rune_depth, asset_price, asset_price_usd,
			liquidity_units, members_count, synth_units, synth_supply, units, luvi
		FROM depth_history;
	`

	rows, err := r.client.Query(ctx, q)
	if err != nil {
		r.logger.Errorf("depth history find err:%s", err.Error())
		return nil, service.ReadError(Name, op, err)
	}
	defer rows.Close()

	records := make([]history.DepthRecord, 0)
	for rows.Next() {
		var d history.DepthRecord
		err = rows.Scan(&d.StartTime, &d.EndTime, &d.AssetDepth, &d.RuneDepth, &d.AssetPrice, &d.AssetPriceUSD,
			&d.LiquidityUnits, &d.MembersCount, &d.SynthUnits, &d.SynthSupply, &d.Units, &d.Luvi)
		if err != nil {
			r.logger.Errorf("depth history parse:%s", err.Error())
			return nil, service.ReadError(Name, op, err)
		}
		records = append(records, d)
	}
	if err = rows.Err(); err != nil {
		return nil, service.ReadError(Name, op, err)
	}

	return records, nil
}

func (r *repository) ReadAllRunePool(ctx context.Context) ([]history.RunePoolRecord, error) {
	op := "read " + history.KindRunePool
	q := `
		SELECT
			start_time, end_time, count, units
		FROM rune_pool_history;
	`

	rows, err := r.client.Query(ctx, q)
	if err != nil {
		r.logger.Errorf("rune pool history find err:%s", err.Error())
		return nil, service.ReadError(Name, op, err)
	}
	defer rows.Close()

	records := make([]history.RunePoolRecord, 0)
	for rows.Next() {
		var p history.RunePoolRecord
		if err = rows.Scan(&p.StartTime, &p.EndTime, &p.Count, &p.Units); err != nil {
			r.logger.Errorf("rune pool history parse:%s", err.Error())
			return nil, service.ReadError(Name, op, err)
		}
		records = append(records, p)
	}
	if err = rows.Err(); err != nil {
		return nil, service.ReadError(Name, op, err)
	}

	return records, nil
}
