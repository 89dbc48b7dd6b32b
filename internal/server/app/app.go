package app

import (
	"context"

	goredis "github.com/redis/go-redis/v9"

	"github.com/nickzhog/storage-bench/internal/server/bench"
	"github.com/nickzhog/storage-bench/internal/server/config"
	"github.com/nickzhog/storage-bench/internal/server/midgard"
	"github.com/nickzhog/storage-bench/internal/server/registry"
	"github.com/nickzhog/storage-bench/internal/server/report"
	"github.com/nickzhog/storage-bench/internal/server/server"
	"github.com/nickzhog/storage-bench/pkg/logging"
	"github.com/nickzhog/storage-bench/pkg/redis"
)

// App собирает сервер целиком: хранилища, приемники замеров, harness и клиент midgard.
type App struct {
	Server *server.Server

	registry *registry.Registry
	redis    *goredis.Client
	logger   *logging.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*App, error) {
	return NewWithFactories(ctx, cfg, registry.Factories(cfg, logger), logger)
}

func NewWithFactories(ctx context.Context, cfg *config.Config, factories map[string]registry.Factory, logger *logging.Logger) (*App, error) {
	s := cfg.Settings

	reg, err := registry.New(ctx, s.Backends, factories, logger)
	if err != nil {
		return nil, err
	}

	a := &App{registry: reg, logger: logger}

	reporters := report.Multi{report.NewConsole(logger)}
	if s.MetricsFile != "" {
		reporters = append(reporters, report.NewFile(s.MetricsFile))
	}
	if s.RedisAddr != "" {
		a.redis, err = redis.NewClient(ctx, s.RedisAddr, s.RedisPassword, s.RedisDB)
		if err != nil {
			reg.Close(ctx)
			return nil, err
		}
		reporters = append(reporters, report.NewRedis(a.redis, s.RedisKey))
	}

	source := midgard.NewClient(midgard.Config{
		BaseURL:  s.MidgardURL,
		Pool:     s.MidgardPool,
		Interval: s.MidgardInterval,
		Count:    s.MidgardCount,
	}, logger.GetLoggerWithField("component", "midgard"))

	harness := bench.New(reg.Backends(), reporters, logger.GetLoggerWithField("component", "bench"))
	a.Server = server.NewServer(logger, reg, harness, source)

	return a, nil
}

func (a *App) Close(ctx context.Context) error {
	err := a.registry.Close(ctx)
	if a.redis != nil {
		a.redis.Close()
	}
	return err
}
