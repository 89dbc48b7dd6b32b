package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/nickzhog/storage-bench/internal/server/bench"
	"github.com/nickzhog/storage-bench/internal/server/registry"
	"github.com/nickzhog/storage-bench/pkg/history"
	"github.com/nickzhog/storage-bench/pkg/logging"
)

// Source - откуда берутся пачки записей.
type Source interface {
	FetchDepthHistory(ctx context.Context) (history.DepthHistory, error)
	FetchRunePoolHistory(ctx context.Context) (history.RunePoolHistory, error)
}

type Server struct {
	Logger   *logging.Logger
	registry *registry.Registry
	harness  *bench.Harness
	source   Source
}

func NewServer(logger *logging.Logger, reg *registry.Registry, harness *bench.Harness, source Source) *Server {
	return &Server{
		Logger:   logger,
		registry: reg,
		harness:  harness,
		source:   source,
	}
}

func (s *Server) Ping(ctx context.Context) error {
	return s.registry.Ping(ctx)
}

func (s *Server) Backends() []string {
	return s.registry.Names()
}

// FetchAndInsert забирает оба вида истории и прогоняет их через все хранилища.
// Ошибка загрузки одного вида не отменяет вставку другого.
func (s *Server) FetchAndInsert(ctx context.Context) ([]bench.Result, error) {
	var (
		results []bench.Result
		errs    []error
	)

	depth, err := s.source.FetchDepthHistory(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("fetch %s: %w", history.KindDepth, err))
	} else {
		res, err := s.InsertDepth(ctx, depth.Intervals)
		results = append(results, res)
		errs = append(errs, err)
	}

	runePool, err := s.source.FetchRunePoolHistory(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("fetch %s: %w", history.KindRunePool, err))
	} else {
		res, err := s.InsertRunePool(ctx, runePool.Intervals)
		results = append(results, res)
		errs = append(errs, err)
	}

	return results, errors.Join(errs...)
}

func (s *Server) InsertDepth(ctx context.Context, records []history.DepthRecord) (bench.Result, error) {
	res := s.harness.InsertDepth(ctx, records)
	return res, res.Err()
}

func (s *Server) InsertRunePool(ctx context.Context, records []history.RunePoolRecord) (bench.Result, error) {
	res := s.harness.InsertRunePool(ctx, records)
	return res, res.Err()
}

func (s *Server) ReadAll(ctx context.Context) (bench.Result, error) {
	res := s.harness.ReadAll(ctx)
	return res, res.Err()
}
