package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/nickzhog/storage-bench/internal/server/service"
	"github.com/nickzhog/storage-bench/pkg/history"
	"github.com/nickzhog/storage-bench/pkg/logging"
)

var (
	_ service.Storage = (*Store)(nil)
	_ service.Reader  = (*Store)(nil)
)

// Store - хранилище поверх встроенного движка ключ-значение.
// Под каждый вид записей открыт отдельный движок со своим индексом,
// поэтому записи разных видов с одинаковым временем начала не пересекаются.
type Store struct {
	name   string
	logger *logging.Logger

	depth         Engine
	depthIndex    *Index
	runePool      Engine
	runePoolIndex *Index
}

func NewStore(name string, depth, runePool Engine, logger *logging.Logger) *Store {
	return &Store{
		name:          name,
		logger:        logger,
		depth:         depth,
		depthIndex:    NewIndex(depth),
		runePool:      runePool,
		runePoolIndex: NewIndex(runePool),
	}
}

func (s *Store) Name() string {
	return s.name
}

func (s *Store) InsertDepth(ctx context.Context, r history.DepthRecord) error {
	if err := s.insert(s.depth, s.depthIndex, r.StartTime, r); err != nil {
		return service.InsertionError(s.name, "insert "+history.KindDepth, err)
	}
	return nil
}

func (s *Store) InsertRunePool(ctx context.Context, r history.RunePoolRecord) error {
	if err := s.insert(s.runePool, s.runePoolIndex, r.StartTime, r); err != nil {
		return service.InsertionError(s.name, "insert "+history.KindRunePool, err)
	}
	return nil
}

// insert сначала пишет значение, затем дописывает ключ в индекс.
func (s *Store) insert(engine Engine, index *Index, startTime float64, record interface{}) error {
	key := DeriveKey(startTime)

	value, err := EncodeValue(record)
	if err != nil {
		return err
	}
	if err = engine.Put(key, value); err != nil {
		return err
	}
	if err = index.Append(key); err != nil {
		return fmt.Errorf("key index: %w", err)
	}

	return nil
}

func (s *Store) ReadAllDepth(ctx context.Context) ([]history.DepthRecord, error) {
	op := "read " + history.KindDepth

	keys, err := s.depthIndex.Enumerate()
	if err != nil {
		return nil, service.ReadError(s.name, op, fmt.Errorf("key index: %w", err))
	}

	records := make([]history.DepthRecord, 0, len(keys))
	for _, k := range keys {
		data, err := s.depth.Get(k)
		if err != nil {
			return nil, service.ReadError(s.name, op, fmt.Errorf("key %s: %w", k, err))
		}
		r, err := DecodeDepth(data)
		if err != nil {
			return nil, service.ReadError(s.name, op, fmt.Errorf("key %s: %w", k, err))
		}
		records = append(records, r)
	}

	return records, nil
}

func (s *Store) ReadAllRunePool(ctx context.Context) ([]history.RunePoolRecord, error) {
	op := "read " + history.KindRunePool

	keys, err := s.runePoolIndex.Enumerate()
	if err != nil {
		return nil, service.ReadError(s.name, op, fmt.Errorf("key index: %w", err))
	}

	records := make([]history.RunePoolRecord, 0, len(keys))
	for _, k := range keys {
		data, err := s.runePool.Get(k)
		if err != nil {
			return nil, service.ReadError(s.name, op, fmt.Errorf("key %s: %w", k, err))
		}
		r, err := DecodeRunePool(data)
		if err != nil {
			return nil, service.ReadError(s.name, op, fmt.Errorf("key %s: %w", k, err))
		}
		records = append(records, r)
	}

	return records, nil
}

// Keys отдает содержимое индекса для указанного вида записей.
func (s *Store) Keys(kind string) ([][]byte, error) {
	switch kind {
	case history.KindDepth:
		return s.depthIndex.Enumerate()
	case history.KindRunePool:
		return s.runePoolIndex.Enumerate()
	}
	return nil, fmt.Errorf("unknown record kind %q", kind)
}

func (s *Store) Ping(ctx context.Context) error {
	for _, e := range []Engine{s.depth, s.runePool} {
		if _, err := e.Get(IndexKey); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	err := errors.Join(s.depth.Close(), s.runePool.Close())
	if err != nil {
		s.logger.Errorf("%s close: %s", s.name, err.Error())
	}
	return err
}
