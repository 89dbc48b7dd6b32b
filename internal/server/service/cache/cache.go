package cache

import (
	"context"
	"sync"

	"github.com/nickzhog/storage-bench/internal/server/service"
	"github.com/nickzhog/storage-bench/pkg/history"
)

const Name = "memory"

var (
	_ service.Storage = (*memStorage)(nil)
	_ service.Reader  = (*memStorage)(nil)
)

type memStorage struct {
	mutex    *sync.RWMutex
	depth    []history.DepthRecord
	runePool []history.RunePoolRecord
}

func NewMemStorage() *memStorage {
	return &memStorage{
		mutex:    new(sync.RWMutex),
		depth:    make([]history.DepthRecord, 0),
		runePool: make([]history.RunePoolRecord, 0),
	}
}

func (m *memStorage) Name() string {
	return Name
}

func (m *memStorage) Ping(ctx context.Context) error {
	return nil
}

func (m *memStorage) Close(ctx context.Context) error {
	return nil
}

func (m *memStorage) InsertDepth(ctx context.Context, d history.DepthRecord) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.depth = append(m.depth, d)
	return nil
}

func (m *memStorage) InsertRunePool(ctx context.Context, p history.RunePoolRecord) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.runePool = append(m.runePool, p)
	return nil
}

func (m *memStorage) ReadAllDepth(ctx context.Context) ([]history.DepthRecord, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	out := make([]history.DepthRecord, len(m.depth))
	copy(out, m.depth)
	return out, nil
}

func (m *memStorage) ReadAllRunePool(ctx context.Context) ([]history.RunePoolRecord, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	out := make([]history.RunePoolRecord, len(m.runePool))
	copy(out, m.runePool)
	return out, nil
}
