package pebble

import (
	"errors"
	"path/filepath"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/nickzhog/storage-bench/internal/server/service"
	"github.com/nickzhog/storage-bench/internal/server/service/kv"
	"github.com/nickzhog/storage-bench/pkg/logging"
)

const Name = "pebble"

type engine struct {
	db *pebble.DB
}

func Open(path string) (kv.Engine, error) {
	return open(path, &pebble.Options{})
}

// OpenMem открывает базу на файловой системе в памяти.
func OpenMem() (kv.Engine, error) {
	return open("", &pebble.Options{FS: vfs.NewMem()})
}

func open(path string, opts *pebble.Options) (kv.Engine, error) {
	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, err
	}
	return &engine{db: db}, nil
}

func (e *engine) Get(key []byte) ([]byte, error) {
	value, closer, err := e.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, kv.ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()

	// value действителен только до closer.Close
	return append([]byte(nil), value...), nil
}

func (e *engine) Put(key, value []byte) error {
	return e.db.Set(key, value, pebble.Sync)
}

func (e *engine) Close() error {
	return e.db.Close()
}

func New(path string, logger *logging.Logger) (*kv.Store, error) {
	if path == "" {
		return nil, service.ConnectionError(Name, errors.New("empty PEBBLE_PATH"))
	}

	depth, err := Open(filepath.Join(path, "depth_history"))
	if err != nil {
		return nil, service.ConnectionError(Name, err)
	}
	runePool, err := Open(filepath.Join(path, "rune_pool_history"))
	if err != nil {
		depth.Close()
		return nil, service.ConnectionError(Name, err)
	}

	logger.Tracef("%s opened at %s", Name, path)

	return kv.NewStore(Name, depth, runePool, logger), nil
}
