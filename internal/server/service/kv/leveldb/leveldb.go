package leveldb

import (
	"errors"
	"path/filepath"

	"github.com/nickzhog/storage-bench/internal/server/service"
	"github.com/nickzhog/storage-bench/internal/server/service/kv"
	"github.com/nickzhog/storage-bench/pkg/logging"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

const Name = "leveldb"

type engine struct {
	db *leveldb.DB
}

// Open открывает базу leveldb в каталоге path.
func Open(path string) (kv.Engine, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &engine{db: db}, nil
}

// OpenMem открывает базу в памяти, используется в тестах.
func OpenMem() (kv.Engine, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return &engine{db: db}, nil
}

func (e *engine) Get(key []byte) ([]byte, error) {
	value, err := e.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, kv.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (e *engine) Put(key, value []byte) error {
	return e.db.Put(key, value, nil)
}

func (e *engine) Close() error {
	return e.db.Close()
}

// New открывает по базе на каждый вид записей внутри path.
func New(path string, logger *logging.Logger) (*kv.Store, error) {
	if path == "" {
		return nil, service.ConnectionError(Name, errors.New("empty LEVELDB_PATH"))
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

