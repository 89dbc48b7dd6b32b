package kv

import (
	"errors"
	"sync"
)

type IndexState int

const (
	Unloaded IndexState = iota
	Empty
	Loaded
)

func (s IndexState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Loaded:
		return "loaded"
	default:
		return "unloaded"
	}
}

// Index хранит список ключей, записанных в движок, под ключом IndexKey.
// Append выполняется под мьютексом, поэтому параллельные вставки
// в один движок не теряют записи индекса.
type Index struct {
	mu     sync.Mutex
	engine Engine
	state  IndexState
}

func NewIndex(engine Engine) *Index {
	return &Index{engine: engine}
}

func (i *Index) State() IndexState {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.state
}

// Load читает индекс из движка. Отсутствие индекса - пустой список.
func (i *Index) Load() ([][]byte, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.load()
}

func (i *Index) load() ([][]byte, error) {
	data, err := i.engine.Get(IndexKey)
	if errors.Is(err, ErrNotFound) {
		i.state = Empty
		return [][]byte{}, nil
	}
	if err != nil {
		return nil, err
	}

	keys, err := DecodeIndex(data)
	if err != nil {
		return nil, err
	}
	i.state = Loaded

	return keys, nil
}

// Append добавляет ключ в конец индекса. Повторы не убираются.
func (i *Index) Append(key []byte) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	keys, err := i.load()
	if err != nil {
		return err
	}

	keys = append(keys, append([]byte(nil), key...))

	data, err := EncodeIndex(keys)
	if err != nil {
		return err
	}
	if err = i.engine.Put(IndexKey, data); err != nil {
		return err
	}
	i.state = Loaded

	return nil
}

// Enumerate возвращает ключи в порядке добавления.
func (i *Index) Enumerate() ([][]byte, error) {
	return i.Load()
}
