package kv

import "errors"

// ErrNotFound - ключа нет в движке.
var ErrNotFound = errors.New("key not found")

// Engine - упорядоченное хранилище ключ-значение, встроенное в процесс.
type Engine interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Close() error
}
