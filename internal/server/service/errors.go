package service

import (
	"errors"
	"fmt"
)

var (
	ErrConnection = errors.New("connection error")
	ErrCreation   = errors.New("creation error")
	ErrInsertion  = errors.New("insertion error")
	ErrRead       = errors.New("read error")
)

// Error - ошибка операции конкретного хранилища.
// Kind - одна из ErrConnection, ErrCreation, ErrInsertion, ErrRead.
type Error struct {
	Backend string
	Op      string
	Kind    error
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", e.Backend, e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func ConnectionError(backend string, err error) error {
	return &Error{Backend: backend, Op: "init", Kind: ErrConnection, Err: err}
}

func CreationError(backend, op string, err error) error {
	return &Error{Backend: backend, Op: op, Kind: ErrCreation, Err: err}
}

func InsertionError(backend, op string, err error) error {
	return &Error{Backend: backend, Op: op, Kind: ErrInsertion, Err: err}
}

func ReadError(backend, op string, err error) error {
	return &Error{Backend: backend, Op: op, Kind: ErrRead, Err: err}
}
