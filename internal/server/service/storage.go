package service

import (
	"context"

	"github.com/nickzhog/storage-bench/pkg/history"
)

// Storage - общий набор операций, который поддерживает каждое хранилище.
type Storage interface {
	Name() string
	InsertDepth(ctx context.Context, r history.DepthRecord) error
	InsertRunePool(ctx context.Context, r history.RunePoolRecord) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Reader - хранилища, умеющие отдать все записи обратно.
type Reader interface {
	ReadAllDepth(ctx context.Context) ([]history.DepthRecord, error)
	ReadAllRunePool(ctx context.Context) ([]history.RunePoolRecord, error)
}
