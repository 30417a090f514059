// Package store defines the boundary between the console screens and the
// backing relational store. Each entity is reached through an Adapter bound
// to its schema; a Backend hands out adapters that share one connection.
package store

import (
	"context"
	"errors"

	"github.com/safesistemas/cejoana/pkg/record"
)

var (
	// ErrNotFound reports an update or delete aimed at a missing row.
	ErrNotFound = errors.New("store: record not found")
	// ErrUnauthorized reports that the store rejected the session.
	ErrUnauthorized = errors.New("store: not authorized")
	// ErrUnknownDriver reports a configuration naming no known backend.
	ErrUnknownDriver = errors.New("store: unknown driver")
	// ErrNoTable reports a request for an entity the backend does not serve.
	ErrNoTable = errors.New("store: unknown table")
	// ErrClosed reports use of a backend after Close.
	ErrClosed = errors.New("store: backend closed")
)

// Adapter executes list/insert/update/delete for one entity. Implementations
// must be safe for concurrent use: calls are issued from Bubble Tea commands
// running on their own goroutines.
type Adapter interface {
	// List returns every row. Ordering is not guaranteed.
	List(ctx context.Context) ([]record.Record, error)
	// Insert creates a row; the store assigns the id.
	Insert(ctx context.Context, fields record.Fields) error
	// Update overwrites the given columns of row id.
	Update(ctx context.Context, id record.ID, fields record.Fields) error
	// DeleteMany removes every listed row in one request.
	DeleteMany(ctx context.Context, ids []record.ID) error
}

// Backend hands out adapters over a shared connection.
type Backend interface {
	Adapter(s *record.Schema) Adapter
	Close() error
}

// Func adapts plain functions into an Adapter. Nil functions succeed without
// doing anything.
type Func struct {
	ListFunc       func(ctx context.Context) ([]record.Record, error)
	InsertFunc     func(ctx context.Context, fields record.Fields) error
	UpdateFunc     func(ctx context.Context, id record.ID, fields record.Fields) error
	DeleteManyFunc func(ctx context.Context, ids []record.ID) error
}

var _ Adapter = Func{}

// List implements Adapter.
func (f Func) List(ctx context.Context) ([]record.Record, error) {
	if f.ListFunc == nil {
		return nil, nil
	}
	return f.ListFunc(ctx)
}

// Insert implements Adapter.
func (f Func) Insert(ctx context.Context, fields record.Fields) error {
	if f.InsertFunc == nil {
		return nil
	}
	return f.InsertFunc(ctx, fields)
}

// Update implements Adapter.
func (f Func) Update(ctx context.Context, id record.ID, fields record.Fields) error {
	if f.UpdateFunc == nil {
		return nil
	}
	return f.UpdateFunc(ctx, id, fields)
}

// DeleteMany implements Adapter.
func (f Func) DeleteMany(ctx context.Context, ids []record.ID) error {
	if f.DeleteManyFunc == nil {
		return nil
	}
	return f.DeleteManyFunc(ctx, ids)
}
