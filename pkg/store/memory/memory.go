// Package memory implements an in-process store backend. It backs the
// `--driver memory` demo mode and the controller tests.
package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/safesistemas/cejoana/pkg/record"
	"github.com/safesistemas/cejoana/pkg/store"
)

type table struct {
	schema *record.Schema
	rows   map[record.ID]record.Fields
	order  []record.ID
	next   int64
}

// Backend keeps every table in memory. The zero value is not usable; call New.
type Backend struct {
	mu     sync.Mutex
	tables map[string]*table
	closed bool
}

var _ store.Backend = (*Backend)(nil)

// New returns an empty backend.
func New() *Backend {
	return &Backend{tables: make(map[string]*table)}
}

// Adapter implements store.Backend.
func (b *Backend) Adapter(s *record.Schema) store.Adapter {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.table(s)
	return &adapter{b: b, schema: s}
}

// Close implements store.Backend.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// Seed inserts rows with explicit ids, bypassing id assignment. Serial
// counters advance past numeric seeded ids.
func (b *Backend) Seed(s *record.Schema, records ...record.Record) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := b.table(s)
	for _, r := range records {
		if _, ok := t.rows[r.ID]; !ok {
			t.order = append(t.order, r.ID)
		}
		t.rows[r.ID] = s.Project(r.Fields)
		if n, err := r.ID.Int64(); err == nil && n > t.next {
			t.next = n
		}
	}
}

// Len returns the number of rows stored for s.
func (b *Backend) Len(s *record.Schema) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.table(s).rows)
}

// must hold b.mu
func (b *Backend) table(s *record.Schema) *table {
	t, ok := b.tables[s.Name]
	if !ok {
		t = &table{schema: s, rows: make(map[record.ID]record.Fields)}
		b.tables[s.Name] = t
	}
	return t
}

type adapter struct {
	b      *Backend
	schema *record.Schema
}

func (a *adapter) List(ctx context.Context) ([]record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	if a.b.closed {
		return nil, store.ErrClosed
	}
	t := a.b.table(a.schema)
	out := make([]record.Record, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, record.Record{ID: id, Fields: t.rows[id].Clone()})
	}
	return out, nil
}

func (a *adapter) Insert(ctx context.Context, fields record.Fields) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	if a.b.closed {
		return store.ErrClosed
	}
	t := a.b.table(a.schema)
	var id record.ID
	switch a.schema.IDKind {
	case record.IDUUID:
		id = record.ID(uuid.NewString())
	default:
		t.next++
		id = record.ID(strconv.FormatInt(t.next, 10))
	}
	t.rows[id] = a.schema.Project(fields)
	t.order = append(t.order, id)
	return nil
}

func (a *adapter) Update(ctx context.Context, id record.ID, fields record.Fields) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	if a.b.closed {
		return store.ErrClosed
	}
	t := a.b.table(a.schema)
	row, ok := t.rows[id]
	if !ok {
		return store.ErrNotFound
	}
	row = row.Clone()
	for _, f := range a.schema.Fields {
		if v, ok := fields[f.Name]; ok {
			row[f.Name] = v
		}
	}
	t.rows[id] = row
	return nil
}

func (a *adapter) DeleteMany(ctx context.Context, ids []record.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	if a.b.closed {
		return store.ErrClosed
	}
	t := a.b.table(a.schema)
	gone := make(map[record.ID]bool, len(ids))
	for _, id := range ids {
		if _, ok := t.rows[id]; ok {
			delete(t.rows, id)
			gone[id] = true
		}
	}
	if len(gone) == 0 {
		return nil
	}
	kept := t.order[:0]
	for _, id := range t.order {
		if !gone[id] {
			kept = append(kept, id)
		}
	}
	t.order = kept
	return nil
}
