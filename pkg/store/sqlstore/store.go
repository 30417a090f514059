// Package sqlstore serves entities from PostgreSQL or SQLite tables through
// database/sql. Every statement is derived from the entity schema.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver

	"github.com/safesistemas/cejoana/pkg/record"
	"github.com/safesistemas/cejoana/pkg/store"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Backend owns one *sql.DB shared by every entity adapter.
type Backend struct {
	db      *sql.DB
	dialect Dialect
}

var _ store.Backend = (*Backend)(nil)

// Open connects to dsn with the dialect's driver and pings it. For SQLite the
// parent directory of the database file is created.
func Open(ctx context.Context, d Dialect, dsn string) (*Backend, error) {
	if dsn == "" {
		return nil, fmt.Errorf("sqlstore: %s needs a dsn", d.Name)
	}
	if d.Name == SQLite.Name && dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("sqlstore: create dirs: %w", err)
		}
	}
	openMu.Lock()
	db, err := sqlOpen(d.Driver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open %s: %w", d.Name, err)
	}
	if d.Name == SQLite.Name {
		// one writer at a time avoids SQLITE_BUSY between concurrent commands
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlstore: ping %s: %w", d.Name, err)
	}
	return New(db, d), nil
}

// New wraps an existing connection.
func New(db *sql.DB, d Dialect) *Backend {
	return &Backend{db: db, dialect: d}
}

// DB exposes the underlying connection.
func (b *Backend) DB() *sql.DB { return b.db }

// Dialect returns the dialect the backend speaks.
func (b *Backend) Dialect() Dialect { return b.dialect }

// Migrate creates any missing table for the given schemas.
func (b *Backend) Migrate(ctx context.Context, schemas ...*record.Schema) error {
	for _, s := range schemas {
		if _, err := b.db.ExecContext(ctx, b.dialect.CreateTable(s)); err != nil {
			return fmt.Errorf("sqlstore: create table %s: %w", s.Name, err)
		}
	}
	return nil
}

// Adapter implements store.Backend.
func (b *Backend) Adapter(s *record.Schema) store.Adapter {
	return &adapter{db: b.db, dialect: b.dialect, schema: s}
}

// Close implements store.Backend.
func (b *Backend) Close() error {
	return b.db.Close()
}

type adapter struct {
	db      *sql.DB
	dialect Dialect
	schema  *record.Schema
}

func (a *adapter) List(ctx context.Context) ([]record.Record, error) {
	rows, err := a.db.QueryContext(ctx, a.dialect.selectAll(a.schema))
	if err != nil {
		return nil, fmt.Errorf("sqlstore: select %s: %w", a.schema.Name, err)
	}
	defer func() { _ = rows.Close() }()

	var out []record.Record
	for rows.Next() {
		raw := make([]any, len(a.schema.Fields)+1)
		dest := make([]any, len(raw))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("sqlstore: scan %s: %w", a.schema.Name, err)
		}
		id, err := idFromValue(raw[0])
		if err != nil {
			return nil, fmt.Errorf("sqlstore: scan %s: %w", a.schema.Name, err)
		}
		fields := make(record.Fields, len(a.schema.Fields))
		for i, f := range a.schema.Fields {
			v, err := record.Coerce(f, raw[i+1])
			if err != nil {
				return nil, fmt.Errorf("sqlstore: %s row %s: %w", a.schema.Name, id, err)
			}
			fields[f.Name] = v
		}
		out = append(out, record.Record{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterate %s: %w", a.schema.Name, err)
	}
	return out, nil
}

func (a *adapter) Insert(ctx context.Context, fields record.Fields) error {
	cols, args, err := a.columns(fields)
	if err != nil {
		return err
	}
	if a.schema.IDKind == record.IDUUID {
		cols = append([]string{"id"}, cols...)
		args = append([]any{uuid.NewString()}, args...)
	}
	if len(cols) == 0 {
		return fmt.Errorf("sqlstore: insert %s: no columns", a.schema.Name)
	}
	if _, err := a.db.ExecContext(ctx, a.dialect.insert(a.schema, cols), args...); err != nil {
		return fmt.Errorf("sqlstore: insert %s: %w", a.schema.Name, err)
	}
	return nil
}

func (a *adapter) Update(ctx context.Context, id record.ID, fields record.Fields) error {
	cols, args, err := a.columns(fields)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return nil
	}
	key, err := a.key(id)
	if err != nil {
		return err
	}
	res, err := a.db.ExecContext(ctx, a.dialect.update(a.schema, cols), append(args, key)...)
	if err != nil {
		return fmt.Errorf("sqlstore: update %s: %w", a.schema.Name, err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("sqlstore: update %s %s: %w", a.schema.Name, id, store.ErrNotFound)
	}
	return nil
}

func (a *adapter) DeleteMany(ctx context.Context, ids []record.ID) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		key, err := a.key(id)
		if err != nil {
			return err
		}
		args[i] = key
	}
	if _, err := a.db.ExecContext(ctx, a.dialect.deleteIn(a.schema, len(ids)), args...); err != nil {
		return fmt.Errorf("sqlstore: delete %s: %w", a.schema.Name, err)
	}
	return nil
}

// columns returns the schema columns present in fields, in schema order, with
// their driver arguments.
func (a *adapter) columns(fields record.Fields) ([]string, []any, error) {
	var (
		cols []string
		args []any
	)
	for _, f := range a.schema.Fields {
		v, ok := fields[f.Name]
		if !ok {
			continue
		}
		arg, err := argument(f, v)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlstore: %s.%s: %w", a.schema.Name, f.Name, err)
		}
		cols = append(cols, f.Name)
		args = append(args, arg)
	}
	return cols, args, nil
}

func (a *adapter) key(id record.ID) (any, error) {
	if a.schema.IDKind == record.IDUUID {
		return string(id), nil
	}
	n, err := id.Int64()
	if err != nil {
		return nil, fmt.Errorf("sqlstore: %s: %w", a.schema.Name, err)
	}
	return n, nil
}

func argument(f record.Field, v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case record.ID:
		if t.Empty() {
			return nil, nil
		}
		if f.RefID == record.IDUUID {
			return string(t), nil
		}
		return t.Int64()
	case time.Time:
		return t.UTC(), nil
	case string, float64, bool:
		return t, nil
	}
	return nil, fmt.Errorf("%w: unsupported %T", record.ErrInvalidValue, v)
}

func idFromValue(v any) (record.ID, error) {
	switch t := v.(type) {
	case int64:
		return record.ID(strconv.FormatInt(t, 10)), nil
	case int32:
		return record.ID(strconv.FormatInt(int64(t), 10)), nil
	case string:
		return record.ID(t), nil
	case []byte:
		return record.ID(string(t)), nil
	case [16]byte:
		return record.ID(uuid.UUID(t).String()), nil
	}
	return "", fmt.Errorf("unexpected id type %T", v)
}
