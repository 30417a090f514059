// Package diskstore keeps each row as a JSON document on disk using diskv.
// Documents live under <base>/<table>/<id>.json.
package diskstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"github.com/safesistemas/cejoana/pkg/record"
	"github.com/safesistemas/cejoana/pkg/store"
)

const ext = ".json"

// Backend serves every table from one diskv base directory.
type Backend struct {
	d        *diskv.Diskv
	basePath string

	// serializes id assignment and read-modify-write updates
	mu sync.Mutex
}

var _ store.Backend = (*Backend)(nil)

// Open creates a backend rooted at basePath.
func Open(basePath string) (*Backend, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("diskstore: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("diskstore: ensure base path: %w", err)
	}
	return &Backend{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

// Adapter implements store.Backend.
func (b *Backend) Adapter(s *record.Schema) store.Adapter {
	return &adapter{b: b, schema: s}
}

// Close implements store.Backend.
func (b *Backend) Close() error { return nil }

type document struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

type adapter struct {
	b      *Backend
	schema *record.Schema
}

func (a *adapter) List(ctx context.Context) ([]record.Record, error) {
	keys := a.keys(ctx)
	out := make([]record.Record, 0, len(keys))
	for _, key := range keys {
		r, err := a.read(key)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, ctx.Err()
}

func (a *adapter) Insert(ctx context.Context, fields record.Fields) error {
	a.b.mu.Lock()
	defer a.b.mu.Unlock()

	var id record.ID
	switch a.schema.IDKind {
	case record.IDUUID:
		id = record.ID(uuid.NewString())
	default:
		var max int64
		for _, key := range a.keys(ctx) {
			if n, err := idFromKey(key).Int64(); err == nil && n > max {
				max = n
			}
		}
		id = record.ID(strconv.FormatInt(max+1, 10))
	}
	return a.write(id, a.schema.Project(fields))
}

func (a *adapter) Update(ctx context.Context, id record.ID, fields record.Fields) error {
	a.b.mu.Lock()
	defer a.b.mu.Unlock()

	key := toKey(a.schema.Name, id)
	if !a.b.d.Has(key) {
		return fmt.Errorf("diskstore: %s %s: %w", a.schema.Name, id, store.ErrNotFound)
	}
	current, err := a.read(key)
	if err != nil {
		return err
	}
	merged := current.Fields
	for _, f := range a.schema.Fields {
		if v, ok := fields[f.Name]; ok {
			merged[f.Name] = v
		}
	}
	return a.write(id, merged)
}

func (a *adapter) DeleteMany(ctx context.Context, ids []record.ID) error {
	a.b.mu.Lock()
	defer a.b.mu.Unlock()

	for _, id := range ids {
		key := toKey(a.schema.Name, id)
		if !a.b.d.Has(key) {
			continue
		}
		if err := a.b.d.Erase(key); err != nil {
			return fmt.Errorf("diskstore: erase %s: %w", key, err)
		}
	}
	return nil
}

func (a *adapter) keys(ctx context.Context) []string {
	prefix := a.schema.Name + "/"
	var keys []string
	for key := range a.b.d.KeysPrefix(prefix, ctx.Done()) {
		keys = append(keys, key)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return record.Compare(idFromKey(keys[i]), idFromKey(keys[j])) < 0
	})
	return keys
}

func (a *adapter) read(key string) (record.Record, error) {
	val, err := a.b.d.Read(key)
	if err != nil {
		return record.Record{}, fmt.Errorf("diskstore: read %s: %w", key, err)
	}
	var doc document
	dec := json.NewDecoder(bytes.NewReader(val))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return record.Record{}, fmt.Errorf("diskstore: decode %s: %w", key, err)
	}
	fields, err := record.CoerceFields(a.schema, doc.Fields)
	if err != nil {
		return record.Record{}, fmt.Errorf("diskstore: %s: %w", key, err)
	}
	return record.Record{ID: idFromKey(key), Fields: fields}, nil
}

func (a *adapter) write(id record.ID, fields record.Fields) error {
	data, err := json.Marshal(document{ID: string(id), Fields: record.JSONFields(fields)})
	if err != nil {
		return err
	}
	key := toKey(a.schema.Name, id)
	if err := a.b.d.Write(key, data); err != nil {
		return fmt.Errorf("diskstore: write %s: %w", key, err)
	}
	return nil
}

// toKey makes `table/id`
func toKey(table string, id record.ID) string {
	return table + "/" + string(id)
}

func idFromKey(key string) record.ID {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return record.ID(key[i+1:])
	}
	return record.ID(key)
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1] + ext,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(pathKey.Path, "/") + "/" + strings.TrimSuffix(pathKey.FileName, ext)
}
