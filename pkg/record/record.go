// Package record models the rows shown by the console screens: an opaque
// store-assigned identifier plus a bag of typed field values described by a
// Schema.
package record

import (
	"errors"
	"strconv"
	"strings"
)

// ID identifies a row. It is assigned by the store and never changes.
type ID string

// String implements fmt.Stringer.
func (id ID) String() string { return string(id) }

// Empty reports whether the id is blank.
func (id ID) Empty() bool { return strings.TrimSpace(string(id)) == "" }

// Int64 parses a serial id.
func (id ID) Int64() (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(string(id)), 10, 64)
	if err != nil {
		return 0, errors.New("record: id " + strconv.Quote(string(id)) + " is not numeric")
	}
	return n, nil
}

// Fields maps a column name to its value. Values are one of: string (text),
// float64 (number), bool (boolean), ID (foreign key), time.Time (timestamp)
// or nil when absent.
type Fields map[string]any

// Clone returns a shallow copy; every value type is immutable.
func (f Fields) Clone() Fields {
	if f == nil {
		return Fields{}
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Record is a single row.
type Record struct {
	ID     ID
	Fields Fields
}

// Get returns the named value or nil.
func (r Record) Get(name string) any {
	if r.Fields == nil {
		return nil
	}
	return r.Fields[name]
}

// Clone returns a copy that shares nothing mutable with r.
func (r Record) Clone() Record {
	return Record{ID: r.ID, Fields: r.Fields.Clone()}
}

// CloneAll copies a list of records.
func CloneAll(in []Record) []Record {
	if in == nil {
		return nil
	}
	out := make([]Record, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}

// Index returns the position of id in records or -1.
func Index(records []Record, id ID) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
