// Package api holds the JSON documents exchanged between `cejoana serve` and
// the rest store driver.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/safesistemas/cejoana/pkg/record"
)

// Error codes carried in ErrorResponse.Code.
const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeUnknownTable = "UNKNOWN_TABLE"
	CodeInvalid      = "INVALID"
	CodeUnsupported  = "UNSUPPORTED"
	CodeInternal     = "INTERNAL_ERROR"
)

// Record is one row on the wire. Timestamps travel as RFC 3339 strings and
// ids as strings.
type Record struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// ListResponse is the body of GET /v1/{table}.
type ListResponse struct {
	Records []Record `json:"records"`
}

// WriteRequest is the body of POST /v1/{table} and PATCH /v1/{table}/{id}.
type WriteRequest struct {
	Fields map[string]any `json:"fields"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// FromRecords converts records for the wire.
func FromRecords(records []record.Record) ListResponse {
	out := ListResponse{Records: make([]Record, 0, len(records))}
	for _, r := range records {
		out.Records = append(out.Records, Record{ID: string(r.ID), Fields: record.JSONFields(r.Fields)})
	}
	return out
}

// ToRecords converts wire records back into typed rows of s.
func (l ListResponse) ToRecords(s *record.Schema) ([]record.Record, error) {
	out := make([]record.Record, 0, len(l.Records))
	for _, r := range l.Records {
		fields, err := record.CoerceFields(s, r.Fields)
		if err != nil {
			return nil, fmt.Errorf("api: %s %s: %w", s.Name, r.ID, err)
		}
		out = append(out, record.Record{ID: record.ID(r.ID), Fields: fields})
	}
	return out, nil
}

// NewWriteRequest converts fields for the wire.
func NewWriteRequest(fields record.Fields) WriteRequest {
	return WriteRequest{Fields: record.JSONFields(fields)}
}

// ToFields coerces the columns present in the request. Columns the schema
// does not declare are rejected, absent columns stay absent.
func (w WriteRequest) ToFields(s *record.Schema) (record.Fields, error) {
	out := make(record.Fields, len(w.Fields))
	for name, raw := range w.Fields {
		f, ok := s.Field(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no column %q", record.ErrInvalidValue, s.Name, name)
		}
		v, err := record.Coerce(f, raw)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

// Decode reads one JSON document from r, keeping numbers as json.Number so
// they can be coerced per column.
func Decode(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec.Decode(v)
}

// Encode marshals v into a request body.
func Encode(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
