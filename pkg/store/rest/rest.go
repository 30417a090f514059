// Package rest reaches a remote `cejoana serve` instance over HTTP.
package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/safesistemas/cejoana/pkg/api"
	"github.com/safesistemas/cejoana/pkg/record"
	"github.com/safesistemas/cejoana/pkg/store"
)

// Backend is an HTTP client for the /v1 API.
type Backend struct {
	base   *url.URL
	token  string
	client *http.Client
}

var _ store.Backend = (*Backend)(nil)

// Option customises a Backend.
type Option func(*Backend)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Backend) { b.client = c }
}

// New returns a backend for the API rooted at rawURL. Token is sent as a
// bearer token when not empty.
func New(rawURL, token string, opts ...Option) (*Backend, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, errors.New("rest: url required")
	}
	u, err := url.Parse(strings.TrimRight(rawURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("rest: parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("rest: unsupported scheme %q", u.Scheme)
	}
	b := &Backend{
		base:   u,
		token:  token,
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Adapter implements store.Backend.
func (b *Backend) Adapter(s *record.Schema) store.Adapter {
	return &adapter{b: b, schema: s}
}

// Close implements store.Backend.
func (b *Backend) Close() error {
	b.client.CloseIdleConnections()
	return nil
}

func (b *Backend) endpoint(parts ...string) string {
	u := *b.base
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/v1/" + strings.Join(escaped, "/")
	return u.String()
}

func (b *Backend) do(ctx context.Context, method, target string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		r, err := api.Encode(body)
		if err != nil {
			return err
		}
		reader = r
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("rest: %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return responseError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := api.Decode(resp.Body, out); err != nil {
		return fmt.Errorf("rest: decode response: %w", err)
	}
	return nil
}

func responseError(resp *http.Response) error {
	var body api.ErrorResponse
	_ = api.Decode(io.LimitReader(resp.Body, 64<<10), &body)
	msg := body.Error
	if msg == "" {
		msg = resp.Status
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", store.ErrUnauthorized, msg)
	case http.StatusNotFound:
		if body.Code == api.CodeUnknownTable {
			return fmt.Errorf("%w: %s", store.ErrNoTable, msg)
		}
		return fmt.Errorf("%w: %s", store.ErrNotFound, msg)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", record.ErrInvalidValue, msg)
	}
	return fmt.Errorf("rest: %s: %s", resp.Status, msg)
}

type adapter struct {
	b      *Backend
	schema *record.Schema
}

func (a *adapter) List(ctx context.Context) ([]record.Record, error) {
	var resp api.ListResponse
	if err := a.b.do(ctx, http.MethodGet, a.b.endpoint(a.schema.Name), nil, &resp); err != nil {
		return nil, err
	}
	return resp.ToRecords(a.schema)
}

func (a *adapter) Insert(ctx context.Context, fields record.Fields) error {
	return a.b.do(ctx, http.MethodPost, a.b.endpoint(a.schema.Name), api.NewWriteRequest(fields), nil)
}

func (a *adapter) Update(ctx context.Context, id record.ID, fields record.Fields) error {
	return a.b.do(ctx, http.MethodPatch, a.b.endpoint(a.schema.Name, string(id)), api.NewWriteRequest(fields), nil)
}

func (a *adapter) DeleteMany(ctx context.Context, ids []record.ID) error {
	if len(ids) == 0 {
		return nil
	}
	q := url.Values{}
	for _, id := range ids {
		q.Add("id", string(id))
	}
	return a.b.do(ctx, http.MethodDelete, a.b.endpoint(a.schema.Name)+"?"+q.Encode(), nil, nil)
}
