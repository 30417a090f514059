// Package server exposes a store backend over a small JSON API so consoles
// can share one database through the rest driver.
package server

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/safesistemas/cejoana/pkg/api"
	"github.com/safesistemas/cejoana/pkg/record"
	"github.com/safesistemas/cejoana/pkg/store"
)

// Config holds server configuration.
type Config struct {
	// Token, when set, is required as a bearer token on every /v1 route.
	Token   string
	Backend store.Backend
	Schemas []*record.Schema
	// Registry receives the store metrics and backs /metrics. Nil means a
	// fresh registry.
	Registry *prometheus.Registry
}

type handler struct {
	adapters map[string]store.Adapter
	schemas  map[string]*record.Schema
}

// New builds the router.
func New(cfg Config) (http.Handler, error) {
	if cfg.Backend == nil {
		return nil, errors.New("server: backend required")
	}
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics, err := store.NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	backend := metrics.Backend(cfg.Backend)

	h := &handler{
		adapters: make(map[string]store.Adapter, len(cfg.Schemas)),
		schemas:  make(map[string]*record.Schema, len(cfg.Schemas)),
	}
	for _, s := range cfg.Schemas {
		h.schemas[s.Name] = s
		h.adapters[s.Name] = backend.Adapter(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(requireToken(cfg.Token))
		v1.Get("/{table}", h.list)
		v1.Post("/{table}", h.create)
		v1.Delete("/{table}", h.deleteMany)
		v1.Patch("/{table}/{id}", h.update)
	})
	return r, nil
}

func requireToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		want := []byte("Bearer " + token)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get("Authorization"))
			if subtle.ConstantTimeCompare(got, want) != 1 {
				writeError(w, http.StatusUnauthorized, api.CodeUnauthorized, "missing or invalid bearer token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// table resolves the {table} parameter, writing a 404 when unknown.
func (h *handler) table(w http.ResponseWriter, r *http.Request) (*record.Schema, store.Adapter, bool) {
	name := chi.URLParam(r, "table")
	s, ok := h.schemas[name]
	if !ok {
		writeError(w, http.StatusNotFound, api.CodeUnknownTable, "unknown table: "+name)
		return nil, nil, false
	}
	return s, h.adapters[name], true
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	s, a, ok := h.table(w, r)
	if !ok {
		return
	}
	records, err := a.List(r.Context())
	if err != nil {
		storeErrorToHTTP(w, err)
		return
	}
	record.Sort(s, records)
	writeJSON(w, http.StatusOK, api.FromRecords(records))
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	s, a, ok := h.table(w, r)
	if !ok {
		return
	}
	if !s.Ops.Create {
		writeError(w, http.StatusMethodNotAllowed, api.CodeUnsupported, s.Name+" does not accept new rows")
		return
	}
	fields, ok := h.decodeFields(w, r, s)
	if !ok {
		return
	}
	if missing := s.Missing(fields); len(missing) > 0 {
		writeError(w, http.StatusBadRequest, api.CodeInvalid, missing[0].Title()+" is required")
		return
	}
	if err := a.Insert(r.Context(), fields); err != nil {
		storeErrorToHTTP(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	s, a, ok := h.table(w, r)
	if !ok {
		return
	}
	if !s.Ops.Edit {
		writeError(w, http.StatusMethodNotAllowed, api.CodeUnsupported, s.Name+" rows cannot be edited")
		return
	}
	id := record.ID(chi.URLParam(r, "id"))
	fields, ok := h.decodeFields(w, r, s)
	if !ok {
		return
	}
	for _, f := range s.Missing(fields) {
		if _, present := fields[f.Name]; present {
			writeError(w, http.StatusBadRequest, api.CodeInvalid, f.Title()+" is required")
			return
		}
	}
	if err := a.Update(r.Context(), id, fields); err != nil {
		storeErrorToHTTP(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) deleteMany(w http.ResponseWriter, r *http.Request) {
	s, a, ok := h.table(w, r)
	if !ok {
		return
	}
	if !s.Ops.Delete {
		writeError(w, http.StatusMethodNotAllowed, api.CodeUnsupported, s.Name+" rows cannot be deleted")
		return
	}
	var ids []record.ID
	for _, raw := range r.URL.Query()["id"] {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, record.ID(id))
			}
		}
	}
	if len(ids) == 0 {
		writeError(w, http.StatusBadRequest, api.CodeInvalid, "at least one id query parameter is required")
		return
	}
	if err := a.DeleteMany(r.Context(), ids); err != nil {
		storeErrorToHTTP(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) decodeFields(w http.ResponseWriter, r *http.Request, s *record.Schema) (record.Fields, bool) {
	var req api.WriteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, api.CodeInvalid, "invalid JSON body: "+err.Error())
		return nil, false
	}
	fields, err := req.ToFields(s)
	if err != nil {
		storeErrorToHTTP(w, err)
		return nil, false
	}
	return fields, true
}
