package store

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/safesistemas/cejoana/pkg/record"
)

// Metrics counts and times adapter calls.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the store collectors with reg. A nil registerer uses
// prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cejoana",
			Subsystem: "store",
			Name:      "calls_total",
			Help:      "Store adapter calls by entity, operation and result.",
		}, []string{"entity", "op", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cejoana",
			Subsystem: "store",
			Name:      "call_duration_seconds",
			Help:      "Store adapter call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"entity", "op"}),
	}
	var err error
	if m.calls, err = register(reg, m.calls); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return c, err
		}
		existing, ok := already.ExistingCollector.(T)
		if !ok {
			return c, err
		}
		return existing, nil
	}
	return c, nil
}

// Instrument wraps a with call metrics labelled by entity.
func (m *Metrics) Instrument(entity string, a Adapter) Adapter {
	if m == nil {
		return a
	}
	return &instrumented{next: a, entity: entity, m: m}
}

// Backend wraps every adapter handed out by b.
func (m *Metrics) Backend(b Backend) Backend {
	if m == nil {
		return b
	}
	return instrumentedBackend{Backend: b, m: m}
}

type instrumentedBackend struct {
	Backend
	m *Metrics
}

func (b instrumentedBackend) Adapter(s *record.Schema) Adapter {
	return b.m.Instrument(s.Name, b.Backend.Adapter(s))
}

type instrumented struct {
	next   Adapter
	entity string
	m      *Metrics
}

func (i *instrumented) observe(op string, start time.Time, err error) {
	result := "ok"
	switch {
	case errors.Is(err, ErrUnauthorized):
		result = "unauthorized"
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	i.m.calls.WithLabelValues(i.entity, op, result).Inc()
	i.m.duration.WithLabelValues(i.entity, op).Observe(time.Since(start).Seconds())
}

func (i *instrumented) List(ctx context.Context) (records []record.Record, err error) {
	defer func(start time.Time) { i.observe("list", start, err) }(time.Now())
	return i.next.List(ctx)
}

func (i *instrumented) Insert(ctx context.Context, fields record.Fields) (err error) {
	defer func(start time.Time) { i.observe("insert", start, err) }(time.Now())
	return i.next.Insert(ctx, fields)
}

func (i *instrumented) Update(ctx context.Context, id record.ID, fields record.Fields) (err error) {
	defer func(start time.Time) { i.observe("update", start, err) }(time.Now())
	return i.next.Update(ctx, id, fields)
}

func (i *instrumented) DeleteMany(ctx context.Context, ids []record.ID) (err error) {
	defer func(start time.Time) { i.observe("delete", start, err) }(time.Now())
	return i.next.DeleteMany(ctx, ids)
}
