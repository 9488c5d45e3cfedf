package storage

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors shared by every instrumented repository.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics registers the repository collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "userbooks",
			Subsystem: "repository",
			Name:      "operations_total",
			Help:      "Repository operations by backend, entity, operation and result.",
		}, []string{"backend", "entity", "op", "result"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "userbooks",
			Subsystem: "repository",
			Name:      "operation_duration_seconds",
			Help:      "Repository operation latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"backend", "entity", "op"}),
	}
}

// Operations exposes the operation counter, mainly for assertions in tests.
func (m *Metrics) Operations() *prometheus.CounterVec {
	return m.operations
}

func (m *Metrics) observe(backend, entity, op string, started time.Time, err error) {
	result := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	m.operations.WithLabelValues(backend, entity, op, result).Inc()
	m.duration.WithLabelValues(backend, entity, op).Observe(time.Since(started).Seconds())
}

type instrumented[E any, K comparable] struct {
	next    Repository[E, K]
	metrics *Metrics
	backend string
	entity  string
}

// Instrument decorates next so that every call is counted and timed.
// A nil metrics returns next unchanged.
func Instrument[E any, K comparable](next Repository[E, K], metrics *Metrics, backend, entity string) Repository[E, K] {
	if metrics == nil {
		return next
	}
	return &instrumented[E, K]{next: next, metrics: metrics, backend: backend, entity: entity}
}

func (r *instrumented[E, K]) Save(ctx context.Context, entity E) (E, error) {
	started := time.Now()
	saved, err := r.next.Save(ctx, entity)
	r.metrics.observe(r.backend, r.entity, "save", started, err)
	return saved, err
}

func (r *instrumented[E, K]) FindByID(ctx context.Context, id K) (E, bool, error) {
	started := time.Now()
	entity, found, err := r.next.FindByID(ctx, id)
	r.metrics.observe(r.backend, r.entity, "find_by_id", started, err)
	return entity, found, err
}

func (r *instrumented[E, K]) FindAll(ctx context.Context) ([]E, error) {
	started := time.Now()
	all, err := r.next.FindAll(ctx)
	r.metrics.observe(r.backend, r.entity, "find_all", started, err)
	return all, err
}

func (r *instrumented[E, K]) ExistsByID(ctx context.Context, id K) (bool, error) {
	started := time.Now()
	exists, err := r.next.ExistsByID(ctx, id)
	r.metrics.observe(r.backend, r.entity, "exists_by_id", started, err)
	return exists, err
}

func (r *instrumented[E, K]) DeleteByID(ctx context.Context, id K) error {
	started := time.Now()
	err := r.next.DeleteByID(ctx, id)
	r.metrics.observe(r.backend, r.entity, "delete_by_id", started, err)
	return err
}
