// Package metrics records statement execution metrics and flushes them to a
// Prometheus Pushgateway for short-lived commands.
package metrics

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"querydemo/internal/query"
)

// Statements counts executed statements by kind and outcome.
type Statements struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewStatements registers the statement collectors on reg.
func NewStatements(reg prometheus.Registerer) (*Statements, error) {
	m := &Statements{
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "database_statements_total",
				Help: "Total number of SQL statements executed.",
			},
			[]string{"kind", "success"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "database_statement_duration_seconds",
				Help:    "Duration of SQL statements in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
	}

	if err := reg.Register(m.total); err != nil {
		return nil, err
	}
	if err := reg.Register(m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// ObserveStatement implements database.Observer. A read that finds no row
// counts as a success.
func (m *Statements) ObserveStatement(kind query.Kind, elapsed time.Duration, err error) {
	success := "true"
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		success = "false"
	}
	m.total.WithLabelValues(string(kind), success).Inc()
	m.duration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

// Push sends everything gathered by g to the Pushgateway at url under job.
// An empty url is a no-op.
func Push(ctx context.Context, url, job string, g prometheus.Gatherer) error {
	if url == "" {
		return nil
	}
	client := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   5 * time.Second,
	}
	return push.New(url, job).
		Gatherer(g).
		Client(client).
		PushContext(ctx)
}
