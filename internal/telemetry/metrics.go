package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the sweep collectors on a private registry so tests and
// repeated runs never collide with the global one.
type Metrics struct {
	registry *prometheus.Registry

	Attempts        *prometheus.CounterVec
	AttemptDuration *prometheus.HistogramVec
	Combinations    *prometheus.CounterVec
}

// NewMetrics creates and registers all sweep metrics.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.Attempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casebench_attempts_total",
			Help: "Converter invocations by variant and outcome",
		},
		[]string{"variant", "status"},
	)

	m.AttemptDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "casebench_attempt_duration_seconds",
			Help:    "Wall-clock duration of converter invocations",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		},
		[]string{"variant"},
	)

	m.Combinations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casebench_combinations_total",
			Help: "Parameter combinations by outcome (retained or skipped)",
		},
		[]string{"status"},
	)

	m.registry.MustRegister(m.Attempts, m.AttemptDuration, m.Combinations)
	return m
}

// ObserveAttempt records one converter invocation.
func (m *Metrics) ObserveAttempt(variant string, ok bool, elapsed time.Duration) {
	status := "ok"
	if !ok {
		status = "failed"
	}
	m.Attempts.WithLabelValues(variant, status).Inc()
	m.AttemptDuration.WithLabelValues(variant).Observe(elapsed.Seconds())
}

// ObserveCombination records whether a combination made it into the results.
func (m *Metrics) ObserveCombination(retained bool) {
	status := "retained"
	if !retained {
		status = "skipped"
	}
	m.Combinations.WithLabelValues(status).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// WriteTextfile dumps the current values for the node_exporter textfile
// collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

// StartMetricsServer serves /metrics on addr until ctx is cancelled.
func StartMetricsServer(ctx context.Context, addr string, m *Metrics) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("Starting metrics server", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
