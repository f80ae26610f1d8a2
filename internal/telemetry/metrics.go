// Package telemetry exposes the batch driver's Prometheus metrics and an
// optional HTTP server to scrape them.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the counters and histogram the batch driver updates as it
// processes orders. It carries its own registry rather than the global
// default one so a palletopt process (and its tests) can construct more
// than one Metrics instance without a duplicate-registration panic.
type Metrics struct {
	registry *prometheus.Registry

	OrdersProcessed *prometheus.CounterVec
	ItemsPlaced     prometheus.Counter
	ItemsUnplaced   prometheus.Counter
	OrderDuration   prometheus.Histogram
}

// New constructs a Metrics instance with a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		OrdersProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "palletopt_orders_processed_total",
			Help: "Total orders processed, labeled by outcome.",
		}, []string{"outcome"}),
		ItemsPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "palletopt_items_placed_total",
			Help: "Total items successfully placed on a pallet.",
		}),
		ItemsUnplaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "palletopt_items_unplaced_total",
			Help: "Total items that never found a pallet.",
		}),
		OrderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "palletopt_order_duration_seconds",
			Help:    "Wall-clock time to search and place one order.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.OrdersProcessed, m.ItemsPlaced, m.ItemsUnplaced, m.OrderDuration)
	return m
}

// ObserveOrder records one order's outcome: its placed/unplaced item
// counts and the wall-clock time it took.
func (m *Metrics) ObserveOrder(outcome string, placed, unplaced int, seconds float64) {
	m.OrdersProcessed.WithLabelValues(outcome).Inc()
	m.ItemsPlaced.Add(float64(placed))
	m.ItemsUnplaced.Add(float64(unplaced))
	m.OrderDuration.Observe(seconds)
}

// Serve starts a blocking HTTP server exposing /metrics at addr. It
// returns when ctx is canceled or the server fails to start.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("telemetry: metrics server: %w", err)
	}
}
