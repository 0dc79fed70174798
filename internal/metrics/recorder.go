// Package metrics records run statistics for the node_exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mt5-data/internal/terminal"
)

// Recorder collects per-run counters on a private registry.
type Recorder struct {
	registry      *prometheus.Registry
	exports       *prometheus.CounterVec
	bars          *prometheus.CounterVec
	strategies    *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	lastRun       prometheus.Gauge
}

// New creates a recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		exports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mt5data_exports_total",
				Help: "Export attempts per symbol and timeframe by status",
			},
			[]string{"symbol", "timeframe", "status"},
		),
		bars: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mt5data_bars_total",
				Help: "Bars written per symbol and timeframe",
			},
			[]string{"symbol", "timeframe"},
		),
		strategies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mt5data_fetch_strategy_total",
				Help: "Fetch strategy attempts by result (ok, empty, error)",
			},
			[]string{"timeframe", "strategy", "result"},
		),
		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mt5data_fetch_duration_seconds",
				Help:    "Duration of terminal bar requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"strategy"},
		),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mt5data_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		}),
	}
	r.registry.MustRegister(r.exports, r.bars, r.strategies, r.fetchDuration, r.lastRun)
	return r
}

// ObserveFetch implements mt5.Observer.
func (r *Recorder) ObserveFetch(tf string, s terminal.Strategy, rows int, err error, elapsed time.Duration) {
	result := "ok"
	switch {
	case err != nil:
		result = "error"
	case rows == 0:
		result = "empty"
	}
	r.strategies.WithLabelValues(tf, string(s), result).Inc()
	r.fetchDuration.WithLabelValues(string(s)).Observe(elapsed.Seconds())
}

// RecordExport records the outcome of one (symbol, timeframe) pair.
func (r *Recorder) RecordExport(symbol, tf string, bars int, err error) {
	if err != nil {
		r.exports.WithLabelValues(symbol, tf, "failed").Inc()
		return
	}
	r.exports.WithLabelValues(symbol, tf, "ok").Inc()
	r.bars.WithLabelValues(symbol, tf).Add(float64(bars))
}

// Finish stamps the run end time.
func (r *Recorder) Finish(now time.Time) {
	r.lastRun.Set(float64(now.Unix()))
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer { return r.registry }

// WriteTextfile writes all metrics to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
