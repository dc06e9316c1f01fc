package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	runsTotal    *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
	signalsTotal *prometheus.CounterVec
	candidates   prometheus.Gauge
	errorsTotal  *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		runsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flipscout_runs_total",
				Help: "Total number of scoring runs by outcome",
			},
			[]string{"outcome"},
		),
		runDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flipscout_run_duration_seconds",
				Help:    "Duration of scoring runs in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		signalsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flipscout_signals_total",
				Help: "Total number of signals produced by status",
			},
			[]string{"status"},
		),
		candidates: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "flipscout_candidates_last_run",
				Help: "Number of candidates evaluated in the last run",
			},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flipscout_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordRun records one scoring run and its duration.
func (r *Recorder) RecordRun(outcome string, seconds float64) {
	r.runsTotal.WithLabelValues(outcome).Inc()
	r.runDuration.WithLabelValues(outcome).Observe(seconds)
}

// RecordCandidates records how many candidates the last run evaluated.
func (r *Recorder) RecordCandidates(n int) {
	r.candidates.Set(float64(n))
}

// RecordSignal records a produced signal by status.
func (r *Recorder) RecordSignal(status string) {
	r.signalsTotal.WithLabelValues(status).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
