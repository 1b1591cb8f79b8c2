package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/fieldserve/crewsched/core/metrics"
)

// PromSink records conflict checks in Prometheus metrics.
type PromSink struct {
	checks   *prometheus.CounterVec
	dayOff   prometheus.Counter
	latency  *prometheus.HistogramVec
	windows  *prometheus.HistogramVec
	snapshot prometheus.Gauge
}

// NewPromSink registers check metrics on the default Prometheus registerer.
// The Prometheus server should be started separately via StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	checks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crew_checks_total",
		Help: "Total number of conflict checks",
	}, []string{"conflict"})
	dayOff := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crew_day_off_hits_total",
		Help: "Checks that targeted a technician's day off",
	})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "crew_check_duration_seconds",
		Help:    "Time spent evaluating one conflict check",
		Buckets: prometheus.DefBuckets,
	}, []string{"conflict"})
	windows := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "crew_job_windows_extracted",
		Help:    "Number of canonical windows extracted per job",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
	}, []string{"shape"})
	snapshot := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "crew_snapshot_jobs",
		Help: "Number of jobs in the snapshot scanned by the last check",
	})

	if err := reg.Register(checks); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			checks = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(dayOff); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			dayOff = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(latency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			latency = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(windows); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			windows = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(snapshot); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			snapshot = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{checks: checks, dayOff: dayOff, latency: latency, windows: windows, snapshot: snapshot}, nil
}

// RecordCheck increments the counters for one evaluation.
func (s *PromSink) RecordCheck(ev coremetrics.CheckEvent) error {
	conflict := strconv.FormatBool(ev.HasConflict)
	s.checks.WithLabelValues(conflict).Inc()
	s.latency.WithLabelValues(conflict).Observe(ev.Elapsed.Seconds())
	s.windows.WithLabelValues(ev.Shape).Observe(float64(ev.Windows))
	if ev.DayOff {
		s.dayOff.Inc()
	}
	return nil
}

// RecordSnapshot sets the gauge to the scanned snapshot size.
func (s *PromSink) RecordSnapshot(ev coremetrics.SnapshotEvent) error {
	if s.snapshot != nil {
		s.snapshot.Set(float64(ev.Jobs))
	}
	return nil
}
