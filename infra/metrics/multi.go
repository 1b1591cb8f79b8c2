package metrics

import coremetrics "github.com/fieldserve/crewsched/core/metrics"

// MultiSink fans check events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordCheck forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordCheck(ev coremetrics.CheckEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordCheck(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordSnapshot forwards snapshot events to sinks that record them.
func (m *MultiSink) RecordSnapshot(ev coremetrics.SnapshotEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.SnapshotRecorder); ok {
			if err := rec.RecordSnapshot(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
