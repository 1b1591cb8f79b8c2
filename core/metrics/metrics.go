package metrics

import "time"

// CheckEvent describes one conflict evaluation for observability purposes.
type CheckEvent struct {
	TechnicianID string
	JobID        string
	Shape        string
	Windows      int
	HasConflict  bool
	DayOff       bool
	Elapsed      time.Duration
	Time         time.Time
}

// MetricsSink records conflict checks.
type MetricsSink interface {
	RecordCheck(ev CheckEvent) error
}

// SnapshotEvent reports the size of the job snapshot scanned by a check.
type SnapshotEvent struct {
	Jobs      int
	Component string
	Time      time.Time
}

// SnapshotRecorder is implemented by sinks able to record snapshot sizes.
type SnapshotRecorder interface {
	RecordSnapshot(ev SnapshotEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordCheck(CheckEvent) error       { return nil }
func (NopSink) RecordSnapshot(SnapshotEvent) error { return nil }
