package conflict

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fieldserve/crewsched/core/conflict/logging"
	"github.com/fieldserve/crewsched/core/events"
	"github.com/fieldserve/crewsched/core/logger"
	"github.com/fieldserve/crewsched/core/metrics"
	"github.com/fieldserve/crewsched/core/model"
	"github.com/fieldserve/crewsched/core/schedule"
	"github.com/fieldserve/crewsched/internal/eventbus"
)

// CheckRequest carries one assignment to evaluate against a snapshot of the
// technician's existing jobs.
type CheckRequest struct {
	TechnicianID string
	Job          model.Job
	ExistingJobs []model.Job
	Technician   *model.Technician
	Timezone     string
}

// CheckResponse is the combined result of the double-booking and day-off
// checks.
type CheckResponse struct {
	CheckID      string                   `json:"check_id"`
	Conflict     model.ConflictResult     `json:"conflict"`
	Availability model.AvailabilityResult `json:"availability"`
	Elapsed      time.Duration            `json:"elapsed"`
}

// Manager wraps the pure checks with metrics, events and audit logging. The
// engine itself stays total; failures in any observability path are logged
// and never surface to the caller.
type Manager struct {
	extractor *schedule.Extractor
	checker   *Checker
	sink      metrics.MetricsSink
	bus       eventbus.EventBus
	conflicts *eventbus.TypedBus[events.ConflictEvent]
	store     logging.LogStore
	log       logger.Logger
}

// NewManager creates a Manager. CheckEvents fan out on bus; detected
// double-bookings additionally go to the typed conflicts bus feeding the
// notifier path. sink, bus, conflicts, store and log may each be nil.
func NewManager(cfg schedule.Config, sink metrics.MetricsSink, bus eventbus.EventBus, conflicts *eventbus.TypedBus[events.ConflictEvent], store logging.LogStore, log logger.Logger) *Manager {
	ex := schedule.NewExtractor(cfg)
	return &Manager{
		extractor: ex,
		checker:   &Checker{extractor: ex},
		sink:      sink,
		bus:       bus,
		conflicts: conflicts,
		store:     store,
		log:       log,
	}
}

// Check evaluates the request. The day-off check uses the calendar day of
// the job's first resolved window; a job with no resolvable schedule is
// reported as no-conflict and leaves the technician available.
func (m *Manager) Check(ctx context.Context, req CheckRequest) CheckResponse {
	started := time.Now()
	checkID := uuid.NewString()

	windows, shape := m.extractor.Extract(req.Job)
	res := m.checker.CheckCrewConflict(req.TechnicianID, &req.Job, req.ExistingJobs, req.Timezone)

	avail := model.AvailabilityResult{Available: true}
	if len(windows) > 0 {
		avail = CheckDayOff(req.Technician, windows[0].Start)
	}

	elapsed := time.Since(started)
	m.record(ctx, checkID, req, shape, windows, res, avail, elapsed)

	return CheckResponse{CheckID: checkID, Conflict: res, Availability: avail, Elapsed: elapsed}
}

func (m *Manager) record(ctx context.Context, checkID string, req CheckRequest, shape schedule.Shape, windows []model.TimeWindow, res model.ConflictResult, avail model.AvailabilityResult, elapsed time.Duration) {
	now := time.Now()
	if m.sink != nil {
		ev := metrics.CheckEvent{
			TechnicianID: req.TechnicianID,
			JobID:        req.Job.ID,
			Shape:        shape.String(),
			Windows:      len(windows),
			HasConflict:  res.HasConflict,
			DayOff:       !avail.Available,
			Elapsed:      elapsed,
			Time:         now,
		}
		if err := m.sink.RecordCheck(ev); err != nil && m.log != nil {
			m.log.Errorf("record check metrics: %v", err)
		}
		if rec, ok := m.sink.(metrics.SnapshotRecorder); ok {
			_ = rec.RecordSnapshot(metrics.SnapshotEvent{Jobs: len(req.ExistingJobs), Component: "conflict_manager", Time: now})
		}
	}
	if m.bus != nil {
		m.bus.Publish(events.CheckEvent{
			CheckID:      checkID,
			TechnicianID: req.TechnicianID,
			JobID:        req.Job.ID,
			HasConflict:  res.HasConflict,
			DayOff:       !avail.Available,
			Time:         now,
		})
	}
	if m.conflicts != nil && res.HasConflict {
		ev := events.ConflictEvent{
			CheckID:      checkID,
			TechnicianID: req.TechnicianID,
			JobID:        req.Job.ID,
			Reason:       res.Reason,
			Time:         now,
		}
		if res.ConflictingJob != nil {
			ev.ConflictJobID = res.ConflictingJob.ID
		}
		if len(windows) > 0 {
			ev.Window = windows[0]
		}
		m.conflicts.Publish(ev)
	}
	if m.store != nil {
		rec := logging.CheckRecord{
			CheckID:      checkID,
			Timestamp:    now,
			TechnicianID: req.TechnicianID,
			JobID:        req.Job.ID,
			Shape:        shape.String(),
			Windows:      windows,
			HasConflict:  res.HasConflict,
			Reason:       res.Reason,
			DayOff:       !avail.Available,
		}
		if res.ConflictingJob != nil {
			rec.ConflictJobID = res.ConflictingJob.ID
		}
		if err := m.store.Append(ctx, rec); err != nil && m.log != nil {
			m.log.Errorf("append check log: %v", err)
		}
	}
}

// Close releases resources held by the manager.
func (m *Manager) Close() error {
	if m.bus != nil {
		m.bus.Close()
	}
	if m.conflicts != nil {
		m.conflicts.Close()
	}
	if m.store != nil {
		return m.store.Close()
	}
	return nil
}
