package conflict

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fieldserve/crewsched/core/conflict/logging"
	"github.com/fieldserve/crewsched/core/events"
	"github.com/fieldserve/crewsched/core/metrics"
	"github.com/fieldserve/crewsched/core/model"
	"github.com/fieldserve/crewsched/core/schedule"
	"github.com/fieldserve/crewsched/internal/eventbus"
)

type testBuses struct {
	bus       *eventbus.Bus
	conflicts *eventbus.TypedBus[events.ConflictEvent]
}

func newTestManager(t *testing.T) (*Manager, logging.LogStore, testBuses) {
	t.Helper()
	store, err := logging.NewJSONLStore(filepath.Join(t.TempDir(), "checks.log"))
	if err != nil {
		t.Fatalf("new jsonl store: %v", err)
	}
	buses := testBuses{
		bus:       eventbus.New(),
		conflicts: eventbus.NewTyped[events.ConflictEvent](),
	}
	mgr := NewManager(schedule.Config{}, metrics.NopSink{}, buses.bus, buses.conflicts, store, nil)
	return mgr, store, buses
}

func techWithDayOff(day string) *model.Technician {
	off := false
	return &model.Technician{
		ID:           "t1",
		WorkingHours: map[string]model.WorkingDay{day: {Enabled: &off}},
	}
}

func TestManagerCheck_NoConflict(t *testing.T) {
	mgr, store, _ := newTestManager(t)
	defer func() { _ = mgr.Close() }()

	resp := mgr.Check(context.Background(), CheckRequest{
		TechnicianID: "t1",
		Job:          instantJob("new", "2024-06-01T09:00:00Z", "2024-06-01T10:00:00Z"),
		ExistingJobs: []model.Job{},
	})
	if resp.CheckID == "" {
		t.Fatalf("check id must be assigned")
	}
	if resp.Conflict.HasConflict {
		t.Fatalf("unexpected conflict: %s", resp.Conflict.Reason)
	}
	if !resp.Availability.Available {
		t.Errorf("expected available")
	}

	recs, err := store.Query(context.Background(), logging.CheckQuery{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 audit record got %d", len(recs))
	}
	if recs[0].CheckID != resp.CheckID || recs[0].Shape != "single_instant" {
		t.Errorf("record = %+v", recs[0])
	}
}

func TestManagerCheck_ConflictPublishesEvents(t *testing.T) {
	mgr, _, buses := newTestManager(t)
	defer func() { _ = mgr.Close() }()

	checkSub := buses.bus.Subscribe()
	conflictSub := buses.conflicts.Subscribe()

	resp := mgr.Check(context.Background(), CheckRequest{
		TechnicianID: "t1",
		Job:          instantJob("new", "2024-06-01T10:00:00Z", "2024-06-01T12:00:00Z"),
		ExistingJobs: []model.Job{instantJob("old", "2024-06-01T11:00:00Z", "2024-06-01T13:00:00Z")},
	})
	if !resp.Conflict.HasConflict {
		t.Fatalf("expected a conflict")
	}

	timeout := time.After(time.Second)
	select {
	case ev := <-checkSub:
		ce, ok := ev.(events.CheckEvent)
		if !ok || ce.CheckID != resp.CheckID || !ce.HasConflict {
			t.Errorf("check event = %+v", ev)
		}
	case <-timeout:
		t.Fatalf("check event not delivered")
	}
	select {
	case ev := <-conflictSub:
		if ev.ConflictJobID != "old" || ev.Reason == "" {
			t.Errorf("conflict event = %+v", ev)
		}
		if ev.CheckID != resp.CheckID {
			t.Errorf("conflict event check id = %q want %q", ev.CheckID, resp.CheckID)
		}
	case <-timeout:
		t.Fatalf("conflict event not delivered")
	}
}

func TestManagerCheck_NoConflictEventWhenClean(t *testing.T) {
	mgr, _, buses := newTestManager(t)
	defer func() { _ = mgr.Close() }()

	conflictSub := buses.conflicts.Subscribe()
	mgr.Check(context.Background(), CheckRequest{
		TechnicianID: "t1",
		Job:          instantJob("new", "2024-06-01T09:00:00Z", "2024-06-01T10:00:00Z"),
		ExistingJobs: []model.Job{},
	})
	select {
	case ev := <-conflictSub:
		t.Fatalf("unexpected conflict event %+v", ev)
	default:
	}
}

func TestManagerCheck_DayOff(t *testing.T) {
	mgr, store, _ := newTestManager(t)
	defer func() { _ = mgr.Close() }()

	// 2024-06-03 is a Monday.
	resp := mgr.Check(context.Background(), CheckRequest{
		TechnicianID: "t1",
		Job:          instantJob("new", "2024-06-03T09:00:00Z", "2024-06-03T10:00:00Z"),
		ExistingJobs: []model.Job{},
		Technician:   techWithDayOff("monday"),
	})
	if resp.Availability.Available {
		t.Fatalf("expected monday flagged as a day off")
	}
	if resp.Availability.DayName != "monday" {
		t.Errorf("day name = %q", resp.Availability.DayName)
	}

	recs, err := store.Query(context.Background(), logging.CheckQuery{TechnicianID: "t1"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 1 || !recs[0].DayOff {
		t.Fatalf("records = %+v", recs)
	}
}

func TestManagerCheck_UnschedulableJob(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	defer func() { _ = mgr.Close() }()

	resp := mgr.Check(context.Background(), CheckRequest{
		TechnicianID: "t1",
		Job:          model.Job{ID: "new"},
		Technician:   techWithDayOff("monday"),
	})
	if resp.Conflict.HasConflict {
		t.Errorf("job with no schedule cannot conflict")
	}
	if !resp.Availability.Available {
		t.Errorf("no resolved window means no day-off verdict")
	}
}
