package schedule

import (
	"testing"
	"time"

	"github.com/fieldserve/crewsched/core/model"
)

func localTime(hour, min int) time.Time {
	return time.Date(2024, 6, 1, hour, min, 0, 0, time.Local)
}

func TestExtractWindows_MultiDayBlocks(t *testing.T) {
	job := model.Job{
		ID:         "j1",
		IsMultiDay: true,
		ScheduleBlocks: []model.ScheduleBlock{
			{Date: "2024-06-01", StartTime: "09:00", EndTime: "11:00"},
			{Date: "2024-06-02", StartTime: "08:00"},
		},
	}
	ws := ExtractWindows(job)
	if len(ws) != 2 {
		t.Fatalf("expected 2 windows got %d", len(ws))
	}
	if !ws[0].Start.Equal(localTime(9, 0)) || !ws[0].End.Equal(localTime(11, 0)) {
		t.Errorf("first block window = %v", ws[0])
	}
	// Second block has no end time: the 2 hour default applies.
	if got := ws[1].Duration(); got != 2*time.Hour {
		t.Errorf("default block duration = %v, want 2h", got)
	}
}

func TestExtractWindows_MultiDayBlocksSkipsMalformed(t *testing.T) {
	job := model.Job{
		ID:         "j1",
		IsMultiDay: true,
		ScheduleBlocks: []model.ScheduleBlock{
			{Date: "not-a-date", StartTime: "09:00"},
			{Date: "2024-06-01", StartTime: "garbage"},
			{Date: "2024-06-01", StartTime: "09:00", EndTime: "xx"},
			{Date: "2024-06-01", StartTime: "09:00", EndTime: "10:00"},
		},
	}
	ws := ExtractWindows(job)
	if len(ws) != 1 {
		t.Fatalf("expected only the valid block, got %d windows", len(ws))
	}
}

func TestExtractWindows_MultiDayBlocksAuthoritative(t *testing.T) {
	// Once the multi-day shape matches, legacy fields on the same record are
	// ignored even when every block is malformed.
	job := model.Job{
		ID:             "j1",
		IsMultiDay:     true,
		ScheduleBlocks: []model.ScheduleBlock{{Date: "bad", StartTime: "bad"}},
		ScheduledDate:  "2024-06-01",
		ScheduledTime:  "09:00",
	}
	if ws := ExtractWindows(job); len(ws) != 0 {
		t.Fatalf("expected no windows, got %v", ws)
	}
}

func TestExtractWindows_PrecedenceOverLegacy(t *testing.T) {
	job := model.Job{
		ID:             "j1",
		IsMultiDay:     true,
		ScheduleBlocks: []model.ScheduleBlock{{Date: "2024-06-01", StartTime: "09:00", EndTime: "11:00"}},
		ScheduledDate:  "2024-12-25",
		ScheduledTime:  "23:00",
	}
	ws := ExtractWindows(job)
	if len(ws) != 1 {
		t.Fatalf("expected 1 window got %d", len(ws))
	}
	if !ws[0].Start.Equal(localTime(9, 0)) || !ws[0].End.Equal(localTime(11, 0)) {
		t.Errorf("window = %v, legacy fields must not contribute", ws[0])
	}
}

func TestExtractWindows_MultiDaySchedule(t *testing.T) {
	job := model.Job{
		ID: "j1",
		MultiDaySchedule: []model.ScheduleDay{
			{StartTime: "2024-06-01T09:00:00Z", EndTime: "2024-06-01T12:00:00Z"},
			{StartTime: "bad", EndTime: "2024-06-02T12:00:00Z"},
			{StartTime: "2024-06-02T09:00:00Z", EndTime: "2024-06-02T12:00:00Z"},
		},
	}
	ws := ExtractWindows(job)
	if len(ws) != 2 {
		t.Fatalf("expected 2 windows got %d", len(ws))
	}
}

func TestExtractWindows_MultiDayScheduleFallsThrough(t *testing.T) {
	// An explicit day list where nothing parses falls through to the single
	// instant shape.
	job := model.Job{
		ID:               "j1",
		MultiDaySchedule: []model.ScheduleDay{{StartTime: "bad", EndTime: "worse"}},
		ScheduledTime:    "2024-06-01T14:00:00Z",
	}
	ws := ExtractWindows(job)
	if len(ws) != 1 {
		t.Fatalf("expected fall-through window got %d", len(ws))
	}
	want := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	if !ws[0].Start.Equal(want) {
		t.Errorf("start = %v want %v", ws[0].Start, want)
	}
}

func TestExtractWindows_SingleInstantDefaultDuration(t *testing.T) {
	job := model.Job{ID: "j1", ScheduledTime: "2024-06-01T14:00:00Z"}
	ws := ExtractWindows(job)
	if len(ws) != 1 {
		t.Fatalf("expected 1 window got %d", len(ws))
	}
	if got := ws[0].Duration(); got != 120*time.Minute {
		t.Errorf("duration = %v, want 120m", got)
	}
}

func TestExtractWindows_SingleInstantExplicitEnd(t *testing.T) {
	job := model.Job{
		ID:               "j1",
		ScheduledTime:    "2024-06-01T14:00:00Z",
		ScheduledEndTime: "2024-06-01T15:30:00Z",
	}
	ws := ExtractWindows(job)
	if len(ws) != 1 {
		t.Fatalf("expected 1 window got %d", len(ws))
	}
	if got := ws[0].Duration(); got != 90*time.Minute {
		t.Errorf("duration = %v, want 90m", got)
	}
}

func TestExtractWindows_SingleInstantEstimatedDuration(t *testing.T) {
	job := model.Job{ID: "j1", ScheduledTime: "2024-06-01T14:00:00Z", EstimatedDuration: 45}
	ws := ExtractWindows(job)
	if len(ws) != 1 {
		t.Fatalf("expected 1 window got %d", len(ws))
	}
	if got := ws[0].Duration(); got != 45*time.Minute {
		t.Errorf("duration = %v, want 45m", got)
	}
}

func TestExtractWindows_LegacySplit(t *testing.T) {
	job := model.Job{
		ID:               "j1",
		ScheduledDate:    "2024-06-01",
		ScheduledTime:    "9:00 AM",
		ScheduledEndTime: "11:30 AM",
	}
	ws := ExtractWindows(job)
	if len(ws) != 1 {
		t.Fatalf("expected 1 window got %d", len(ws))
	}
	if !ws[0].Start.Equal(localTime(9, 0)) || !ws[0].End.Equal(localTime(11, 30)) {
		t.Errorf("window = %v", ws[0])
	}
}

func TestExtractWindows_LegacyDayStartDefault(t *testing.T) {
	job := model.Job{ID: "j1", ScheduledDate: "2024-06-01"}
	ws := ExtractWindows(job)
	if len(ws) != 1 {
		t.Fatalf("expected 1 window got %d", len(ws))
	}
	if !ws[0].Start.Equal(localTime(7, 30)) {
		t.Errorf("start = %v, want the 07:30 day-start default", ws[0].Start)
	}
	if got := ws[0].Duration(); got != 120*time.Minute {
		t.Errorf("duration = %v, want the 120m default", got)
	}
}

func TestExtractWindows_LegacyUnparsableEnd(t *testing.T) {
	job := model.Job{
		ID:               "j1",
		ScheduledDate:    "2024-06-01",
		ScheduledTime:    "09:00",
		ScheduledEndTime: "whenever",
	}
	if ws := ExtractWindows(job); len(ws) != 0 {
		t.Fatalf("expected no windows when the explicit end fails to parse, got %v", ws)
	}
}

func TestExtractWindows_Total(t *testing.T) {
	jobs := []model.Job{
		{},
		{ID: "j1"},
		{ID: "j2", ScheduledTime: "soonish"},
		{ID: "j3", IsMultiDay: true},
		{ID: "j4", ScheduledDate: "tomorrow"},
		{ID: "j5", ScheduledTime: "2024-06-01T14:00:00Z", ScheduledEndTime: "2024-06-01T13:00:00Z"},
	}
	for _, job := range jobs {
		// Must not panic, and every window it does emit must be valid.
		for _, w := range ExtractWindows(job) {
			if !w.Valid() {
				t.Errorf("job %s emitted invalid window %v", job.ID, w)
			}
		}
	}
	if ws := ExtractWindows(jobs[5]); len(ws) != 0 {
		t.Errorf("inverted window must be discarded, got %v", ws)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		job  model.Job
		want Shape
	}{
		{"empty", model.Job{}, ShapeNone},
		{"blocks", model.Job{IsMultiDay: true, ScheduleBlocks: []model.ScheduleBlock{{Date: "2024-06-01", StartTime: "09:00"}}}, ShapeMultiDayBlocks},
		{"flag without blocks", model.Job{IsMultiDay: true, ScheduledDate: "2024-06-01"}, ShapeLegacySplit},
		{"schedule", model.Job{MultiDaySchedule: []model.ScheduleDay{{StartTime: "a", EndTime: "b"}}}, ShapeMultiDaySchedule},
		{"instant", model.Job{ScheduledTime: "2024-06-01T09:00:00Z"}, ShapeSingleInstant},
		{"legacy", model.Job{ScheduledDate: "2024-06-01", ScheduledTime: "09:00"}, ShapeLegacySplit},
	}
	for _, c := range cases {
		if got := Classify(c.job); got != c.want {
			t.Errorf("%s: Classify = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestExtractorCustomConfig(t *testing.T) {
	ex := NewExtractor(Config{DefaultDurationMinutes: 60, DayStartTime: "08:00"})
	ws := ex.Windows(model.Job{ID: "j1", ScheduledDate: "2024-06-01"})
	if len(ws) != 1 {
		t.Fatalf("expected 1 window got %d", len(ws))
	}
	if !ws[0].Start.Equal(localTime(8, 0)) {
		t.Errorf("start = %v, want configured 08:00 day start", ws[0].Start)
	}
	if got := ws[0].Duration(); got != 60*time.Minute {
		t.Errorf("duration = %v, want configured 60m default", got)
	}
}
