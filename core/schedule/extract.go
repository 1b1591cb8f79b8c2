package schedule

import (
	"time"

	"github.com/fieldserve/crewsched/core/model"
)

// Shape identifies which historical schedule representation a job record
// carries. Classification is structural; extraction may still yield no
// windows when the matched shape's fields fail to parse.
type Shape int

const (
	ShapeNone Shape = iota
	ShapeMultiDayBlocks
	ShapeMultiDaySchedule
	ShapeSingleInstant
	ShapeLegacySplit
)

func (s Shape) String() string {
	switch s {
	case ShapeMultiDayBlocks:
		return "multi_day_blocks"
	case ShapeMultiDaySchedule:
		return "multi_day_schedule"
	case ShapeSingleInstant:
		return "single_instant"
	case ShapeLegacySplit:
		return "legacy_split"
	default:
		return "none"
	}
}

// Classify returns the first schedule shape the record structurally
// satisfies. The order is load-bearing: records migrated between formats can
// satisfy more than one shape at once, and the first rule wins.
func Classify(job model.Job) Shape {
	if job.IsMultiDay && len(job.ScheduleBlocks) > 0 {
		return ShapeMultiDayBlocks
	}
	if len(job.MultiDaySchedule) > 0 {
		return ShapeMultiDaySchedule
	}
	if LooksLikeInstant(job.ScheduledTime) {
		return ShapeSingleInstant
	}
	if job.ScheduledDate != "" {
		return ShapeLegacySplit
	}
	return ShapeNone
}

// Extractor normalizes job records into canonical windows using a fixed
// fallback policy.
type Extractor struct {
	cfg Config
}

// NewExtractor creates an Extractor. Zero config fields take the historical
// defaults.
func NewExtractor(cfg Config) *Extractor {
	cfg.SetDefaults()
	return &Extractor{cfg: cfg}
}

var defaultExtractor = NewExtractor(Config{})

// ExtractWindows normalizes a job record with the default policy. It is
// total: any job value, including the zero value, yields a (possibly empty)
// slice and never a panic.
func ExtractWindows(job model.Job) []model.TimeWindow {
	return defaultExtractor.Windows(job)
}

// Windows returns the job's canonical windows, possibly none.
func (e *Extractor) Windows(job model.Job) []model.TimeWindow {
	ws, _ := e.Extract(job)
	return ws
}

// Extract returns the job's canonical windows together with the shape that
// produced them. Shapes are tried in the fixed precedence order; the
// multi-day blocks shape is authoritative once matched and returns even when
// every block is malformed, while an explicit multi-day schedule that yields
// nothing falls through to the later shapes.
func (e *Extractor) Extract(job model.Job) ([]model.TimeWindow, Shape) {
	if job.IsMultiDay && len(job.ScheduleBlocks) > 0 {
		return e.blockWindows(job.ScheduleBlocks), ShapeMultiDayBlocks
	}
	if len(job.MultiDaySchedule) > 0 {
		if ws := scheduleWindows(job.MultiDaySchedule); len(ws) > 0 {
			return ws, ShapeMultiDaySchedule
		}
	}
	if LooksLikeInstant(job.ScheduledTime) {
		if w, ok := e.instantWindow(job); ok {
			return []model.TimeWindow{w}, ShapeSingleInstant
		}
	}
	if job.ScheduledDate != "" {
		if w, ok := e.legacyWindow(job); ok {
			return []model.TimeWindow{w}, ShapeLegacySplit
		}
	}
	return nil, ShapeNone
}

func (e *Extractor) defaultSpan() time.Duration {
	return time.Duration(e.cfg.DefaultDurationMinutes) * time.Minute
}

// jobSpan returns the job's estimated length, falling back to the configured
// default duration.
func (e *Extractor) jobSpan(job model.Job) time.Duration {
	if job.EstimatedDuration > 0 {
		return time.Duration(job.EstimatedDuration) * time.Minute
	}
	return e.defaultSpan()
}

// blockWindows handles multi-day block lists. Malformed blocks are skipped
// individually so one bad entry does not discard the rest.
func (e *Extractor) blockWindows(blocks []model.ScheduleBlock) []model.TimeWindow {
	var ws []model.TimeWindow
	for _, b := range blocks {
		if b.Date == "" || b.StartTime == "" {
			continue
		}
		date, ok := ParseDate(b.Date)
		if !ok {
			continue
		}
		start, ok := ParseTimeOfDay(date, b.StartTime)
		if !ok {
			continue
		}
		end := start.Add(e.defaultSpan())
		if b.EndTime != "" {
			end, ok = ParseTimeOfDay(date, b.EndTime)
			if !ok {
				continue
			}
		}
		w := model.TimeWindow{Start: start, End: end}
		if w.Valid() {
			ws = append(ws, w)
		}
	}
	return ws
}

func scheduleWindows(days []model.ScheduleDay) []model.TimeWindow {
	var ws []model.TimeWindow
	for _, d := range days {
		start, ok := ParseInstant(d.StartTime)
		if !ok {
			continue
		}
		end, ok := ParseInstant(d.EndTime)
		if !ok {
			continue
		}
		w := model.TimeWindow{Start: start, End: end}
		if w.Valid() {
			ws = append(ws, w)
		}
	}
	return ws
}

func (e *Extractor) instantWindow(job model.Job) (model.TimeWindow, bool) {
	start, ok := ParseInstant(job.ScheduledTime)
	if !ok {
		return model.TimeWindow{}, false
	}
	end, ok := ParseInstant(job.ScheduledEndTime)
	if !ok {
		end = start.Add(e.jobSpan(job))
	}
	w := model.TimeWindow{Start: start, End: end}
	return w, w.Valid()
}

// legacyWindow handles the oldest format: a date field plus separate
// time-of-day strings. Records missing the start time default to the
// configured business-day start.
func (e *Extractor) legacyWindow(job model.Job) (model.TimeWindow, bool) {
	date, ok := ParseDate(job.ScheduledDate)
	if !ok {
		return model.TimeWindow{}, false
	}

	var start time.Time
	switch {
	case job.ScheduledTime == "":
		start, ok = ParseTimeOfDay(date, e.cfg.DayStartTime)
	default:
		start, ok = ParseTimeOfDay(date, job.ScheduledTime)
		if !ok {
			start, ok = ParseInstant(job.ScheduledTime)
		}
	}
	if !ok {
		return model.TimeWindow{}, false
	}

	end := start.Add(e.jobSpan(job))
	if job.ScheduledEndTime != "" {
		end, ok = ParseTimeOfDay(date, job.ScheduledEndTime)
		if !ok {
			end, ok = ParseInstant(job.ScheduledEndTime)
		}
		if !ok {
			return model.TimeWindow{}, false
		}
	}

	w := model.TimeWindow{Start: start, End: end}
	return w, w.Valid()
}
