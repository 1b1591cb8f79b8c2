package events

import (
	"time"

	"github.com/fieldserve/crewsched/core/model"
)

// CheckEvent is published for every conflict evaluation.
type CheckEvent struct {
	CheckID      string
	TechnicianID string
	JobID        string
	HasConflict  bool
	DayOff       bool
	Time         time.Time
}

// ConflictEvent is published when an evaluation finds a double-booking. It
// carries enough context for downstream notifiers to alert the crew.
type ConflictEvent struct {
	CheckID       string           `json:"check_id"`
	TechnicianID  string           `json:"technician_id"`
	JobID         string           `json:"job_id"`
	ConflictJobID string           `json:"conflict_job_id"`
	Reason        string           `json:"reason"`
	Window        model.TimeWindow `json:"window"`
	Time          time.Time        `json:"time"`
}
