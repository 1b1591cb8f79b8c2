package logging

import (
	"context"
	"time"

	"github.com/fieldserve/crewsched/core/model"
)

// CheckRecord captures one conflict evaluation and its outcome.
type CheckRecord struct {
	CheckID       string             `json:"check_id"`
	Timestamp     time.Time          `json:"timestamp"`
	TechnicianID  string             `json:"technician_id"`
	JobID         string             `json:"job_id"`
	Shape         string             `json:"shape"`
	Windows       []model.TimeWindow `json:"windows,omitempty"`
	HasConflict   bool               `json:"has_conflict"`
	ConflictJobID string             `json:"conflict_job_id,omitempty"`
	Reason        string             `json:"reason,omitempty"`
	DayOff        bool               `json:"day_off"`
}

// CheckQuery defines filters for retrieving records.
type CheckQuery struct {
	Start         time.Time
	End           time.Time
	TechnicianID  string
	ConflictsOnly bool
}

// LogStore persists CheckRecords and supports querying.
type LogStore interface {
	Append(ctx context.Context, rec CheckRecord) error
	Query(ctx context.Context, q CheckQuery) ([]CheckRecord, error)
	Close() error
}
