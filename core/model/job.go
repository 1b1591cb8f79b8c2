package model

// Job statuses as stored in the document store. Cancelled and completed jobs
// are ignored by conflict detection.
const (
	StatusPending    = "pending"
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// DefaultDurationMinutes is the fallback job length applied when a record
// carries no end time and no estimated duration.
const DefaultDurationMinutes = 120

// ScheduleBlock is one day entry of a multi-day job: a date plus
// time-of-day strings.
type ScheduleBlock struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime,omitempty"`
}

// ScheduleDay is one day entry of the explicit multi-day schedule format,
// both bounds as ISO instants.
type ScheduleDay struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// CrewMember is the embedded crew-assignment object some historical records
// carry instead of a plain id list.
type CrewMember struct {
	TechID string `json:"techId"`
	Name   string `json:"name,omitempty"`
}

// Job is the schedule-bearing view of a job record. Records accumulated four
// incompatible schedule representations over the system's evolution; a record
// carries one of them by the precedence implemented in core/schedule. All
// fields are read-only to the engine.
type Job struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`

	// Shape 1: multi-day blocks.
	IsMultiDay     bool            `json:"isMultiDay,omitempty"`
	ScheduleBlocks []ScheduleBlock `json:"scheduleBlocks,omitempty"`

	// Shape 2: explicit multi-day schedule with ISO bounds.
	MultiDaySchedule []ScheduleDay `json:"multiDaySchedule,omitempty"`

	// Shape 3: single ISO instant. In shape 4 ScheduledTime instead holds a
	// time-of-day string combined with ScheduledDate.
	ScheduledTime    string `json:"scheduledTime,omitempty"`
	ScheduledEndTime string `json:"scheduledEndTime,omitempty"`

	// Shape 4: legacy split fields.
	ScheduledDate string `json:"scheduledDate,omitempty"`

	// EstimatedDuration is in minutes; zero means unset.
	EstimatedDuration int `json:"estimatedDuration,omitempty"`

	AssignedCrewIDs []string     `json:"assignedCrewIds,omitempty"`
	AssignedCrew    []CrewMember `json:"assignedCrew,omitempty"`
	AssignedTechID  string       `json:"assignedTechId,omitempty"`
}

// IsActive reports whether the job still occupies its technicians' time.
func (j Job) IsActive() bool {
	return j.Status != StatusCancelled && j.Status != StatusCompleted
}

// DurationMinutes returns the estimated duration with the 120 minute
// default applied.
func (j Job) DurationMinutes() int {
	if j.EstimatedDuration > 0 {
		return j.EstimatedDuration
	}
	return DefaultDurationMinutes
}

// AssignedTechnicians resolves the technician ids assigned to the job. The
// first non-empty source wins: the explicit id list, then the crew-object
// list, then the single assigned-tech field.
func (j Job) AssignedTechnicians() []string {
	if len(j.AssignedCrewIDs) > 0 {
		return j.AssignedCrewIDs
	}
	if len(j.AssignedCrew) > 0 {
		ids := make([]string, 0, len(j.AssignedCrew))
		for _, m := range j.AssignedCrew {
			if m.TechID != "" {
				ids = append(ids, m.TechID)
			}
		}
		if len(ids) > 0 {
			return ids
		}
	}
	if j.AssignedTechID != "" {
		return []string{j.AssignedTechID}
	}
	return nil
}

// AssignedTo reports whether the job is assigned to the given technician.
func (j Job) AssignedTo(techID string) bool {
	for _, id := range j.AssignedTechnicians() {
		if id == techID {
			return true
		}
	}
	return false
}

// Label returns the human-readable name used in conflict explanations.
func (j Job) Label() string {
	if j.Title != "" {
		return j.Title
	}
	if j.Description != "" {
		return j.Description
	}
	return "another job"
}
