package model

// WorkingDay is one weekday entry of a technician's working-hours
// configuration. Enabled is a pointer so that an absent field can be told
// apart from an explicit false: only explicit false marks the day off.
type WorkingDay struct {
	Enabled   *bool  `json:"enabled,omitempty"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// Technician is the read-only view of a technician record. WorkingHours is
// keyed by lower-cased English weekday name ("monday" .. "sunday"); days
// absent from the map are treated as available.
type Technician struct {
	ID           string                `json:"id"`
	Name         string                `json:"name,omitempty"`
	WorkingHours map[string]WorkingDay `json:"workingHours,omitempty"`
}

// ConflictResult is the outcome of a double-booking check.
type ConflictResult struct {
	HasConflict    bool   `json:"hasConflict"`
	ConflictingJob *Job   `json:"conflictingJob,omitempty"`
	Reason         string `json:"reason,omitempty"`
}

// AvailabilityResult is the outcome of a day-off check.
type AvailabilityResult struct {
	Available bool   `json:"available"`
	DayName   string `json:"dayName"`
}
