package conflict

import (
	"fmt"
	"time"

	"github.com/fieldserve/crewsched/core/model"
	"github.com/fieldserve/crewsched/core/schedule"
)

// reasonLayout formats window bounds for conflict explanations shown to
// dispatchers.
const reasonLayout = "Mon Jan 2, 3:04 PM"

// Checker runs conflict checks with a configurable extraction policy.
type Checker struct {
	extractor *schedule.Extractor
}

// NewChecker creates a Checker using the given extraction config.
func NewChecker(cfg schedule.Config) *Checker {
	return &Checker{extractor: schedule.NewExtractor(cfg)}
}

var defaultChecker = NewChecker(schedule.Config{})

// CheckCrewConflict reports whether assigning the technician to target would
// double-book them against any other active job in allJobs, using the
// default extraction policy. tz is an IANA zone name used only to format the
// explanation; the empty string falls back to the caller's local zone.
func CheckCrewConflict(techID string, target *model.Job, allJobs []model.Job, tz string) model.ConflictResult {
	return defaultChecker.CheckCrewConflict(techID, target, allJobs, tz)
}

// CheckCrewConflict runs the double-booking check. Missing arguments fail
// soft to no-conflict, and a target whose schedule cannot be resolved cannot
// conflict with anything. The first overlapping pair in input order wins:
// any conflict blocks the assignment, so there is no point ranking them.
func (c *Checker) CheckCrewConflict(techID string, target *model.Job, allJobs []model.Job, tz string) model.ConflictResult {
	if techID == "" || target == nil || allJobs == nil {
		return model.ConflictResult{}
	}
	targetWindows := c.extractor.Windows(*target)
	if len(targetWindows) == 0 {
		return model.ConflictResult{}
	}

	for i := range allJobs {
		other := allJobs[i]
		if other.ID == target.ID {
			continue
		}
		if !other.IsActive() {
			continue
		}
		if !other.AssignedTo(techID) {
			continue
		}
		for _, ow := range c.extractor.Windows(other) {
			for _, tw := range targetWindows {
				if Overlaps(tw, ow) {
					return model.ConflictResult{
						HasConflict:    true,
						ConflictingJob: &allJobs[i],
						Reason:         conflictReason(other, ow, tz),
					}
				}
			}
		}
	}
	return model.ConflictResult{}
}

// conflictReason builds the human-readable explanation, rendering the
// conflicting window in the requested zone.
func conflictReason(job model.Job, w model.TimeWindow, tz string) string {
	loc := time.Local
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}
	return fmt.Sprintf("conflicts with %q scheduled %s to %s",
		job.Label(),
		w.Start.In(loc).Format(reasonLayout),
		w.End.In(loc).Format(reasonLayout))
}
