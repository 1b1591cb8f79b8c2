package conflict

import (
	"strings"
	"time"

	"github.com/fieldserve/crewsched/core/model"
)

// CheckDayOff decides whether the technician is scheduled off on the
// calendar day of date. Only an entry explicitly disabled in the
// working-hours map marks a day off; a missing map, a missing day or a nil
// enabled flag all default to available. The check is binary per day: no
// partial-day granularity.
func CheckDayOff(tech *model.Technician, date time.Time) model.AvailabilityResult {
	day := strings.ToLower(date.Weekday().String())
	res := model.AvailabilityResult{Available: true, DayName: day}
	if tech == nil || tech.WorkingHours == nil {
		return res
	}
	if wd, ok := tech.WorkingHours[day]; ok && wd.Enabled != nil && !*wd.Enabled {
		res.Available = false
	}
	return res
}
