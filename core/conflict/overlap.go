package conflict

import "github.com/fieldserve/crewsched/core/model"

// Overlaps reports whether two windows intersect. Semantics are strict
// half-open: a window ending exactly when the other starts does not
// conflict, so back-to-back bookings are legal.
func Overlaps(a, b model.TimeWindow) bool {
	return a.Overlaps(b)
}
