package model

import "time"

// TimeWindow is one contiguous booked interval expressed as absolute instants.
// Windows are ephemeral: they are recomputed from job records on every check
// and never persisted.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether the window has both endpoints and a strictly
// positive span. Windows failing this are discarded, not propagated.
func (w TimeWindow) Valid() bool {
	return !w.Start.IsZero() && !w.End.IsZero() && w.Start.Before(w.End)
}

// Duration returns the span of the window.
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Overlaps reports whether two windows intersect under half-open semantics:
// [a.Start, a.End) and [b.Start, b.End) overlap iff a.Start < b.End and
// a.End > b.Start. Back-to-back windows that touch at an endpoint do not
// overlap. A window missing either endpoint never overlaps anything.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	if w.Start.IsZero() || w.End.IsZero() || other.Start.IsZero() || other.End.IsZero() {
		return false
	}
	return w.Start.Before(other.End) && w.End.After(other.Start)
}
