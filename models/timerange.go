package models

import "time"

// TimeRange is a half-open [Start, End) range of absolute instants.
// A range is only valid when End is strictly after Start; zero or negative
// length ranges are rejected at the boundary, never swapped.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether the range is chronological.
func (r TimeRange) Valid() bool {
	return r.End.After(r.Start)
}

// Duration returns End - Start.
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// BusyInterval is an occupied range reported by the calendar.
type BusyInterval = TimeRange

// Slot is a proposed or confirmed candidate meeting time. Slots always
// carry absolute instants; JSON serialization is RFC 3339 so downstream
// consumers never see naive local times.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Range returns the slot as a TimeRange.
func (s Slot) Range() TimeRange {
	return TimeRange{Start: s.Start, End: s.End}
}
