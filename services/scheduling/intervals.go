package scheduling

import (
	"sort"
	"time"

	"receptionist/models"
)

// SubtractBusy removes busy intervals from a window and returns the free
// ranges left over. The busy set is sorted defensively; overlapping busy
// intervals are tolerated by the sweep. Returned ranges are disjoint,
// ordered, non-empty, and together with the busy set cover the window.
func SubtractBusy(window models.TimeRange, busy []models.BusyInterval) []models.TimeRange {
	sorted := make([]models.BusyInterval, len(busy))
	copy(sorted, busy)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var free []models.TimeRange
	cursor := window.Start
	for _, b := range sorted {
		if !b.End.After(cursor) {
			continue
		}
		if b.Start.After(cursor) {
			end := b.Start
			if window.End.Before(end) {
				end = window.End
			}
			free = append(free, models.TimeRange{Start: cursor, End: end})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
		if !cursor.Before(window.End) {
			return free
		}
	}
	if cursor.Before(window.End) {
		free = append(free, models.TimeRange{Start: cursor, End: window.End})
	}
	return free
}

// SplitIntoFixedSlots cuts each free range into consecutive slots of
// exactly slotLength. Partial trailing slots are discarded, never
// truncated.
func SplitIntoFixedSlots(freeRanges []models.TimeRange, slotLength time.Duration) []models.Slot {
	var slots []models.Slot
	for _, r := range freeRanges {
		for s := r.Start; !s.Add(slotLength).After(r.End); s = s.Add(slotLength) {
			slots = append(slots, models.Slot{Start: s, End: s.Add(slotLength)})
		}
	}
	return slots
}

// RangesOverlap reports whether two half-open ranges intersect. Touching
// endpoints do not count as overlap.
func RangesOverlap(a, b models.TimeRange) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}
