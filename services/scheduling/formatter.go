package scheduling

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"receptionist/models"
)

// FormatTimeForVoice renders an instant for TTS: "9 AM" rather than
// "9:00 AM" (which reads as "nine colon zero zero"), "11:30 AM" for half
// hours.
func FormatTimeForVoice(t time.Time, loc *time.Location) string {
	local := t.In(loc)
	if local.Minute() == 0 {
		return local.Format("3 PM")
	}
	return local.Format("3:04 PM")
}

// FormatSlotReadable renders a slot as one spoken line, e.g.
// "Friday, Feb 27, 2026, 11 AM - 11:30 AM".
func FormatSlotReadable(slot models.Slot, loc *time.Location) string {
	day := slot.Start.In(loc).Format("Monday, Jan 2, 2006")
	return fmt.Sprintf("%s, %s - %s",
		day, FormatTimeForVoice(slot.Start, loc), FormatTimeForVoice(slot.End, loc))
}

// FormatIsoRange pairs a slot's canonical timestamps with its readable
// form for template consumption.
func FormatIsoRange(slot models.Slot, loc *time.Location) models.SlotReadable {
	return models.SlotReadable{
		Start:    slot.Start.Format(time.RFC3339),
		End:      slot.End.Format(time.RFC3339),
		Readable: FormatSlotReadable(slot, loc),
	}
}

// DaySummary is the per-day aggregate behind the compact voice summary.
type DaySummary struct {
	DayLabel   string
	FirstStart time.Time
	LastEnd    time.Time
	MinStartH  float64
	MaxEndH    float64
	SlotCount  int
	Times      []string
}

// Continuous reports whether the day's slots exactly tile the span with
// no gaps, assuming 30-minute slots.
func (d DaySummary) Continuous() bool {
	return math.Abs((d.MaxEndH-d.MinStartH)-float64(d.SlotCount)*0.5) < 0.01
}

// AllDay reports whether the day is covered well enough to summarize as
// the whole working day.
func (d DaySummary) AllDay() bool {
	return d.MinStartH <= 9.5 && d.MaxEndH >= 18
}

func decimalHours(t time.Time, loc *time.Location) float64 {
	local := t.In(loc)
	return float64(local.Hour()) + float64(local.Minute())/60
}

// BuildDaySummaries groups slots by calendar day in loc, ordered by day.
func BuildDaySummaries(slots []models.Slot, loc *time.Location) []DaySummary {
	sorted := make([]models.Slot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var order []string
	byDay := map[string]*DaySummary{}
	for _, s := range sorted {
		key := s.Start.In(loc).Format("2006-01-02")
		timeStr := FormatTimeForVoice(s.Start, loc)
		startH := decimalHours(s.Start, loc)
		endH := decimalHours(s.End, loc)

		entry, ok := byDay[key]
		if !ok {
			order = append(order, key)
			byDay[key] = &DaySummary{
				DayLabel:   s.Start.In(loc).Format("Monday Jan 2"),
				FirstStart: s.Start,
				LastEnd:    s.End,
				MinStartH:  startH,
				MaxEndH:    endH,
				SlotCount:  1,
				Times:      []string{timeStr},
			}
			continue
		}
		if startH < entry.MinStartH {
			entry.MinStartH = startH
			entry.FirstStart = s.Start
		}
		if endH > entry.MaxEndH {
			entry.MaxEndH = endH
			entry.LastEnd = s.End
		}
		entry.SlotCount++
		if entry.Times[len(entry.Times)-1] != timeStr {
			entry.Times = append(entry.Times, timeStr)
		}
	}

	summaries := make([]DaySummary, 0, len(order))
	for _, key := range order {
		summaries = append(summaries, *byDay[key])
	}
	return summaries
}

// Summarize renders available slots into a compact spoken summary grouped
// by day: a range when the slots tile a span, a fixed all-day phrase when
// coverage spans the working day, otherwise each distinct time once.
func Summarize(slots []models.Slot, loc *time.Location) string {
	if len(slots) == 0 {
		return "No slots available"
	}

	var parts []string
	for _, day := range BuildDaySummaries(slots, loc) {
		switch {
		case day.AllDay():
			parts = append(parts, fmt.Sprintf("%s: There is availability from 9 AM to 6 PM", day.DayLabel))
		case day.Continuous():
			parts = append(parts, fmt.Sprintf("%s: There is availability from %s to %s",
				day.DayLabel, FormatTimeForVoice(day.FirstStart, loc), FormatTimeForVoice(day.LastEnd, loc)))
		default:
			parts = append(parts, fmt.Sprintf("%s: %s", day.DayLabel, strings.Join(day.Times, ", ")))
		}
	}
	return strings.Join(parts, "; ")
}
