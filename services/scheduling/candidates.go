package scheduling

import (
	"time"

	"receptionist/models"
)

// CandidateSource names the strategy that produced the candidate slots,
// so responses can disclose it and logs can tell the paths apart.
type CandidateSource string

const (
	SourceExplicit  CandidateSource = "explicit"
	SourceTargetDay CandidateSource = "inferred-from-day"
	SourceDefault   CandidateSource = "default-fallback"
)

const (
	slotLength       = 30 * time.Minute
	inferredSpread   = 120 * time.Minute
	inferredSlotCap  = 9
	defaultDaysAhead = 3
	defaultStartHour = 9
	defaultEndHour   = 17
	defaultSlotCap   = 24
)

// CandidateBuilder turns webhook input into an ordered set of candidate
// slots to check against the calendar.
type CandidateBuilder struct {
	parser *Parser
	loc    *time.Location
}

func NewCandidateBuilder(loc *time.Location) *CandidateBuilder {
	return &CandidateBuilder{parser: NewParser(loc), loc: loc}
}

// Build produces candidates in priority order: explicit slots verbatim,
// else slots inferred from the target-day expression, else the default
// 3-day window. Unsubstituted template markers and unparseable
// expressions silently fall through to the default generator.
func (b *CandidateBuilder) Build(explicit []models.Slot, targetDay string, now time.Time) ([]models.Slot, CandidateSource) {
	if len(explicit) > 0 {
		return explicit, SourceExplicit
	}
	if targetDay != "" && !models.IsUnsubstitutedTemplate(targetDay) {
		if slots := b.fromTargetDay(targetDay, now); len(slots) > 0 {
			return slots, SourceTargetDay
		}
	}
	return b.defaultSlots(now), SourceDefault
}

// fromTargetDay centers candidates on the resolved instant: the requested
// slot plus same-day alternatives at 30-minute steps within ±2 hours, so
// the agent can offer nearby times when the asked-for one is busy.
func (b *CandidateBuilder) fromTargetDay(targetDay string, now time.Time) []models.Slot {
	base, ok := b.parser.Parse(targetDay, now)
	if !ok {
		return nil
	}
	window := models.TimeRange{
		Start: base.Add(-inferredSpread),
		End:   base.Add(inferredSpread + slotLength),
	}
	var slots []models.Slot
	for _, s := range SplitIntoFixedSlots([]models.TimeRange{window}, slotLength) {
		if !s.Start.After(now) {
			continue
		}
		slots = append(slots, s)
		if len(slots) == inferredSlotCap {
			break
		}
	}
	return slots
}

// defaultSlots generates all 30-minute slots between 9:00 and 17:00 in
// the calendar timezone for the next few days, future-only, capped to
// keep responses small.
func (b *CandidateBuilder) defaultSlots(now time.Time) []models.Slot {
	local := now.In(b.loc)
	var slots []models.Slot
	for d := 0; d < defaultDaysAhead; d++ {
		day := local.AddDate(0, 0, d)
		window := models.TimeRange{
			Start: time.Date(day.Year(), day.Month(), day.Day(), defaultStartHour, 0, 0, 0, b.loc),
			End:   time.Date(day.Year(), day.Month(), day.Day(), defaultEndHour, 0, 0, 0, b.loc),
		}
		for _, s := range SplitIntoFixedSlots([]models.TimeRange{window}, slotLength) {
			if !s.Start.After(now) {
				continue
			}
			slots = append(slots, s)
			if len(slots) == defaultSlotCap {
				return slots
			}
		}
	}
	return slots
}
