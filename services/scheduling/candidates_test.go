package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receptionist/models"
)

func TestBuildExplicitSlotsPassThrough(t *testing.T) {
	b := NewCandidateBuilder(time.UTC)
	explicit := []models.Slot{
		{
			Start: time.Date(2026, time.March, 5, 14, 0, 0, 0, time.UTC),
			End:   time.Date(2026, time.March, 5, 14, 30, 0, 0, time.UTC),
		},
	}

	slots, source := b.Build(explicit, "tomorrow 2pm", parserNow)

	assert.Equal(t, SourceExplicit, source)
	assert.Equal(t, explicit, slots, "explicit slots are used verbatim")
}

func TestBuildFromTargetDay(t *testing.T) {
	b := NewCandidateBuilder(time.UTC)

	slots, source := b.Build(nil, "tomorrow 2pm", parserNow)

	assert.Equal(t, SourceTargetDay, source)
	require.Len(t, slots, 9)
	// Candidates spread two hours either side of the requested 14:00, at
	// half-hour steps, the requested slot included.
	assert.Equal(t, time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC), slots[0].Start)
	assert.Equal(t, time.Date(2026, time.March, 5, 16, 30, 0, 0, time.UTC), slots[8].End)

	requested := time.Date(2026, time.March, 5, 14, 0, 0, 0, time.UTC)
	var found bool
	for _, s := range slots {
		assert.Equal(t, 30*time.Minute, s.Range().Duration())
		if s.Start.Equal(requested) {
			found = true
		}
	}
	assert.True(t, found, "requested time must be among the candidates")
}

// Slots in the spread that would start at or before now are dropped, so
// asking about a time later today never offers the past.
func TestBuildFromTargetDayDropsPastSlots(t *testing.T) {
	b := NewCandidateBuilder(time.UTC)

	slots, source := b.Build(nil, "today 11am", parserNow) // now is 10:00

	assert.Equal(t, SourceTargetDay, source)
	require.Len(t, slots, 6)
	assert.Equal(t, time.Date(2026, time.March, 4, 10, 30, 0, 0, time.UTC), slots[0].Start)
	for _, s := range slots {
		assert.True(t, s.Start.After(parserNow))
	}
}

func TestBuildDefaultFallback(t *testing.T) {
	b := NewCandidateBuilder(time.UTC)

	tests := []struct {
		name      string
		targetDay string
	}{
		{name: "empty target day", targetDay: ""},
		{name: "unsubstituted template marker", targetDay: "{{day_time_mentioned_by_user}}"},
		{name: "unparseable expression", targetDay: "whenever works"},
		{name: "expression resolving to the past", targetDay: "today 9am"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, source := b.Build(nil, tt.targetDay, parserNow)

			assert.Equal(t, SourceDefault, source)
			require.Len(t, slots, 24)
			for _, s := range slots {
				assert.True(t, s.Start.After(parserNow))
				local := s.Start.In(time.UTC)
				assert.GreaterOrEqual(t, local.Hour(), 9)
				assert.True(t, s.End.In(time.UTC).Hour() <= 17)
				assert.Equal(t, 30*time.Minute, s.Range().Duration())
			}
			// First offer is the next half-hour boundary still inside
			// business hours today.
			assert.Equal(t, time.Date(2026, time.March, 4, 10, 30, 0, 0, time.UTC), slots[0].Start)
		})
	}
}

// Building outside business hours skips today entirely and starts with
// the next morning.
func TestBuildDefaultFallbackAfterHours(t *testing.T) {
	b := NewCandidateBuilder(time.UTC)
	evening := time.Date(2026, time.March, 4, 19, 0, 0, 0, time.UTC)

	slots, source := b.Build(nil, "", evening)

	assert.Equal(t, SourceDefault, source)
	require.Len(t, slots, 24)
	assert.Equal(t, time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC), slots[0].Start)
}
