package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receptionist/models"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func tr(t *testing.T, start, end string) models.TimeRange {
	t.Helper()
	return models.TimeRange{Start: mustTime(t, start), End: mustTime(t, end)}
}

func TestSubtractBusy(t *testing.T) {
	window := tr(t, "2026-03-04T09:00:00Z", "2026-03-04T17:00:00Z")

	tests := []struct {
		name string
		busy []models.BusyInterval
		want []models.TimeRange
	}{
		{
			name: "no busy intervals returns whole window",
			busy: nil,
			want: []models.TimeRange{window},
		},
		{
			name: "single busy interval splits window",
			busy: []models.BusyInterval{tr(t, "2026-03-04T10:00:00Z", "2026-03-04T11:00:00Z")},
			want: []models.TimeRange{
				tr(t, "2026-03-04T09:00:00Z", "2026-03-04T10:00:00Z"),
				tr(t, "2026-03-04T11:00:00Z", "2026-03-04T17:00:00Z"),
			},
		},
		{
			name: "busy covering whole window leaves nothing",
			busy: []models.BusyInterval{tr(t, "2026-03-04T08:00:00Z", "2026-03-04T18:00:00Z")},
			want: nil,
		},
		{
			name: "busy before window is ignored",
			busy: []models.BusyInterval{tr(t, "2026-03-04T07:00:00Z", "2026-03-04T08:00:00Z")},
			want: []models.TimeRange{window},
		},
		{
			name: "unsorted input is normalized",
			busy: []models.BusyInterval{
				tr(t, "2026-03-04T14:00:00Z", "2026-03-04T15:00:00Z"),
				tr(t, "2026-03-04T10:00:00Z", "2026-03-04T11:00:00Z"),
			},
			want: []models.TimeRange{
				tr(t, "2026-03-04T09:00:00Z", "2026-03-04T10:00:00Z"),
				tr(t, "2026-03-04T11:00:00Z", "2026-03-04T14:00:00Z"),
				tr(t, "2026-03-04T15:00:00Z", "2026-03-04T17:00:00Z"),
			},
		},
		{
			name: "overlapping busy intervals are tolerated",
			busy: []models.BusyInterval{
				tr(t, "2026-03-04T10:00:00Z", "2026-03-04T12:00:00Z"),
				tr(t, "2026-03-04T11:00:00Z", "2026-03-04T13:00:00Z"),
			},
			want: []models.TimeRange{
				tr(t, "2026-03-04T09:00:00Z", "2026-03-04T10:00:00Z"),
				tr(t, "2026-03-04T13:00:00Z", "2026-03-04T17:00:00Z"),
			},
		},
		{
			name: "busy touching window edges",
			busy: []models.BusyInterval{
				tr(t, "2026-03-04T09:00:00Z", "2026-03-04T10:00:00Z"),
				tr(t, "2026-03-04T16:00:00Z", "2026-03-04T17:00:00Z"),
			},
			want: []models.TimeRange{tr(t, "2026-03-04T10:00:00Z", "2026-03-04T16:00:00Z")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SubtractBusy(window, tt.busy)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Free ranges plus the busy set must reconstruct exactly the window: no
// gaps, no overlaps, everything inside.
func TestSubtractBusyCoversWindow(t *testing.T) {
	window := tr(t, "2026-03-04T08:00:00Z", "2026-03-04T20:00:00Z")
	busy := []models.BusyInterval{
		tr(t, "2026-03-04T09:00:00Z", "2026-03-04T09:45:00Z"),
		tr(t, "2026-03-04T12:00:00Z", "2026-03-04T13:30:00Z"),
		tr(t, "2026-03-04T16:15:00Z", "2026-03-04T17:00:00Z"),
	}

	free := SubtractBusy(window, busy)

	all := append([]models.TimeRange{}, free...)
	all = append(all, busy...)
	// Merge by sweeping; the union must be contiguous from window start
	// to window end.
	cursor := window.Start
	for cursor.Before(window.End) {
		advanced := false
		for _, r := range all {
			if r.Start.Equal(cursor) {
				cursor = r.End
				advanced = true
				break
			}
		}
		require.True(t, advanced, "gap at %v", cursor)
	}
	assert.True(t, cursor.Equal(window.End))

	for i, f := range free {
		assert.True(t, f.Valid(), "free range %d is empty", i)
		for _, b := range busy {
			assert.False(t, RangesOverlap(f, b), "free range %v overlaps busy %v", f, b)
		}
	}
}

func TestSplitIntoFixedSlots(t *testing.T) {
	free := []models.TimeRange{tr(t, "2026-03-04T09:00:00Z", "2026-03-04T10:45:00Z")}

	slots := SplitIntoFixedSlots(free, 30*time.Minute)

	// floor(105min / 30min) = 3; the partial trailing 15 minutes is
	// discarded, never truncated.
	require.Len(t, slots, 3)
	assert.Equal(t, mustTime(t, "2026-03-04T09:00:00Z"), slots[0].Start)
	assert.Equal(t, mustTime(t, "2026-03-04T10:30:00Z"), slots[2].End)
	for _, s := range slots {
		assert.Equal(t, 30*time.Minute, s.Range().Duration())
		assert.False(t, s.End.After(free[0].End))
	}
}

func TestSplitIntoFixedSlotsTooShortRange(t *testing.T) {
	free := []models.TimeRange{tr(t, "2026-03-04T09:00:00Z", "2026-03-04T09:20:00Z")}
	assert.Empty(t, SplitIntoFixedSlots(free, 30*time.Minute))
}

func TestRangesOverlap(t *testing.T) {
	a := tr(t, "2026-03-04T09:00:00Z", "2026-03-04T10:00:00Z")
	b := tr(t, "2026-03-04T09:30:00Z", "2026-03-04T10:30:00Z")
	adjacent := tr(t, "2026-03-04T10:00:00Z", "2026-03-04T11:00:00Z")
	contained := tr(t, "2026-03-04T09:15:00Z", "2026-03-04T09:45:00Z")

	assert.True(t, RangesOverlap(a, b))
	assert.True(t, RangesOverlap(b, a), "overlap must be symmetric")
	assert.True(t, RangesOverlap(a, contained))
	assert.True(t, RangesOverlap(contained, a))

	// Touching endpoints do not count as overlap.
	assert.False(t, RangesOverlap(a, adjacent))
	assert.False(t, RangesOverlap(adjacent, a))
}
