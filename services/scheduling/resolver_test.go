package scheduling

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receptionist/models"
)

type fakeBusySource struct {
	mu      sync.Mutex
	windows []models.TimeRange
	busy    []models.BusyInterval
	err     error
}

func (f *fakeBusySource) QueryBusy(ctx context.Context, window models.TimeRange) ([]models.BusyInterval, error) {
	f.mu.Lock()
	f.windows = append(f.windows, window)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.BusyInterval
	for _, b := range f.busy {
		if RangesOverlap(b, window) {
			out = append(out, b)
		}
	}
	return out, nil
}

func newTestEngine(src *fakeBusySource, now time.Time) *DefaultAvailabilityEngine {
	return &DefaultAvailabilityEngine{Source: src, Now: func() time.Time { return now }}
}

func slot(t *testing.T, start, end string) models.Slot {
	t.Helper()
	return models.Slot{Start: mustTime(t, start), End: mustTime(t, end)}
}

func TestFindAvailableFiltersOverlaps(t *testing.T) {
	now := mustTime(t, "2026-03-04T08:00:00Z")
	src := &fakeBusySource{busy: []models.BusyInterval{
		tr(t, "2026-03-04T10:00:00Z", "2026-03-04T11:00:00Z"),
	}}
	engine := newTestEngine(src, now)

	candidates := []models.Slot{
		slot(t, "2026-03-04T09:00:00Z", "2026-03-04T09:30:00Z"),
		slot(t, "2026-03-04T10:30:00Z", "2026-03-04T11:00:00Z"),
		slot(t, "2026-03-04T11:00:00Z", "2026-03-04T11:30:00Z"),
	}

	available, err := engine.FindAvailable(context.Background(), candidates)

	require.NoError(t, err)
	// The middle candidate collides with the busy hour; the slot starting
	// exactly when the busy interval ends survives.
	assert.Equal(t, []models.Slot{candidates[0], candidates[2]}, available)
}

func TestFindAvailablePreservesOrder(t *testing.T) {
	now := mustTime(t, "2026-03-04T08:00:00Z")
	engine := newTestEngine(&fakeBusySource{}, now)

	candidates := []models.Slot{
		slot(t, "2026-03-06T15:00:00Z", "2026-03-06T15:30:00Z"),
		slot(t, "2026-03-05T09:00:00Z", "2026-03-05T09:30:00Z"),
		slot(t, "2026-03-05T09:00:00Z", "2026-03-05T09:30:00Z"),
	}

	available, err := engine.FindAvailable(context.Background(), candidates)

	require.NoError(t, err)
	// Input order is preserved and duplicates are not collapsed.
	assert.Equal(t, candidates, available)
}

func TestFindAvailableQueryWindow(t *testing.T) {
	now := mustTime(t, "2026-03-04T08:00:00Z")
	src := &fakeBusySource{}
	engine := newTestEngine(src, now)

	_, err := engine.FindAvailable(context.Background(), []models.Slot{
		slot(t, "2026-03-05T09:00:00Z", "2026-03-05T09:30:00Z"),
	})

	require.NoError(t, err)
	// Candidates well inside the default lookahead produce one query
	// spanning now to now+30 days.
	require.Len(t, src.windows, 1)
	assert.Equal(t, now, src.windows[0].Start)
	assert.Equal(t, now.Add(defaultLookahead), src.windows[0].End)
}

func TestFindAvailableChunksLongWindows(t *testing.T) {
	now := mustTime(t, "2026-03-04T08:00:00Z")
	src := &fakeBusySource{}
	engine := newTestEngine(src, now)

	farEnd := now.Add(120 * 24 * time.Hour)
	_, err := engine.FindAvailable(context.Background(), []models.Slot{
		{Start: farEnd.Add(-30 * time.Minute), End: farEnd},
	})

	require.NoError(t, err)
	// 120 days at a 50-day chunk span means three queries. Chunks arrive
	// concurrently, so order them before checking contiguity.
	require.Len(t, src.windows, 3)
	windows := append([]models.TimeRange{}, src.windows...)
	for i := 0; i < len(windows); i++ {
		for j := i + 1; j < len(windows); j++ {
			if windows[j].Start.Before(windows[i].Start) {
				windows[i], windows[j] = windows[j], windows[i]
			}
		}
	}
	assert.Equal(t, now, windows[0].Start)
	for i := 1; i < len(windows); i++ {
		assert.Equal(t, windows[i-1].End, windows[i].Start, "chunks must be contiguous")
		assert.False(t, windows[i].End.Sub(windows[i].Start) > maxChunkSpan)
	}
	assert.Equal(t, farEnd, windows[len(windows)-1].End)
}

func TestFindAvailableCapsLookahead(t *testing.T) {
	now := mustTime(t, "2026-03-04T08:00:00Z")
	src := &fakeBusySource{}
	engine := newTestEngine(src, now)

	_, err := engine.FindAvailable(context.Background(), []models.Slot{
		{Start: now.AddDate(3, 0, 0), End: now.AddDate(3, 0, 0).Add(30 * time.Minute)},
	})

	require.NoError(t, err)
	horizon := now.Add(maxLookahead)
	for _, w := range src.windows {
		assert.False(t, w.End.After(horizon), "query %v exceeds the two-year horizon", w)
	}
}

func TestFindAvailableSourceError(t *testing.T) {
	now := mustTime(t, "2026-03-04T08:00:00Z")
	wantErr := errors.New("freebusy unavailable")
	engine := newTestEngine(&fakeBusySource{err: wantErr}, now)

	_, err := engine.FindAvailable(context.Background(), []models.Slot{
		slot(t, "2026-03-05T09:00:00Z", "2026-03-05T09:30:00Z"),
	})

	assert.ErrorIs(t, err, wantErr)
}

func TestFreeSlots(t *testing.T) {
	now := mustTime(t, "2026-03-04T08:00:00Z")
	src := &fakeBusySource{busy: []models.BusyInterval{
		tr(t, "2026-03-04T10:00:00Z", "2026-03-04T10:30:00Z"),
	}}
	engine := newTestEngine(src, now)

	window := tr(t, "2026-03-04T09:00:00Z", "2026-03-04T12:00:00Z")
	slots, err := engine.FreeSlots(context.Background(), window, 30*time.Minute)

	require.NoError(t, err)
	// 9:00-10:00 yields two slots, 10:30-12:00 three more.
	require.Len(t, slots, 5)
	assert.Equal(t, mustTime(t, "2026-03-04T09:00:00Z"), slots[0].Start)
	assert.Equal(t, mustTime(t, "2026-03-04T10:30:00Z"), slots[2].Start)
	for _, s := range slots {
		for _, b := range src.busy {
			assert.False(t, RangesOverlap(s.Range(), b))
		}
	}
}
