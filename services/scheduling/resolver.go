package scheduling

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"receptionist/models"
	"receptionist/utils"
)

const (
	// Google freebusy rejects ranges much past two months; stay under it.
	maxChunkSpan = 50 * 24 * time.Hour

	defaultLookahead = 30 * 24 * time.Hour
	maxLookahead     = 2 * 365 * 24 * time.Hour
)

// BusySource is the narrow calendar read the resolver depends on.
type BusySource interface {
	QueryBusy(ctx context.Context, window models.TimeRange) ([]models.BusyInterval, error)
}

// AvailabilityService filters candidate slots against the calendar and
// answers window-level free-slot queries.
type AvailabilityService interface {
	FindAvailable(ctx context.Context, candidates []models.Slot) ([]models.Slot, error)
	FreeSlots(ctx context.Context, window models.TimeRange, slotLength time.Duration) ([]models.Slot, error)
}

// DefaultAvailabilityEngine implements AvailabilityService.
type DefaultAvailabilityEngine struct {
	Source BusySource
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func (e *DefaultAvailabilityEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// FindAvailable returns the subsequence of candidates that overlap no
// busy interval. Input order is preserved; nothing is deduplicated.
func (e *DefaultAvailabilityEngine) FindAvailable(ctx context.Context, candidates []models.Slot) ([]models.Slot, error) {
	now := e.now()

	timeMax := now.Add(defaultLookahead)
	for _, s := range candidates {
		if s.End.After(timeMax) {
			timeMax = s.End
		}
	}
	if horizon := now.Add(maxLookahead); timeMax.After(horizon) {
		timeMax = horizon
	}

	busy, err := e.fetchBusy(ctx, models.TimeRange{Start: now, End: timeMax})
	if err != nil {
		return nil, err
	}

	available := make([]models.Slot, 0, len(candidates))
	for _, slot := range candidates {
		overlaps := false
		for _, b := range busy {
			if RangesOverlap(slot.Range(), b) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			available = append(available, slot)
		}
	}
	return available, nil
}

// FreeSlots subtracts the calendar's busy intervals from an arbitrary
// window and splits the remainder into fixed-length slots.
func (e *DefaultAvailabilityEngine) FreeSlots(ctx context.Context, window models.TimeRange, slotLength time.Duration) ([]models.Slot, error) {
	busy, err := e.fetchBusy(ctx, window)
	if err != nil {
		return nil, err
	}
	return SplitIntoFixedSlots(SubtractBusy(window, busy), slotLength), nil
}

// fetchBusy reads busy intervals for the window, chunked into sub-windows
// the upstream API accepts. Chunks are independent reads and fetched
// concurrently; all must complete before filtering proceeds. The combined
// set is sorted ascending by start rather than trusting upstream order.
func (e *DefaultAvailabilityEngine) fetchBusy(ctx context.Context, window models.TimeRange) ([]models.BusyInterval, error) {
	var chunks []models.TimeRange
	for start := window.Start; start.Before(window.End); start = start.Add(maxChunkSpan) {
		end := start.Add(maxChunkSpan)
		if end.After(window.End) {
			end = window.End
		}
		chunks = append(chunks, models.TimeRange{Start: start, End: end})
	}

	results := make([][]models.BusyInterval, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			intervals, err := e.Source.QueryBusy(gctx, chunk)
			if err != nil {
				return err
			}
			results[i] = intervals
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var busy []models.BusyInterval
	for _, r := range results {
		busy = append(busy, r...)
	}
	sort.Slice(busy, func(i, j int) bool {
		return busy[i].Start.Before(busy[j].Start)
	})

	utils.GetLogger().Debug("busy_intervals_fetched",
		zap.Int("chunks", len(chunks)), zap.Int("intervals", len(busy)))
	return busy, nil
}
