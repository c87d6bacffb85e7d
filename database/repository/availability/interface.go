package availability

import (
	"context"

	"receptionist/models"
)

// Repository stores the last computed availability and the last committed
// event. Reads are best-effort: a missing snapshot is (nil, nil), not an
// error. The booking repair pass only ever reads; writes happen after the
// webhook handlers produce results.
type Repository interface {
	SaveAvailability(ctx context.Context, snap models.AvailabilitySnapshot) error
	GetAvailability(ctx context.Context) (*models.AvailabilitySnapshot, error)
	SaveLastEvent(ctx context.Context, event models.CalendarEvent) error
	GetLastEvent(ctx context.Context) (*models.CalendarEvent, error)
}
