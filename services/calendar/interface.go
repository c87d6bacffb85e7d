package calendar

import (
	"context"

	"receptionist/models"
)

// Attendee is an invitee on a created event.
type Attendee struct {
	Email       string
	DisplayName string
}

// EventInput carries the fields for a calendar event insert. When
// Attendees is empty the insert suppresses invitation emails (the
// degraded no-attendee path).
type EventInput struct {
	Slot        models.Slot
	Summary     string
	Description string
	Attendees   []Attendee
}

// Service is the calendar collaborator: busy-interval reads and event
// creation against the configured target calendar.
type Service interface {
	// QueryBusy returns the occupied intervals inside window, ordered as
	// reported by the calendar. Callers must not assume the result is
	// sorted.
	QueryBusy(ctx context.Context, window models.TimeRange) ([]models.BusyInterval, error)
	// CreateEvent inserts an event. A delegation-denied failure is
	// reported via ErrDelegationDenied so callers can retry without
	// attendees.
	CreateEvent(ctx context.Context, input EventInput) (models.CalendarEvent, error)
}
