package models

import "time"

// CalendarEvent is the committed event as reported by the calendar.
type CalendarEvent struct {
	ID       string    `json:"id"`
	Summary  string    `json:"summary"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	HTMLLink string    `json:"htmlLink,omitempty"`
	MeetLink string    `json:"meetLink,omitempty"`
	// AttendeesDropped is set when the event was created via the degraded
	// no-attendee retry, so callers can tell invitations were not sent.
	AttendeesDropped bool `json:"attendeesDropped,omitempty"`
}
