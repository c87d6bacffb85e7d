package notification

import (
	"context"

	"receptionist/models"
)

// BookingConfirmationInput carries everything needed for the
// confirmation email and its calendar invite attachment.
type BookingConfirmationInput struct {
	To           string
	AttendeeName string
	Summary      string
	Slot         models.Slot
	EventLink    string
	MeetLink     string
}

// Service sends booking confirmations. Implementations must degrade
// gracefully when transport is unconfigured: report not-sent, don't fail.
type Service interface {
	SendBookingConfirmation(ctx context.Context, input BookingConfirmationInput) (models.EmailResult, error)
}
