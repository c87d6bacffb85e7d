package booking

import (
	"context"
	"time"

	availabilityRepo "receptionist/database/repository/availability"
	"receptionist/models"
	"receptionist/services/calendar"
	"receptionist/services/notification"
	"receptionist/services/scheduling"
)

// ConfirmationService drives a confirm-meeting request through the
// booking state machine and, on success, returns the committed event and
// the spoken confirmation message.
type ConfirmationService interface {
	Confirm(ctx context.Context, input models.ConfirmMeetingInput) (*models.ConfirmMeetingResponse, error)
}

// DefaultConfirmationService implements ConfirmationService.
type DefaultConfirmationService struct {
	Availability scheduling.AvailabilityService
	Calendar     calendar.Service
	Snapshots    availabilityRepo.Repository
	Notifier     notification.Service
	Loc          *time.Location
}
