package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"receptionist/models"
	"receptionist/services/calendar"
	"receptionist/services/notification"
	"receptionist/services/scheduling"
	"receptionist/utils"
)

var validate = validator.New()

const unsubstitutedHint = "The voice agent sent unsubstituted template variables. In the confirmMeeting API function, add LLM parameters for: selected_slot_start_iso, selected_slot_end_iso, client_email, caller_name. Map the slot from the check-availability response (e.g. first_slot_start) and extract email/name from user input."

const endAfterStartHint = "Check the agent configuration: variable selected_slot_end_iso must have NO trailing space. The body must use {{selected_slot_end_iso}} for end."

// Confirm runs the booking state machine:
// Received → Repaired → Validated → AvailabilityConfirmed → Committed.
// The availability re-check before commit is mandatory even if the slot
// was verified earlier in the conversation; external state may have
// changed since.
func (s *DefaultConfirmationService) Confirm(ctx context.Context, input models.ConfirmMeetingInput) (*models.ConfirmMeetingResponse, error) {
	logger := utils.GetLogger()

	repaired, unsubstituted := s.repair(ctx, input)

	request, err := s.validateInput(repaired, unsubstituted)
	if err != nil {
		logger.Warn("confirm_meeting_rejected",
			zap.String("state", string(models.BookingRejectedInvalid)), zap.Error(err))
		return nil, err
	}

	logger.Info("webhook_confirm_meeting_received",
		zap.Time("start", request.Start), zap.Time("end", request.End),
		zap.String("clientEmail", request.ClientEmail), zap.String("purpose", request.Purpose))

	// Safety gate: the last read before the commit write. Never create an
	// event when the requested slot is busy.
	free, err := s.Availability.FindAvailable(ctx, []models.Slot{request.Slot()})
	if err != nil {
		return nil, err
	}
	if len(free) == 0 {
		logger.Warn("confirm_meeting_conflict",
			zap.String("state", string(models.BookingRejectedConflict)),
			zap.Time("start", request.Start), zap.Time("end", request.End))
		return nil, &ConflictError{Slot: request.Start.Format(time.RFC3339)}
	}

	event, err := s.commit(ctx, request)
	if err != nil {
		return nil, err
	}

	emailResult := s.sendConfirmationEmail(ctx, request, event)

	if err := s.Snapshots.SaveLastEvent(ctx, event); err != nil {
		logger.Error("failed_write_event", zap.Error(err))
	}

	readable := scheduling.FormatSlotReadable(request.Slot(), s.Loc)
	return &models.ConfirmMeetingResponse{
		OK:    true,
		Event: event,
		Email: emailResult,
		ConfirmationMessage: fmt.Sprintf(
			"Your meeting is confirmed for %s. You'll receive a calendar invite at %s.",
			readable, request.ClientEmail),
	}, nil
}

// validateInput performs the structural checks on a repaired payload.
// The error response enumerates fields that arrived as placeholders so
// the remediation hint differs from the generic validation error.
func (s *DefaultConfirmationService) validateInput(in models.ConfirmMeetingInput, unsubstituted []string) (models.BookingRequest, error) {
	reject := func(message string, fields []string, hint string) (models.BookingRequest, error) {
		if len(unsubstituted) > 0 {
			return models.BookingRequest{}, &InvalidInputError{
				Message:             message,
				Fields:              fields,
				UnsubstitutedFields: unsubstituted,
				Hint:                unsubstitutedHint,
			}
		}
		return models.BookingRequest{}, &InvalidInputError{Message: message, Fields: fields, Hint: hint}
	}

	start, errS := time.Parse(time.RFC3339, in.Start)
	end, errE := time.Parse(time.RFC3339, in.End)
	var badFields []string
	if errS != nil {
		badFields = append(badFields, "start")
	}
	if errE != nil {
		badFields = append(badFields, "end")
	}
	if len(badFields) > 0 {
		return reject("Invalid confirm meeting payload", badFields, "")
	}
	if !end.After(start) {
		return reject("Meeting end must be after start", []string{"end"}, endAfterStartHint)
	}
	if err := validate.Var(in.ClientEmail, "required,email"); err != nil {
		return reject("Invalid confirm meeting payload", []string{"clientEmail"}, "")
	}

	return models.BookingRequest{
		Start:        start,
		End:          end,
		ClientEmail:  in.ClientEmail,
		Purpose:      in.Purpose,
		AttendeeName: in.AttendeeName,
	}, nil
}

// commit creates the calendar event. When invitations require delegation
// the caller lacks, the event is still created once without attendees —
// a deliberate degraded-success policy, not a generic retry.
func (s *DefaultConfirmationService) commit(ctx context.Context, request models.BookingRequest) (models.CalendarEvent, error) {
	logger := utils.GetLogger()

	summary := request.Purpose
	if summary == "" {
		summary = fallbackPurpose
	}
	attendeeName := request.AttendeeName
	if attendeeName == "" {
		attendeeName = "Caller"
	}
	input := calendar.EventInput{
		Slot:        request.Slot(),
		Summary:     summary,
		Description: fmt.Sprintf("With: %s (%s)", attendeeName, request.ClientEmail),
		Attendees: []calendar.Attendee{
			{Email: request.ClientEmail, DisplayName: request.AttendeeName},
		},
	}

	event, err := s.Calendar.CreateEvent(ctx, input)
	if err == nil {
		return event, nil
	}
	if !calendar.IsDelegationDenied(err) {
		logger.Error("confirm_meeting_commit_failed",
			zap.String("state", string(models.BookingCommitFailed)), zap.Error(err))
		return models.CalendarEvent{}, &CommitError{Err: err}
	}

	logger.Warn("confirm_meeting_degraded_no_attendee_retry",
		zap.String("clientEmail", request.ClientEmail))
	input.Attendees = nil
	event, err = s.Calendar.CreateEvent(ctx, input)
	if err != nil {
		logger.Error("confirm_meeting_commit_failed",
			zap.String("state", string(models.BookingCommitFailed)), zap.Error(err))
		return models.CalendarEvent{}, &CommitError{Err: err}
	}
	event.AttendeesDropped = true
	return event, nil
}

// sendConfirmationEmail is best-effort; a failed send never fails the
// booking.
func (s *DefaultConfirmationService) sendConfirmationEmail(ctx context.Context, request models.BookingRequest, event models.CalendarEvent) models.EmailResult {
	if s.Notifier == nil {
		return models.EmailResult{Sent: false, Reason: "notifier_not_configured"}
	}
	summary := request.Purpose
	if summary == "" {
		summary = fallbackPurpose
	}
	result, err := s.Notifier.SendBookingConfirmation(ctx, notification.BookingConfirmationInput{
		To:           request.ClientEmail,
		AttendeeName: request.AttendeeName,
		Summary:      summary,
		Slot:         request.Slot(),
		EventLink:    event.HTMLLink,
		MeetLink:     event.MeetLink,
	})
	if err != nil {
		utils.GetLogger().Error("booking_confirmation_email_failed",
			zap.String("to", request.ClientEmail), zap.Error(err))
		return models.EmailResult{Sent: false, Reason: err.Error()}
	}
	return result
}
