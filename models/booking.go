package models

import "time"

// ConfirmMeetingInput is the raw confirm-meeting webhook payload. Fields
// stay strings until the repair pass has run: the upstream templating
// system can hand us literal "{{selected_slot_start_iso}}" values.
type ConfirmMeetingInput struct {
	Start        string `json:"start"`
	End          string `json:"end"`
	ClientEmail  string `json:"clientEmail"`
	Purpose      string `json:"purpose,omitempty"`
	AttendeeName string `json:"attendeeName,omitempty"`
}

// BookingRequest is a confirm payload that survived repair and validation.
type BookingRequest struct {
	Start        time.Time
	End          time.Time
	ClientEmail  string
	Purpose      string
	AttendeeName string
}

// Slot returns the requested meeting time.
func (b BookingRequest) Slot() Slot {
	return Slot{Start: b.Start, End: b.End}
}

// BookingState tracks a confirm request through the commit pipeline.
type BookingState string

const (
	BookingReceived              BookingState = "Received"
	BookingRepaired              BookingState = "Repaired"
	BookingValidated             BookingState = "Validated"
	BookingAvailabilityConfirmed BookingState = "AvailabilityConfirmed"
	BookingCommitted             BookingState = "Committed"
	BookingRejectedInvalid       BookingState = "RejectedInvalid"
	BookingRejectedConflict      BookingState = "RejectedConflict"
	BookingCommitFailed          BookingState = "CommitFailed"
)

// EmailResult reports whether the confirmation email went out.
type EmailResult struct {
	Sent   bool   `json:"sent"`
	Reason string `json:"reason,omitempty"`
}

// ConfirmMeetingResponse is the success payload for a committed booking.
type ConfirmMeetingResponse struct {
	OK                  bool          `json:"ok"`
	Event               CalendarEvent `json:"event"`
	Email               EmailResult   `json:"email"`
	ConfirmationMessage string        `json:"confirmationMessage"`
}
