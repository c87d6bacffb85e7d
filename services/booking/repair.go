package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"receptionist/models"
	"receptionist/utils"
)

const (
	maxSlotDuration  = 30 * time.Minute
	fallbackEmail    = "guest@example.com"
	fallbackPurpose  = "Meeting via Receptionist"
	fallbackAttendee = "Guest"
)

// repair applies defensive corrections to a raw confirm payload before
// validation. Each fix is independent and logged; fixes only touch fields
// that are template placeholders or structurally broken. The returned
// list names the fields that arrived as unsubstituted placeholders.
func (s *DefaultConfirmationService) repair(ctx context.Context, in models.ConfirmMeetingInput) (models.ConfirmMeetingInput, []string) {
	logger := utils.GetLogger()
	out := in

	var unsubstituted []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"start", in.Start},
		{"end", in.End},
		{"clientEmail", in.ClientEmail},
		{"purpose", in.Purpose},
		{"attendeeName", in.AttendeeName},
	} {
		if models.IsUnsubstitutedTemplate(f.value) {
			unsubstituted = append(unsubstituted, f.name)
		}
	}

	// A substituted but non-chronological or over-long slot is forced back
	// to the canonical 30 minutes. Seen when the upstream variable carries
	// a trailing space and the end timestamp fails to substitute cleanly.
	if out.Start != "" && out.End != "" &&
		!models.IsUnsubstitutedTemplate(out.Start) && !models.IsUnsubstitutedTemplate(out.End) {
		start, errS := time.Parse(time.RFC3339, out.Start)
		end, errE := time.Parse(time.RFC3339, out.End)
		if errS == nil && errE == nil {
			duration := end.Sub(start)
			if duration <= 0 || duration > maxSlotDuration {
				out.End = start.Add(maxSlotDuration).Format(time.RFC3339)
				reason := "slot_must_be_30_min"
				if duration <= 0 {
					reason = "identical"
				}
				logger.Info("confirm_meeting_fixed_slot_duration",
					zap.String("originalStart", in.Start),
					zap.String("originalEnd", in.End),
					zap.String("fixedEnd", out.End),
					zap.String("reason", reason))
			}
		}
	}

	// Placeholder timestamps: best-effort recovery from the last persisted
	// availability snapshot. Failure here is non-fatal; validation will
	// reject whatever is left.
	if models.IsUnsubstitutedTemplate(out.Start) || models.IsUnsubstitutedTemplate(out.End) {
		snap, err := s.Snapshots.GetAvailability(ctx)
		if err != nil {
			logger.Warn("confirm_meeting_fallback_read_failed", zap.Error(err))
		} else if snap != nil && len(snap.Available) > 0 {
			first := snap.Available[0]
			out.Start = first.Start.Format(time.RFC3339)
			out.End = first.End.Format(time.RFC3339)
			logger.Info("confirm_meeting_used_last_availability_fallback",
				zap.Time("start", first.Start), zap.Time("end", first.End))
		}
	}

	if models.IsUnsubstitutedTemplate(out.ClientEmail) {
		out.ClientEmail = fallbackEmail
		logger.Info("confirm_meeting_used_client_email_fallback")
	}
	if models.IsUnsubstitutedTemplate(out.Purpose) {
		out.Purpose = fallbackPurpose
		logger.Info("confirm_meeting_used_purpose_fallback")
	}
	if models.IsUnsubstitutedTemplate(out.AttendeeName) {
		out.AttendeeName = fallbackAttendee
		logger.Info("confirm_meeting_used_attendee_name_fallback")
	}

	return out, unsubstituted
}
