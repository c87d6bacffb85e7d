package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	availabilityRepo "receptionist/database/repository/availability"
	"receptionist/models"
	"receptionist/services/booking"
	"receptionist/services/scheduling"
	"receptionist/utils"
)

// WebhookHandler serves the two voice-agent webhooks plus the polling and
// window-query endpoints.
type WebhookHandler struct {
	Availability scheduling.AvailabilityService
	Candidates   *scheduling.CandidateBuilder
	Confirmation booking.ConfirmationService
	Snapshots    availabilityRepo.Repository
	Loc          *time.Location
	Logger       *zap.Logger
}

func NewWebhookHandler(
	availability scheduling.AvailabilityService,
	candidates *scheduling.CandidateBuilder,
	confirmation booking.ConfirmationService,
	snapshots availabilityRepo.Repository,
	loc *time.Location,
	logger *zap.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		Availability: availability,
		Candidates:   candidates,
		Confirmation: confirmation,
		Snapshots:    snapshots,
		Loc:          loc,
		Logger:       logger,
	}
}

// CheckAvailability handles the check-availability webhook: it builds
// candidate slots from the payload, filters them against the calendar,
// and returns the slots with their spoken forms.
func (h *WebhookHandler) CheckAvailability(c *gin.Context) {
	var input models.CheckAvailabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid availability payload", "details": err.Error()})
		return
	}
	for _, s := range input.ProposedSlots {
		if !s.Range().Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid availability payload",
				"details": "Each slot must have end after start",
			})
			return
		}
	}

	now := time.Now()
	candidates, source := h.Candidates.Build(input.ProposedSlots, input.TargetDay, now)

	h.Logger.Info("webhook_check_availability_received",
		zap.Int("proposedSlots", len(input.ProposedSlots)),
		zap.String("targetDay", input.TargetDay),
		zap.String("candidateSource", string(source)),
		zap.Int("candidates", len(candidates)))

	available, err := h.Availability.FindAvailable(c.Request.Context(), candidates)
	if err != nil {
		respondError(c, err)
		return
	}

	formatted := make([]models.SlotReadable, 0, len(available))
	for _, s := range available {
		formatted = append(formatted, scheduling.FormatIsoRange(s, h.Loc))
	}
	summary := scheduling.Summarize(available, h.Loc)

	// Persisted for frontend polling and confirm-payload repair; losing
	// the write only degrades those, so it never fails the request.
	snap := models.AvailabilitySnapshot{Available: available, Formatted: formatted}
	if err := h.Snapshots.SaveAvailability(c.Request.Context(), snap); err != nil {
		h.Logger.Error("failed_write_availability", zap.Error(err))
	}

	resp := models.CheckAvailabilityResponse{
		Available:              available,
		Formatted:              formatted,
		AvailableSummary:       summary,
		UsedFallback:           source == scheduling.SourceDefault,
		UsedTargetDayInference: source == scheduling.SourceTargetDay,
	}
	if len(available) > 0 {
		start := available[0].Start.Format(time.RFC3339)
		end := available[0].End.Format(time.RFC3339)
		resp.FirstSlotStart = &start
		resp.FirstSlotEnd = &end
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmMeeting handles the confirm-meeting webhook by running the
// booking state machine.
func (h *WebhookHandler) ConfirmMeeting(c *gin.Context) {
	var input models.ConfirmMeetingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid confirm meeting payload", "details": err.Error()})
		return
	}

	resp, err := h.Confirmation.Confirm(c.Request.Context(), input)
	if err != nil {
		var invalid *booking.InvalidInputError
		if errors.As(err, &invalid) {
			body := gin.H{"error": invalid.Message, "details": invalid.Fields}
			if invalid.Hint != "" {
				body["hint"] = invalid.Hint
			}
			if len(invalid.UnsubstitutedFields) > 0 {
				body["unsubstitutedFields"] = invalid.UnsubstitutedFields
			}
			c.JSON(http.StatusBadRequest, body)
			return
		}
		var conflict *booking.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": conflict.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// FreeSlots answers window-level availability queries: busy intervals are
// subtracted from the requested window and the remainder is split into
// fixed-length slots.
func (h *WebhookHandler) FreeSlots(c *gin.Context) {
	now := time.Now()
	window := models.TimeRange{Start: now, End: now.AddDate(0, 0, 7)}
	if v := c.Query("start"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start", "details": err.Error()})
			return
		}
		window.Start = t
	}
	if v := c.Query("end"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end", "details": err.Error()})
			return
		}
		window.End = t
	}
	if !window.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "window end must be after start"})
		return
	}

	slotMinutes := 30
	if v := c.Query("slotMinutes"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slotMinutes"})
			return
		}
		slotMinutes = parsed
	}

	slots, err := h.Availability.FreeSlots(c.Request.Context(), window, time.Duration(slotMinutes)*time.Minute)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"start":          window.Start.Format(time.RFC3339),
		"end":            window.End.Format(time.RFC3339),
		"slotMinutes":    slotMinutes,
		"availableSlots": slots,
	})
}

// GetAvailability returns the last computed availability snapshot.
func (h *WebhookHandler) GetAvailability(c *gin.Context) {
	snap, err := h.Snapshots.GetAvailability(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if snap == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no availability yet"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GetLastEvent returns the last committed calendar event.
func (h *WebhookHandler) GetLastEvent(c *gin.Context) {
	event, err := h.Snapshots.GetLastEvent(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no event yet"})
		return
	}
	c.JSON(http.StatusOK, event)
}

// respondError maps service errors onto responses, preserving upstream
// status codes where present.
func respondError(c *gin.Context, err error) {
	var apiErr *utils.APIError
	if errors.As(err, &apiErr) {
		body := gin.H{"error": apiErr.Message}
		if apiErr.Hint != "" {
			body["hint"] = apiErr.Hint
		}
		c.JSON(apiErr.Status, body)
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "Internal server error", err.Error())
}
