package models

// CheckAvailabilityInput is the check-availability webhook payload.
// TargetDay may arrive as an unsubstituted template placeholder; the
// handler treats that as absent.
type CheckAvailabilityInput struct {
	ProposedSlots []Slot `json:"proposedSlots"`
	TargetDay     string `json:"targetDay,omitempty"`
}

// SlotReadable pairs a slot's canonical timestamps with its spoken form.
type SlotReadable struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Readable string `json:"readable"`
}

// CheckAvailabilityResponse is returned to the voice agent. First-slot
// fields are flattened because some template engines reject indexed paths
// like $.available[0].
type CheckAvailabilityResponse struct {
	Available              []Slot         `json:"available"`
	Formatted              []SlotReadable `json:"formatted"`
	AvailableSummary       string         `json:"available_summary"`
	FirstSlotStart         *string        `json:"first_slot_start"`
	FirstSlotEnd           *string        `json:"first_slot_end"`
	UsedFallback           bool           `json:"usedFallback"`
	UsedTargetDayInference bool           `json:"usedTargetDayInference"`
}

// AvailabilitySnapshot is the last computed availability, persisted for
// frontend polling and for best-effort repair of broken confirm payloads.
type AvailabilitySnapshot struct {
	Available []Slot         `json:"available"`
	Formatted []SlotReadable `json:"formatted"`
}
