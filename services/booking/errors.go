package booking

import (
	"fmt"
	"strings"
)

// InvalidInputError is a structural rejection of a confirm-meeting
// payload. When the upstream templating system leaked placeholders, the
// offending fields are enumerated and the hint tells the operator how to
// fix the agent configuration.
type InvalidInputError struct {
	Message             string
	Fields              []string
	UnsubstitutedFields []string
	Hint                string
}

func (e *InvalidInputError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

// ConflictError means the requested slot was no longer free at commit
// time. This is an expected, caller-retryable outcome, not a defect.
type ConflictError struct {
	Slot string
}

func (e *ConflictError) Error() string {
	return "Requested slot is unavailable. Please choose another time."
}

// CommitError wraps a calendar insert failure that was not recoverable
// via the degraded no-attendee retry.
type CommitError struct {
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("failed to create calendar event: %v", e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
