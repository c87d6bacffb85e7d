package calendar

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"

	"receptionist/utils"
)

// ErrDelegationDenied marks an event insert that Google rejected because
// inviting attendees requires domain-wide delegation the service account
// does not have. The booking state machine retries these once without
// attendees.
var ErrDelegationDenied = errors.New("calendar: attendee invitations require domain-wide delegation")

// IsDelegationDenied reports whether err is the delegation-denied case.
func IsDelegationDenied(err error) bool {
	return errors.Is(err, ErrDelegationDenied)
}

const privateKeyHint = "Invalid GCP_PRIVATE_KEY format. Ensure it is copied from service-account JSON and uses \\n for newlines."

// translateError maps Google API failures onto APIErrors: configuration
// defects (malformed private key, missing delegation) become actionable
// messages, everything else keeps the upstream status code.
func translateError(err error, fallback string) error {
	msg := err.Error()

	if strings.Contains(msg, "DECODER routines::unsupported") || strings.Contains(msg, "private key") {
		return utils.NewAPIError(http.StatusInternalServerError, privateKeyHint)
	}
	if strings.Contains(msg, "Domain-Wide Delegation") {
		return ErrDelegationDenied
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Message != "" {
			return utils.NewAPIError(gerr.Code, gerr.Message)
		}
		return utils.NewAPIError(gerr.Code, fallback)
	}
	return utils.NewAPIError(http.StatusBadGateway, msg)
}
