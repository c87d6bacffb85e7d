package notification

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"receptionist/models"
)

const icsTimeLayout = "20060102T150405Z"

func escapeIcsValue(s string) string {
	r := strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)
	return r.Replace(s)
}

// generateICS builds iCalendar invite content so recipients can add the
// event to their own calendar from the email attachment.
func generateICS(summary, description string, slot models.Slot) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Calendar Receptionist//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:REQUEST",
		"BEGIN:VEVENT",
		"UID:meeting-" + uuid.NewString() + "@calendar-receptionist",
		"DTSTAMP:" + time.Now().UTC().Format(icsTimeLayout),
		"DTSTART:" + slot.Start.UTC().Format(icsTimeLayout),
		"DTEND:" + slot.End.UTC().Format(icsTimeLayout),
		"SUMMARY:" + escapeIcsValue(summary),
	}
	if description != "" {
		lines = append(lines, "DESCRIPTION:"+escapeIcsValue(description))
	}
	lines = append(lines, "END:VEVENT", "END:VCALENDAR")
	return strings.Join(lines, "\r\n")
}
