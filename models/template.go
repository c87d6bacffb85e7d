package models

import (
	"regexp"
	"strings"
)

// Matches un-replaced template placeholders such as
// "{{day_time_mentioned_by_user}}" that the voice agent's templating
// system leaks into webhook payloads.
var templateMarker = regexp.MustCompile(`\{\{[^}]*\}\}`)

// IsUnsubstitutedTemplate reports whether s is a leaked template
// placeholder. Such values are treated as absent, never as literal data.
func IsUnsubstitutedTemplate(s string) bool {
	return templateMarker.MatchString(strings.TrimSpace(s))
}
