package helpers

import (
	"strings"
	"time"
)

// flexibleDateLayouts are accepted user-facing date formats, most specific first.
var flexibleDateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"2006-01-02",
	"02.01.2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseFlexibleDate parses a date written in any of the common
// day-first or ISO formats users type into chat.
func ParseFlexibleDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range flexibleDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDocumentDate renders a date the way generated documents expect it.
func FormatDocumentDate(t time.Time) string {
	return t.Format("02/01/2006")
}
