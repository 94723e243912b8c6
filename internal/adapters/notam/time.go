package notam

import (
	"strings"
	"time"
)

const isoLayout = "2006-01-02T15:04:05Z"

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"01/02/2006 1504",
	"200601021504",
}

// parseTime returns nil for empty, permanent or unparseable values
func parseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "PERM") {
		return nil
	}
	s = strings.TrimSuffix(s, "EST")
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
