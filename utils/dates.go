package utils

import (
	"fmt"
	"strings"
	"time"
)

// DisplayDateLayout is the day-first format shown to clients
const DisplayDateLayout = "02/01/2006"

var inputDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	DisplayDateLayout,
}

// ParseDate accepts RFC 3339, ISO calendar dates and DD/MM/YYYY
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// FormatDisplayDate renders t as DD/MM/YYYY, or an empty string for the zero time
func FormatDisplayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayDateLayout)
}
