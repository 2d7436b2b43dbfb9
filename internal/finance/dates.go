package finance

import (
	"strings"
	"time"
)

// dateLayouts are tried in order. Numeric dates are read month first and
// fall back to day first only when the leading field cannot be a month, so
// 01/02/2021 is January 2 and 13/01/2021 is January 13.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02/01/2006",
	"2/1/2006",
	"01-02-2006",
	"02-01-2006",
	"01.02.2006",
	"02.01.2006",
	"20060102",
}

// parseDate returns the calendar day of s at midnight UTC.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
