package core

import (
	"fmt"
	"strings"
	"time"
)

const recordTimeLayout = "2006-01-02T15:04:05"

// ParseCreated parses a record's creation timestamp. The fractional second and
// timezone suffix are dropped and the remainder is read as a naive UTC time.
func ParseCreated(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if i := strings.IndexByte(trimmed, '.'); i >= 0 {
		trimmed = trimmed[:i]
	}
	trimmed = strings.TrimSuffix(trimmed, "Z")
	// Offsets only appear after the time part, past "YYYY-MM-DDTHH".
	if i := strings.LastIndexAny(trimmed, "+-"); i > len("2006-01-02T15") {
		trimmed = trimmed[:i]
	}
	trimmed = strings.Replace(trimmed, " ", "T", 1)

	t, err := time.Parse(recordTimeLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid created timestamp %q: %w", s, err)
	}
	return t, nil
}

// dayFirstLayouts are tried in order by ParseDayFirst. Ambiguous numeric dates
// are read day first.
var dayFirstLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2/1/2006",
	"02/01/06",
	"2/1/06",
	"02-01-2006",
	"02.01.2006",
	"02.01.2006 15:04",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2 2006",
	"January 2 2006",
}

// ParseDayFirst parses a user supplied date literal, reading numeric dates
// day first (01/02/2021 is the 1st of February).
func ParseDayFirst(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := ParseCreated(s); err == nil {
		return t, nil
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
