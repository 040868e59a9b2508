// Package dates normalises loosely typed metadata values into calendar dates.
package dates

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/relvacode/iso8601"
	"github.com/spf13/cast"
)

// Layout is the serialised form of a calendar date.
const Layout = "2006-01-02"

// Epoch is returned for values that cannot be read as a date.
var Epoch = time.Unix(0, 0).UTC()

// Years outside this range cannot be written as four digits.
const (
	minYear = 0
	maxYear = 9999
)

// layouts are tried before the generic parsers. They cover the forms people
// type by hand into front matter.
var layouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// Normalize converts value into a UTC calendar date. It never fails:
//
//   - a "Y-M-D" triplet of integers is built with time.Date in UTC, so an
//     out-of-range month or day rolls over into the following period;
//   - bare numbers such as 20240115 are not dates;
//   - anything else goes through ISO-8601 parsing, the hand-written layouts,
//     cast and finally dateparse;
//   - values that still cannot be read yield Epoch, and so do dates whose
//     year does not fit in four digits.
//
// The time of day is always discarded.
func Normalize(value any) time.Time {
	t := normalize(value)
	if y := t.Year(); y < minYear || y > maxYear {
		return Epoch
	}
	return t
}

func normalize(value any) time.Time {
	switch v := value.(type) {
	case nil:
		return Epoch
	case time.Time:
		if v.IsZero() {
			return Epoch
		}
		return truncate(v)
	case *time.Time:
		if v == nil {
			return Epoch
		}
		return normalize(*v)
	}

	raw := cast.ToString(value)
	if t, ok := parseTriplet(raw); ok {
		return t
	}
	if t, ok := parseGeneric(raw); ok {
		return t
	}
	return Epoch
}

// Format normalises value and renders it as YYYY-MM-DD.
func Format(value any) string {
	return Normalize(value).Format(Layout)
}

func parseTriplet(raw string) (time.Time, bool) {
	parts := strings.Split(raw, "-")
	if len(parts) < 3 {
		return time.Time{}, false
	}

	var nums [3]int
	for i := range nums {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}
	return time.Date(nums[0], time.Month(nums[1]), nums[2], 0, 0, 0, 0, time.UTC), true
}

func parseGeneric(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || digitsOnly(raw) {
		return time.Time{}, false
	}
	if t, err := iso8601.ParseString(raw); err == nil {
		return truncate(t), true
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return truncate(t), true
		}
	}
	if t, err := cast.ToTimeInDefaultLocationE(raw, time.UTC); err == nil && !t.IsZero() {
		return truncate(t), true
	}
	if t, err := dateparse.ParseIn(raw, time.UTC); err == nil && !t.IsZero() {
		return truncate(t), true
	}
	return time.Time{}, false
}

// digitsOnly reports a bare number such as 20240115. Generic parsers read
// those as a year or a unix timestamp, neither of which is meant here.
func digitsOnly(raw string) bool {
	for _, r := range raw {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func truncate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
