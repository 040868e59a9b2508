package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/goliatone/go-portfolio/internal/dates"
)

func TestFormat_ValidTripletIsIdentity(t *testing.T) {
	for _, input := range []string{"2024-01-15", "1999-12-31", "2000-02-29", "1970-01-01", "2031-07-04"} {
		assert.Equal(t, input, dates.Format(input), "input %q", input)
	}
}

func TestFormat_TripletLenientComponents(t *testing.T) {
	assert.Equal(t, "2024-01-05", dates.Format("2024-1-5"))
	assert.Equal(t, "2024-03-01", dates.Format("2024-02-30"), "days roll over like a calendar")
	assert.Equal(t, "2025-01-01", dates.Format("2024-13-01"), "months roll over into the next year")
	assert.Equal(t, "2024-01-15", dates.Format("2024-01-15-draft"), "extra components are ignored")
}

func TestFormat_GenericFallback(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"2024-01-15T23:30:00Z", "2024-01-15"},
		{"2024-01-15T23:30:00-05:00", "2024-01-16"},
		{"Mon, 02 Jan 2006 15:04:05 MST", "2006-01-02"},
		{"02 Jan 06 15:04 MST", "2006-01-02"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, dates.Format(tc.input), "input %q", tc.input)
	}
}

func TestFormat_HandWrittenDates(t *testing.T) {
	cases := []string{
		"January 15, 2024",
		"Jan 15 2024",
		"Jan 15, 2024",
		"15 January 2024",
		"2024-01-15 10:00",
		"2024-01-15 10:00:30",
		"2024/01/15",
	}
	for _, input := range cases {
		assert.Equal(t, "2024-01-15", dates.Format(input), "input %q", input)
	}
}

func TestFormat_AlwaysFourDigitYear(t *testing.T) {
	for _, input := range []any{20240115, "20240115", "2024", "99999-01-01", "10000-12-31", int64(1705276800)} {
		got := dates.Format(input)
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, got, "input %#v", input)
		assert.Equal(t, "1970-01-01", got, "input %#v", input)
	}

	far := time.Date(12000, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, dates.Epoch, dates.Normalize(far))
}

func TestFormat_MalformedFallsBackToEpoch(t *testing.T) {
	for _, input := range []any{"", "not a date", "2024-xx-01", "yesterday", "----", nil, map[string]any{"y": 2024}} {
		assert.NotPanics(t, func() {
			assert.Equal(t, "1970-01-01", dates.Format(input), "input %#v", input)
		})
	}
}

func TestNormalize_TimeValues(t *testing.T) {
	ts := time.Date(2023, 6, 1, 22, 15, 0, 0, time.FixedZone("PDT", -7*3600))
	assert.Equal(t, time.Date(2023, 6, 2, 0, 0, 0, 0, time.UTC), dates.Normalize(ts))
	assert.Equal(t, dates.Epoch, dates.Normalize(time.Time{}))

	var nilTime *time.Time
	assert.Equal(t, dates.Epoch, dates.Normalize(nilTime))
}

func TestNormalize_NonStringScalars(t *testing.T) {
	assert.Equal(t, dates.Epoch, dates.Normalize(true))
	assert.Equal(t, "1970-01-01", dates.Format([]string{"2024"}))
}
