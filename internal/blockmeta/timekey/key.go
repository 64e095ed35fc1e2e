package timekey

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidKey reports a malformed or out-of-range bucket key.
var ErrInvalidKey = errors.New("invalid bucket key")

var errAnchorFormat = errors.New("anchor has wrong length or non-digit characters")

// Granularity is the calendar unit of a bucket.
type Granularity string

// Boundary selects which edge of a bucket a key denotes.
type Boundary string

const (
	Day   Granularity = "day"
	Month Granularity = "month"

	First Boundary = "first"
	Last  Boundary = "last"
)

const (
	dayAnchorLayout   = "20060102"
	monthAnchorLayout = "200601"
	keySeparator      = ":"
)

// Key is a decoded bucket key. Anchor holds the calendar date of the bucket at midnight UTC;
// for month keys the day is always 1.
type Key struct {
	Granularity Granularity
	Boundary    Boundary
	Anchor      time.Time
}

// String encodes the key, e.g. "month:first:202107".
func (k Key) String() string {
	layout := dayAnchorLayout
	if k.Granularity == Month {
		layout = monthAnchorLayout
	}
	return string(k.Granularity) + keySeparator + string(k.Boundary) + keySeparator + k.Anchor.Format(layout)
}

// Instant resolves the key to the boundary instant it denotes. Last boundaries resolve to
// 23:59:59.999 of the last day in the bucket.
func (k Key) Instant() time.Time {
	y, m, d := k.Anchor.Date()
	switch {
	case k.Boundary == First:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case k.Granularity == Month:
		// day 0 of the next month normalizes to the last day of this one
		return time.Date(y, m+1, 0, 23, 59, 59, lastKeyNanos, time.UTC)
	default:
		return time.Date(y, m, d, 23, 59, 59, lastKeyNanos, time.UTC)
	}
}

func newKey(g Granularity, b Boundary, t time.Time) Key {
	y, m, d := t.UTC().Date()
	if g == Month {
		d = 1
	}
	return Key{Granularity: g, Boundary: b, Anchor: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// StartOfDayKey returns "day:first:YYYYMMDD" for the calendar date of t.
func StartOfDayKey(t time.Time) string {
	return newKey(Day, First, t).String()
}

// EndOfDayKey returns "day:last:YYYYMMDD" for the calendar date of t.
func EndOfDayKey(t time.Time) string {
	return newKey(Day, Last, t).String()
}

// StartOfMonthKey returns "month:first:YYYYMM" for the calendar month of t.
func StartOfMonthKey(t time.Time) string {
	return newKey(Month, First, t).String()
}

// EndOfMonthKey returns "month:last:YYYYMM" for the calendar month of t.
func EndOfMonthKey(t time.Time) string {
	return newKey(Month, Last, t).String()
}

// StartOfDay returns midnight of the calendar date of t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns 23:59:59.999999999 of the calendar date of t.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, lastInstantNanos, time.UTC)
}

// StartOfMonth returns midnight of the first day of the calendar month of t.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the instant one nanosecond before the first instant of the next month.
func EndOfMonth(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	if m == time.December {
		y, m = y+1, time.January
	} else {
		m++
	}
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
}

func invalidKey(key, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidKey, key, reason)
}
