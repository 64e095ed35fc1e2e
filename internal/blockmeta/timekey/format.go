package timekey

import (
	"time"
)

const (
	// lastInstantNanos is the sub-second part of an end-of-bucket instant derived from a live timestamp.
	lastInstantNanos = int(time.Second - time.Nanosecond)
	// lastKeyNanos is the sub-second part of an end-of-bucket instant resolved from a stored key.
	lastKeyNanos = int(time.Second - time.Millisecond)
)

const (
	layoutSeconds = "2006-01-02 15:04:05"
	layoutMillis  = layoutSeconds + ".000"
	layoutMicros  = layoutSeconds + ".000000"
	layoutNanos   = layoutSeconds + ".000000000"
)

// Format renders an instant the way bucket timestamps are written to the changelog:
// "2021-07-05 00:00:00" with a fractional part only when non-zero, printed with
// 3, 6 or 9 digits depending on the finest non-zero unit.
func Format(t time.Time) string {
	t = t.UTC()
	nanos := t.Nanosecond()
	switch {
	case nanos == 0:
		return t.Format(layoutSeconds)
	case nanos%int(time.Millisecond) == 0:
		return t.Format(layoutMillis)
	case nanos%int(time.Microsecond) == 0:
		return t.Format(layoutMicros)
	default:
		return t.Format(layoutNanos)
	}
}
