package timekey

import (
	"strings"
	"time"
)

// Parse decodes a bucket key and resolves it to the boundary instant it denotes.
func Parse(key string) (time.Time, error) {
	k, err := ParseKey(key)
	if err != nil {
		return time.Time{}, err
	}
	return k.Instant(), nil
}

// ParseKey decodes a bucket key without resolving it. Any malformed field or impossible
// calendar date yields an error wrapping ErrInvalidKey.
func ParseKey(key string) (Key, error) {
	parts := strings.Split(key, keySeparator)
	if len(parts) != 3 {
		return Key{}, invalidKey(key, "expected 3 fields")
	}

	granularity := Granularity(parts[0])
	var layout string
	switch granularity {
	case Day:
		layout = dayAnchorLayout
	case Month:
		layout = monthAnchorLayout
	default:
		return Key{}, invalidKey(key, "unknown granularity")
	}

	boundary := Boundary(parts[1])
	if boundary != First && boundary != Last {
		return Key{}, invalidKey(key, "unknown boundary")
	}

	anchor, err := parseAnchor(parts[2], layout)
	if err != nil {
		return Key{}, invalidKey(key, err.Error())
	}

	return Key{Granularity: granularity, Boundary: boundary, Anchor: anchor}, nil
}

func parseAnchor(value, layout string) (time.Time, error) {
	if len(value) != len(layout) || strings.IndexFunc(value, notDigit) >= 0 {
		return time.Time{}, errAnchorFormat
	}
	return time.ParseInLocation(layout, value, time.UTC)
}

func notDigit(r rune) bool {
	return r < '0' || r > '9'
}
