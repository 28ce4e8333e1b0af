package core

import (
	"fmt"
	"time"
)

// TimeLayout is the text form of created_at and updated_at in records.
const TimeLayout = "2006-01-02T15:04:05.000000"

// parseLayouts are tried in order; the first one accepts any (or no) fraction.
var parseLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
}

// now is the entity clock. Timestamps are UTC at microsecond precision so
// that FormatTime/ParseTime round-trip exactly.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// FormatTime renders t as YYYY-MM-DDTHH:MM:SS.ffffff.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseTime parses ISO-8601 text as written by FormatTime.
// Text with an explicit offset is accepted and converted to UTC; digits
// past the microsecond are dropped.
func ParseTime(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range parseLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC().Truncate(time.Microsecond), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func timeValue(name string, v any) (time.Time, error) {
	switch t := v.(type) {
	case string:
		parsed, err := ParseTime(t)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse %s: %w", name, err)
		}
		return parsed, nil
	case time.Time:
		return t.UTC().Truncate(time.Microsecond), nil
	default:
		return time.Time{}, fmt.Errorf("%s: %w: expected ISO-8601 text, got %T", name, ErrInvalidValue, v)
	}
}
