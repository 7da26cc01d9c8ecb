package finance

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeFormat is the canonical layout for timestamps in transaction logs and
// state files. Timestamps are naive local times with second precision.
const TimeFormat = "2006-01-02 15:04:05"

// timeLayouts are the accepted input layouts, tried in order. Bare dates
// parse to midnight so that imported statements with day precision sort
// before the trades of that day.
var timeLayouts = []string{TimeFormat, "2006-01-02", time.RFC3339}

// Timestamp identifies the instant a ledger entry was recorded.
//
// The zero value is "no timestamp"; ledger operations stamp it with the
// current time before persisting.
type Timestamp struct {
	t time.Time
}

// NewTimestamp returns the timestamp for the given local date and time.
func NewTimestamp(year int, month time.Month, day, hour, min, sec int) Timestamp {
	return Timestamp{t: time.Date(year, month, day, hour, min, sec, 0, time.Local)}
}

// Now returns the current local time truncated to the second.
func Now() Timestamp {
	return Timestamp{t: time.Now().Truncate(time.Second)}
}

// ParseTimestamp parses s against the accepted layouts.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{t: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q, expected format %q", s, TimeFormat)
}

// MustParseTimestamp parses s and panics on error. For tests and constants.
func MustParseTimestamp(s string) Timestamp {
	t, err := ParseTimestamp(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String formats the timestamp using TimeFormat.
func (t Timestamp) String() string { return t.t.Format(TimeFormat) }

// Time returns the underlying time.Time.
func (t Timestamp) Time() time.Time { return t.t }

// IsZero reports whether the timestamp is unset.
func (t Timestamp) IsZero() bool { return t.t.IsZero() }

// Before reports whether t is strictly before o.
func (t Timestamp) Before(o Timestamp) bool { return t.t.Before(o.t) }

// After reports whether t is strictly after o.
func (t Timestamp) After(o Timestamp) bool { return t.t.After(o.t) }

// Equal reports whether t and o identify the same instant.
func (t Timestamp) Equal(o Timestamp) bool { return t.t.Equal(o.t) }

// MarshalJSON encodes the timestamp as a TimeFormat string.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a timestamp from any accepted layout.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a JSON string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
