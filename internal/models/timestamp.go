// ABOUTME: ISO-8601 timestamp used in stored records
// ABOUTME: Serializes as UTC with millisecond precision and parses any RFC 3339 value

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the wire layout of stored timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp is an instant stored as an ISO-8601 string.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to milliseconds in UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.UTC().Truncate(time.Millisecond)}
}

func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimestampLayout)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler. Null, empty and unparseable
// strings decode to the zero value; only non-string JSON is an error.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		parsed = Timestamp{}
	}
	*t = parsed
	return nil
}

// ParseTimestamp parses an RFC 3339 string or a bare date (midnight UTC).
// Empty input yields the zero value.
func ParseTimestamp(s string) (Timestamp, error) {
	if s == "" {
		return Timestamp{}, nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return NewTimestamp(parsed), nil
	}
	if day, dayErr := time.Parse(time.DateOnly, s); dayErr == nil {
		return NewTimestamp(day), nil
	}
	return Timestamp{}, fmt.Errorf("parse timestamp %q: %w", s, err)
}
