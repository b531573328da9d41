package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// zoneless layouts are interpreted in the process-local zone (see TZ).
var zonelessLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Timestamp is an ISO-8601 event timestamp. Values carrying an offset are
// parsed as RFC 3339; values without one use the local zone.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses s using the accepted event timestamp layouts.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{t}, nil
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// Display formats the timestamp the way invoices print event times,
// e.g. "June 14, 2025 at 02:00 PM".
func (t Timestamp) Display() string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("January 2, 2006 at 03:04 PM")
}
