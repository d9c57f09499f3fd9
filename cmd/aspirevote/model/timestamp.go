package model

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateLayout,
}

// ParseTimestamp accepts RFC 3339 timestamps and the shorter date forms admins
// type into import sheets. Values without a zone are read as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("timestamp is empty")
	}
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}

// ParseEndTimestamp is ParseTimestamp for the closing bound of a window: a bare
// date resolves to the last instant of that day.
func ParseEndTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, strings.TrimSpace(value)); err == nil {
		return t.Add(24*time.Hour - time.Nanosecond), nil
	}
	return ParseTimestamp(value)
}

type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
