package schedule

import (
	"fmt"
	"time"
)

// Interval represents a half-open busy time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// RawEvent carries the unparsed start/end of a single calendar event.
// Either field may be empty when the backend omitted it.
type RawEvent struct {
	Start string
	End   string
}

// Slot represents a computed appointment slot of fixed duration.
type Slot struct {
	ID       string
	Start    time.Time
	End      time.Time
	Location *time.Location
}

// Label returns the slot's human-readable time range in the display location,
// e.g. "09:00 AM - 09:30 AM".
func (s Slot) Label() string {
	start := s.Start.In(s.Location).Format("03:04 PM")
	end := s.End.In(s.Location).Format("03:04 PM")
	return fmt.Sprintf("%s - %s", start, end)
}

// slotID derives a stable identifier from the slot's start instant, so
// regenerating the same day's slots yields the same IDs.
func slotID(start time.Time) string {
	return "slot-" + start.Format(time.RFC3339)
}
