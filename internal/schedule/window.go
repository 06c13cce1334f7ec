package schedule

import (
	"fmt"
	"time"
)

// WorkWindow is the daily time-of-day range within which slots are generated.
type WorkWindow struct {
	startHour, startMinute int
	endHour, endMinute     int
}

// ParseWorkWindow builds a WorkWindow from "HH:MM" start and end values.
// A configured end at or before the start is treated as a misconfiguration and
// wraps to the default end of day (23:59).
func ParseWorkWindow(start, end string) (WorkWindow, error) {
	sh, sm, err := parseClock(start)
	if err != nil {
		return WorkWindow{}, err
	}
	eh, em, err := parseClock(end)
	if err != nil {
		return WorkWindow{}, err
	}

	if eh*60+em <= sh*60+sm {
		eh, em = 23, 59
	}

	return WorkWindow{
		startHour:   sh,
		startMinute: sm,
		endHour:     eh,
		endMinute:   em,
	}, nil
}

func parseClock(value string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time value %q: use HH:MM format", value)
	}
	return t.Hour(), t.Minute(), nil
}

// DayBounds applies the window to a specific calendar date in the given
// location and returns the [dayStart, dayEnd) pair. If the resolved end does
// not land after the start (possible on boundary dates such as DST
// transitions), the end is extended by one full day.
func (w WorkWindow) DayBounds(year int, month time.Month, day int, loc *time.Location) (time.Time, time.Time) {
	dayStart := time.Date(year, month, day, w.startHour, w.startMinute, 0, 0, loc)
	dayEnd := time.Date(year, month, day, w.endHour, w.endMinute, 0, 0, loc)

	if !dayEnd.After(dayStart) {
		dayEnd = dayEnd.AddDate(0, 0, 1)
	}

	return dayStart, dayEnd
}
