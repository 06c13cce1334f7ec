package schedule

import "time"

// GenerateSlots tiles [dayStart, dayEnd) with fixed-duration slots, skipping
// the merged busy intervals. Slots are always duration-aligned to dayStart
// rather than to busy-interval boundaries; this is a deliberate simple tiling
// policy, not best-fit packing. busy must already be merged and sorted.
func GenerateSlots(dayStart, dayEnd time.Time, busy []Interval, duration time.Duration, loc *time.Location) []Slot {
	var slots []Slot
	cursor := dayStart

	emit := func() {
		end := cursor.Add(duration)
		slots = append(slots, Slot{
			ID:       slotID(cursor),
			Start:    cursor,
			End:      end,
			Location: loc,
		})
		cursor = end
	}

	for _, b := range busy {
		for !cursor.Add(duration).After(b.Start) {
			emit()
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
		if !cursor.Before(dayEnd) {
			break
		}
	}

	for !cursor.Add(duration).After(dayEnd) {
		emit()
	}

	return slots
}

// HasConflict reports whether the candidate [start, end) overlaps any busy
// interval. The test is half-open, so intervals that only touch at an endpoint
// do not conflict.
func HasConflict(start, end time.Time, busy []Interval) bool {
	for _, b := range busy {
		if start.Before(b.End) && end.After(b.Start) {
			return true
		}
	}
	return false
}
