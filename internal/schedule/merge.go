package schedule

import (
	"sort"
	"strings"
	"time"
)

// timestampLayouts are tried in order for values that carry no UTC offset.
// Offset-carrying values are handled by RFC3339 parsing first.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601-ish timestamp and normalizes it to loc.
// Values with an explicit offset (including a trailing "Z") keep their instant
// and are converted; timezone-naive values are interpreted as wall-clock time
// in loc. Date-only values resolve to midnight in loc. The second return value
// is false when the input is empty or unparsable.
func ParseTimestamp(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.In(loc), true
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// BusyIntervals converts raw event time ranges into the merged busy model for
// one working day. Events with an unparsable start are skipped; a missing end
// defaults to start plus defaultDuration. Surviving events are normalized to
// loc, clipped to [dayStart, dayEnd), and merged.
func BusyIntervals(events []RawEvent, dayStart, dayEnd time.Time, loc *time.Location, defaultDuration time.Duration) []Interval {
	var blocks []Interval

	for _, ev := range events {
		start, ok := ParseTimestamp(ev.Start, loc)
		if !ok {
			continue
		}
		end, ok := ParseTimestamp(ev.End, loc)
		if !ok {
			end = start.Add(defaultDuration)
		}

		if !end.After(dayStart) || !start.Before(dayEnd) {
			continue
		}

		if start.Before(dayStart) {
			start = dayStart
		}
		if end.After(dayEnd) {
			end = dayEnd
		}
		if !end.After(start) {
			continue
		}

		blocks = append(blocks, Interval{Start: start, End: end})
	}

	return Merge(blocks)
}

// Merge sorts intervals by start and coalesces overlapping or touching
// entries. The result is sorted ascending, non-overlapping, and every entry
// has Start < End. Merge is idempotent.
func Merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []Interval{sorted[0]}
	for _, cur := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !cur.Start.After(last.End) {
			if cur.End.After(last.End) {
				last.End = cur.End
			}
			continue
		}
		merged = append(merged, cur)
	}

	return merged
}
