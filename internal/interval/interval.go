package interval

import (
	"sort"
	"time"
)

// Range is a half-open date range [Start, End). A zero Range is the
// "no availability" signal returned when a calendar is fully booked.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// IsValid reports whether the range is non-empty (Start strictly before End).
func (r Range) IsValid() bool {
	return r.Start.Before(r.End)
}

// Days returns the length of the range in whole days.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// Normalize truncates both endpoints to their UTC calendar day.
func (r Range) Normalize() Range {
	return Range{Start: dateOnly(r.Start), End: dateOnly(r.End)}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether two half-open ranges share any day.
// Adjacent ranges (a.End == b.Start) do not overlap, which is what
// allows back-to-back bookings on the same item.
func Overlaps(a, b Range) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Contains reports whether point falls inside the range, start inclusive,
// end exclusive.
func Contains(r Range, point time.Time) bool {
	return !point.Before(r.Start) && point.Before(r.End)
}

// SortByEnd orders ranges by end date ascending, in place.
func SortByEnd(ranges []Range) {
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].End.Before(ranges[j].End)
	})
}

// FirstGapAfter scans ranges sorted by end ascending and returns the
// earliest sub-range of [lower, upper] that starts at or after minStart
// and is not covered by any input range. The second return value is
// false when every day through upper is booked.
func FirstGapAfter(sorted []Range, lower, upper, minStart time.Time) (Range, bool) {
	cursor := lower
	if minStart.After(cursor) {
		cursor = minStart
	}
	for _, r := range sorted {
		if !cursor.Before(upper) {
			return Range{}, false
		}
		if r.Start.After(cursor) {
			// Open gap before this booking. The calendar window is a
			// hard ceiling, so the gap never extends past upper.
			end := r.Start
			if end.After(upper) {
				end = upper
			}
			return Range{Start: cursor, End: end}, true
		}
		if r.End.After(cursor) {
			cursor = r.End
		}
	}
	if cursor.Before(upper) {
		return Range{Start: cursor, End: upper}, true
	}
	return Range{}, false
}
