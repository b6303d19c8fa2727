package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func rng(start, end string) Range {
	return Range{Start: day(start), End: day(end)}
}

func TestRange_IsValid(t *testing.T) {
	assert.True(t, rng("2026-06-01", "2026-06-05").IsValid())
	assert.False(t, rng("2026-06-05", "2026-06-05").IsValid())
	assert.False(t, rng("2026-06-05", "2026-06-01").IsValid())
}

func TestRange_Days(t *testing.T) {
	assert.Equal(t, 4, rng("2026-06-01", "2026-06-05").Days())
	assert.Equal(t, 1, rng("2026-06-01", "2026-06-02").Days())
}

func TestRange_Normalize(t *testing.T) {
	r := Range{
		Start: time.Date(2026, 6, 1, 14, 30, 0, 0, time.UTC),
		End:   time.Date(2026, 6, 5, 9, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, rng("2026-06-01", "2026-06-05"), r.Normalize())
}

func TestOverlaps(t *testing.T) {
	t.Run("PartialOverlap", func(t *testing.T) {
		assert.True(t, Overlaps(rng("2026-06-01", "2026-06-05"), rng("2026-06-04", "2026-06-10")))
		assert.True(t, Overlaps(rng("2026-06-04", "2026-06-10"), rng("2026-06-01", "2026-06-05")))
	})

	t.Run("Containment", func(t *testing.T) {
		assert.True(t, Overlaps(rng("2026-06-01", "2026-06-10"), rng("2026-06-03", "2026-06-05")))
	})

	t.Run("BackToBackDoesNotOverlap", func(t *testing.T) {
		// One renter returns the morning the next picks up.
		assert.False(t, Overlaps(rng("2026-06-01", "2026-06-05"), rng("2026-06-05", "2026-06-10")))
		assert.False(t, Overlaps(rng("2026-06-05", "2026-06-10"), rng("2026-06-01", "2026-06-05")))
	})

	t.Run("Disjoint", func(t *testing.T) {
		assert.False(t, Overlaps(rng("2026-06-01", "2026-06-03"), rng("2026-06-07", "2026-06-09")))
	})
}

func TestContains(t *testing.T) {
	r := rng("2026-06-01", "2026-06-05")
	assert.True(t, Contains(r, day("2026-06-01")))
	assert.True(t, Contains(r, day("2026-06-04")))
	assert.False(t, Contains(r, day("2026-06-05")))
	assert.False(t, Contains(r, day("2026-05-31")))
}

func TestSortByEnd(t *testing.T) {
	ranges := []Range{
		rng("2026-06-10", "2026-06-15"),
		rng("2026-06-01", "2026-06-03"),
		rng("2026-06-04", "2026-06-08"),
	}
	SortByEnd(ranges)
	assert.Equal(t, day("2026-06-03"), ranges[0].End)
	assert.Equal(t, day("2026-06-08"), ranges[1].End)
	assert.Equal(t, day("2026-06-15"), ranges[2].End)
}

func TestFirstGapAfter(t *testing.T) {
	lower := day("2026-06-01")
	upper := day("2026-06-30")

	t.Run("EmptyCalendar", func(t *testing.T) {
		gap, ok := FirstGapAfter(nil, lower, upper, day("2026-06-03"))
		assert.True(t, ok)
		assert.Equal(t, rng("2026-06-03", "2026-06-30"), gap)
	})

	t.Run("GapBetweenBookings", func(t *testing.T) {
		booked := []Range{
			rng("2026-06-01", "2026-06-05"),
			rng("2026-06-10", "2026-06-15"),
		}
		gap, ok := FirstGapAfter(booked, lower, upper, lower)
		assert.True(t, ok)
		assert.Equal(t, rng("2026-06-05", "2026-06-10"), gap)
	})

	t.Run("MinStartInsideBooking", func(t *testing.T) {
		booked := []Range{rng("2026-06-01", "2026-06-10")}
		gap, ok := FirstGapAfter(booked, lower, upper, day("2026-06-04"))
		assert.True(t, ok)
		assert.Equal(t, rng("2026-06-10", "2026-06-30"), gap)
	})

	t.Run("FullyBooked", func(t *testing.T) {
		booked := []Range{rng("2026-06-01", "2026-06-30")}
		_, ok := FirstGapAfter(booked, lower, upper, lower)
		assert.False(t, ok)
	})

	t.Run("MinStartPastWindow", func(t *testing.T) {
		_, ok := FirstGapAfter(nil, lower, upper, day("2026-06-30"))
		assert.False(t, ok)
	})

	t.Run("GapClampedToWindowEnd", func(t *testing.T) {
		booked := []Range{rng("2026-07-10", "2026-07-20")}
		gap, ok := FirstGapAfter(booked, lower, upper, day("2026-06-20"))
		assert.True(t, ok)
		assert.Equal(t, rng("2026-06-20", "2026-06-30"), gap)
	})
}
