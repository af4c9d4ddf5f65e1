package domain

import (
	"math"
	"time"
)

// DateRange is a half-open range of calendar dates [Start, End)
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange normalizes both ends to calendar dates
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: DateOnly(start), End: DateOnly(end)}
}

// IsValid returns true if the range is non-empty
func (r DateRange) IsValid() bool {
	return !r.Start.IsZero() && r.End.After(r.Start)
}

// Nights returns the number of nights in the range
func (r DateRange) Nights() int {
	if !r.IsValid() {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// Overlaps reports whether two half-open ranges intersect.
// Adjacent ranges (one ends the day the other starts) do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && r.End.After(other.Start)
}

// Contains reports whether the date falls inside the range
func (r DateRange) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(r.Start) && d.Before(r.End)
}

// DateOnly drops the time component, keeping the calendar date of t in its own location.
// The result is midnight UTC so that dates compare equal regardless of source zone.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the calendar date of now in loc
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return DateOnly(now.In(loc))
}

// RoundMoney rounds to cents
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
