package taskview

import (
	"time"
)

// Clock supplies the current calendar date.
type Clock interface {
	Today() time.Time
}

// SystemClock reads the wall clock. Location defaults to time.Local.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Today() time.Time {
	now := time.Now()
	if c.Location != nil {
		now = now.In(c.Location)
	}
	return DateOf(now)
}

// FixedClock always reports the same date.
type FixedClock time.Time

func (c FixedClock) Today() time.Time {
	return DateOf(time.Time(c))
}

// DateOf drops the time of day, keeping t's calendar date as UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
