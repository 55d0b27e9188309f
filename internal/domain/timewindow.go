package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimeWindow is a derived absolute-instant range. It is always computed on
// demand from an expedition plus an optional requested calendar date, and is
// never persisted. Queries compare strictly: From < timestamp < To.
type TimeWindow struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window, bounds included.
// Used for the travel-window validity check on a requested day start, where
// a date equal to either travel bound is still in range.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// calendarDateLayout is the wire and storage format for calendar dates.
const calendarDateLayout = "2006-01-02"

// ParseCalendarDate parses a "YYYY-MM-DD" string into a calendar date
// (midnight UTC time.Time). A trailing time portion ("2020-07-16T09:30:00Z")
// is discarded before parsing — callers filter by whole days only.
// Returns ErrInvalidDate for anything that is not a well-formed date.
func ParseCalendarDate(s string) (time.Time, error) {
	datePart, _, _ := strings.Cut(s, "T")
	d, err := time.Parse(calendarDateLayout, datePart)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a valid YYYY-MM-DD date", ErrInvalidDate, s)
	}
	return d, nil
}

// LocalDayStart returns the absolute instant of 00:00:00.000 local time on
// the given calendar date in loc.
//
// Day arithmetic must always go through time.Date in the target zone, never
// a flat 24h add on instants: on DST transition days the local day is 23 or
// 25 hours long.
func LocalDayStart(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// LocalDayEnd returns the absolute instant of 23:59:59.999 local time on the
// given calendar date in loc. Used as an expedition window's inclusive
// closing bound under strict < comparison.
func LocalDayEnd(date time.Time, loc *time.Location) time.Time {
	return NextDayStart(date, loc).Add(-time.Millisecond)
}

// NextDayStart returns the local midnight that follows the given calendar
// date. Single-day queries use it as their exclusive upper bound so a ping
// landing exactly at the next day's midnight is excluded, while everything
// up to 23:59:59.999 on the requested day is kept.
func NextDayStart(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}
