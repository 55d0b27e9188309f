// Package domain contains the core data types for the expedition trail backend.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler, geo).
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Expedition is the top-level aggregate: a tracked trip with a timezone and
// calendar-day bounds. Location points are not owned by a single expedition —
// they are matched to one purely by time window.
//
// From/To hold the on-site activity window; TravelFrom/TravelTo optionally
// widen it with travel days before and after. All four are calendar dates
// (midnight UTC time.Time values — only year/month/day are meaningful), which
// only become absolute instants once resolved against Timezone.
type Expedition struct {
	ID          uuid.UUID
	Name        string
	Description string
	Image       string
	From        time.Time
	To          time.Time
	TravelFrom  *time.Time // nil when the expedition has no travel days recorded
	TravelTo    *time.Time
	Timezone    string // IANA zone name, e.g. "America/Montreal"
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Location resolves the expedition's timezone identifier.
// Returns ErrInvalidDate when the identifier is not a known zone.
func (e Expedition) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidDate, e.Timezone)
	}
	return loc, nil
}

// Window returns the expedition's absolute-instant time window.
// With includeTravel the travel bounds are used where present, falling back
// to the on-site bounds when the expedition has no travel days recorded.
//
// The window opens at 00:00:00.000 local time on the first day and closes at
// 23:59:59.999 local time on the last day, so strict > / < comparisons keep
// every ping of both boundary days.
func (e Expedition) Window(includeTravel bool) (TimeWindow, error) {
	loc, err := e.Location()
	if err != nil {
		return TimeWindow{}, err
	}

	from, to := e.From, e.To
	if includeTravel {
		if e.TravelFrom != nil {
			from = *e.TravelFrom
		}
		if e.TravelTo != nil {
			to = *e.TravelTo
		}
	}

	return TimeWindow{
		From: LocalDayStart(from, loc),
		To:   LocalDayEnd(to, loc),
	}, nil
}

// Validate enforces the calendar-date invariants for an expedition record.
// Used when seeding expeditions; the query path treats records as read-only.
//   - From must not be after To.
//   - TravelFrom, if set, must not be after From.
//   - TravelTo, if set, must not be before To.
//   - Timezone must resolve.
func (e Expedition) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if e.From.After(e.To) {
		return fmt.Errorf("%w: from must not be after to", ErrValidation)
	}
	if e.TravelFrom != nil && e.TravelFrom.After(e.From) {
		return fmt.Errorf("%w: travelFrom must not be after from", ErrValidation)
	}
	if e.TravelTo != nil && e.TravelTo.Before(e.To) {
		return fmt.Errorf("%w: travelTo must not be before to", ErrValidation)
	}
	if _, err := e.Location(); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrValidation, e.Timezone)
	}
	return nil
}
