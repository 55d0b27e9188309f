package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. expedition end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidDate is returned when a calendar date string is not a well-formed
// ISO date or an expedition's timezone identifier cannot be resolved.
// Handlers should map this to HTTP 400.
var ErrInvalidDate = errors.New("invalid date")

// ErrDateOutOfBounds is returned when a requested calendar date falls outside
// the expedition's travel-inclusive window.
// Handlers should map this to HTTP 404, with a body distinct from ErrNotFound
// so clients can tell "no such expedition" from "expedition not active then".
var ErrDateOutOfBounds = errors.New("the expedition was not active at the requested date")

// ErrNoData is returned when a query that needs at least one recorded point
// (latest position, battery state) runs against an empty window or store.
// Handlers should map this to HTTP 404.
var ErrNoData = errors.New("no data recorded")
