package domain

import (
	"time"

	"github.com/google/uuid"
)

// MessageTypeOK is the tracker's "normal position report" tag. The default
// full-expedition view filters to these; check-in, test, and alert messages
// carry other values and only appear in single-day views.
const MessageTypeOK = "OK"

// LocationPoint is a single satellite tracker ping.
// Points are created once by ingestion and never updated or deleted.
// Timestamp is unique across the store — enforced by the ingestion dedup
// check, not by a database constraint.
type LocationPoint struct {
	ID             uuid.UUID
	Timestamp      time.Time
	Latitude       float64 // degrees
	Longitude      float64 // degrees
	Elevation      *float64 // meters; nil when the elevation lookup was skipped or failed
	MessageType    string
	MessageContent string
	BatteryState   string
	CreatedAt      time.Time
}

// IsOK reports whether the point is a normal position report.
func (p LocationPoint) IsOK() bool {
	return p.MessageType == MessageTypeOK
}
