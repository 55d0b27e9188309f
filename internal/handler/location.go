package handler

import (
	"net/http"

	"github.com/expeditiontrail/backend/internal/domain"
)

// coordinateResponse nests latitude and longitude under a "location" key.
type coordinateResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// pointResponse is the wire representation of a tracker ping.
// Timestamps serialise as Unix epoch milliseconds.
type pointResponse struct {
	Location       coordinateResponse `json:"location"`
	Elevation      *float64           `json:"elevation,omitempty"`
	MessageType    string             `json:"messageType"`
	MessageContent string             `json:"messageContent"`
	BatteryState   string             `json:"batteryState"`
	Timestamp      int64              `json:"timestamp"`
}

func toPointResponse(p domain.LocationPoint) pointResponse {
	return pointResponse{
		Location:       coordinateResponse{Latitude: p.Latitude, Longitude: p.Longitude},
		Elevation:      p.Elevation,
		MessageType:    p.MessageType,
		MessageContent: p.MessageContent,
		BatteryState:   p.BatteryState,
		Timestamp:      p.Timestamp.UnixMilli(),
	}
}

// GetLocationHistory returns the trail for an expedition, oldest first.
// Without ?date= the on-site window is served; with ?date=YYYY-MM-DD the
// requested local calendar day is served instead. An empty trail is a 204.
func (s *Server) GetLocationHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := expeditionID(w, r)
	if !ok {
		return
	}
	day, ok := dayParam(w, r)
	if !ok {
		return
	}

	points, err := s.locations.History(r.Context(), id, day)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if len(points) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := make([]pointResponse, 0, len(points))
	for _, p := range points {
		resp = append(resp, toPointResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetLatestLocation returns the most recent ping within the travel window.
func (s *Server) GetLatestLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := expeditionID(w, r)
	if !ok {
		return
	}

	point, err := s.locations.Latest(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPointResponse(point))
}

// GetHeightProfile returns cumulative distance/elevation pairs for the same
// trail GetLocationHistory would serve, including the ?date= variant.
func (s *Server) GetHeightProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := expeditionID(w, r)
	if !ok {
		return
	}
	day, ok := dayParam(w, r)
	if !ok {
		return
	}

	profile, err := s.locations.Profile(r.Context(), id, day)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if len(profile) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
