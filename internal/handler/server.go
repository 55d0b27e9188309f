// Package handler implements the HTTP handlers for the expedition trail API.
// All handlers are methods on Server, split into resource-specific files
// (health.go, expedition.go, location.go, spot.go) that share the same struct
// so they can access its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/expeditiontrail/backend/internal/domain"
	"github.com/expeditiontrail/backend/internal/geo"
)

// ExpeditionServicer defines the expedition operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type ExpeditionServicer interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Expedition, error)
	List(ctx context.Context) ([]domain.Expedition, error)
}

// LocationServicer defines the location-history query operations the
// handlers depend on. A nil day requests the default full-expedition view.
type LocationServicer interface {
	History(ctx context.Context, expeditionID uuid.UUID, day *time.Time) ([]domain.LocationPoint, error)
	Latest(ctx context.Context, expeditionID uuid.UUID) (domain.LocationPoint, error)
	Profile(ctx context.Context, expeditionID uuid.UUID, day *time.Time) ([]geo.ProfilePoint, error)
}

// SpotServicer defines the tracker-device operations the handlers depend on.
type SpotServicer interface {
	BatteryState(ctx context.Context) (string, error)
}

// Server holds the handler dependencies for all API endpoints.
// Wire it in main.go via Routes().
type Server struct {
	expeditions ExpeditionServicer
	locations   LocationServicer
	spot        SpotServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(expeditions ExpeditionServicer, locations LocationServicer, spot SpotServicer) *Server {
	return &Server{expeditions: expeditions, locations: locations, spot: spot}
}

// Routes returns the chi router for the full API surface.
// Middleware (request ID, logging, CORS, metrics) is mounted by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/expeditions", func(r chi.Router) {
		r.Get("/", s.ListExpeditions)
		r.Route("/{expeditionID}", func(r chi.Router) {
			r.Get("/", s.GetExpedition)
			r.Get("/locationHistory", s.GetLocationHistory)
			r.Get("/locationHistory/latest", s.GetLatestLocation)
			r.Get("/heightProfile", s.GetHeightProfile)
		})
	})

	r.Get("/spot/batteryState", s.GetBatteryState)

	return r
}

// expeditionID extracts and parses the expedition ID path parameter.
// A malformed UUID cannot match any expedition, so it is reported as 404
// rather than 400 — the same response an unknown-but-well-formed ID gets.
func expeditionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "expeditionID"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFoundBody("expedition does not exist"))
		return uuid.Nil, false
	}
	return id, true
}

// dayParam extracts the optional ?date= query parameter.
// Returns nil when the parameter is absent; writes a 400 response and
// returns ok=false when it is present but malformed.
func dayParam(w http.ResponseWriter, r *http.Request) (day *time.Time, ok bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return nil, true
	}

	d, err := domain.ParseCalendarDate(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, invalidDateBody())
		return nil, false
	}
	return &d, true
}
