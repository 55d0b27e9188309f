package handler

import (
	"net/http"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/expeditiontrail/backend/internal/domain"
)

// expeditionResponse is the wire representation of an expedition.
// Calendar dates serialise as plain YYYY-MM-DD strings.
type expeditionResponse struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	From        openapi_types.Date  `json:"from"`
	To          openapi_types.Date  `json:"to"`
	TravelFrom  *openapi_types.Date `json:"travelFrom,omitempty"`
	TravelTo    *openapi_types.Date `json:"travelTo,omitempty"`
	Timezone    string              `json:"timezone"`
}

func toExpeditionResponse(e domain.Expedition) expeditionResponse {
	resp := expeditionResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Image:       e.Image,
		From:        openapi_types.Date{Time: e.From},
		To:          openapi_types.Date{Time: e.To},
		Timezone:    e.Timezone,
	}
	if e.TravelFrom != nil {
		resp.TravelFrom = &openapi_types.Date{Time: *e.TravelFrom}
	}
	if e.TravelTo != nil {
		resp.TravelTo = &openapi_types.Date{Time: *e.TravelTo}
	}
	return resp
}

// ListExpeditions returns every expedition. An empty result is a 200 with an
// empty array, not a 204.
func (s *Server) ListExpeditions(w http.ResponseWriter, r *http.Request) {
	expeditions, err := s.expeditions.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make([]expeditionResponse, 0, len(expeditions))
	for _, e := range expeditions {
		resp = append(resp, toExpeditionResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetExpedition returns a single expedition by ID.
func (s *Server) GetExpedition(w http.ResponseWriter, r *http.Request) {
	id, ok := expeditionID(w, r)
	if !ok {
		return
	}

	expedition, err := s.expeditions.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toExpeditionResponse(expedition))
}
