package handler

import (
	"errors"
	"net/http"

	"github.com/expeditiontrail/backend/internal/domain"
)

// GetBatteryState returns the tracker's battery state as reported by the
// earliest ping ever recorded, as a plain text body.
func (s *Server) GetBatteryState(w http.ResponseWriter, r *http.Request) {
	state, err := s.spot.BatteryState(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoData) {
			http.Error(w, "no battery state has ever been recorded", http.StatusNotFound)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(state))
}
