package handler

import (
	"errors"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/expeditiontrail/backend/internal/domain"
)

// errorResponse is the JSON body returned for every non-2xx outcome.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func notFoundBody(message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: "not_found", Message: message}}
}

func invalidDateBody() errorResponse {
	return errorResponse{Error: errorDetail{Code: "invalid_date", Message: "date must be formatted as YYYY-MM-DD"}}
}

// writeJSON serialises v and writes it with the given status.
// Encoding failures at this point cannot be reported to the client anymore,
// so they are only logged.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("could not encode response body", "error", err)
	}
}

// writeServiceError maps domain sentinel errors onto HTTP responses.
// Anything unrecognised is a 500; the underlying error is logged, never
// exposed to the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody("expedition does not exist"))
	case errors.Is(err, domain.ErrNoData):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: errorDetail{
			Code:    "no_data",
			Message: "no data has been recorded yet",
		}})
	case errors.Is(err, domain.ErrDateOutOfBounds):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: errorDetail{
			Code:    "date_out_of_bounds",
			Message: "the expedition was not active at the requested date",
		}})
	case errors.Is(err, domain.ErrInvalidDate):
		writeJSON(w, http.StatusBadRequest, invalidDateBody())
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: errorDetail{
			Code:    "validation_error",
			Message: err.Error(),
		}})
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: errorDetail{
			Code:    "internal_error",
			Message: "internal server error",
		}})
	}
}
