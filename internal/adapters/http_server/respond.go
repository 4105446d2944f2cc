package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jatinm79/Real-Estate-App/internal/domain"
)

// fieldError is a single field-level validation message.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorBody struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Errors  []fieldError `json:"errors,omitempty"`
	Detail  string       `json:"error,omitempty"` // dev only
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, message string, errs []fieldError, detail string) {
	writeJSON(w, status, errorBody{Status: "error", Message: message, Errors: errs, Detail: detail})
}

// writeDomainError maps the domain error taxonomy onto HTTP statuses.
// notFoundMsg customizes the 404 message per resource; internal detail is
// exposed only outside production.
func (h *Handlers) writeDomainError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg, nil, "")
	case errors.Is(err, domain.ErrNoFields):
		writeError(w, http.StatusBadRequest, "No fields to update", nil, "")
	case errors.Is(err, domain.ErrDuplicate):
		writeError(w, http.StatusBadRequest, "Duplicate field value entered", nil, "")
	case errors.Is(err, domain.ErrForeignKey):
		writeError(w, http.StatusBadRequest, "Referenced resource not found", nil, "")
	case errors.Is(err, domain.ErrRequired):
		writeError(w, http.StatusBadRequest, "Required field missing", nil, "")
	default:
		log.Error().Err(err).Msg("request failed")
		detail := ""
		if h.dev {
			detail = err.Error()
		}
		writeError(w, http.StatusInternalServerError, "Internal Server Error", nil, detail)
	}
}
