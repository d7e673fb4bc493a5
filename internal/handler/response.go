package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"socialfeed/internal/domain"
	"socialfeed/internal/pagination"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Response wraps a successful payload
type Response struct {
	Data interface{} `json:"data"`
}

// PagedResponse wraps one page of a listing
type PagedResponse struct {
	Data interface{} `json:"data"`
	Meta PageMeta    `json:"meta"`
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Warn("failed to encode JSON")
	}
}

func writeError(w http.ResponseWriter, error, details string, statusCode int) {
	writeJSON(w, ErrorResponse{Error: error, Details: details}, statusCode)
}

// writeServiceError maps the error taxonomy onto HTTP status codes
func writeServiceError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	switch {
	case domain.IsValidation(err):
		writeError(w, "Invalid request", err.Error(), http.StatusBadRequest)
	case domain.IsRuleViolation(err):
		writeError(w, "Request rejected", err.Error(), http.StatusBadRequest)
	case errors.Is(err, pagination.ErrInvalidArgument):
		writeError(w, "Invalid pagination", err.Error(), http.StatusBadRequest)
	case domain.IsNotFound(err):
		writeError(w, "Not found", err.Error(), http.StatusNotFound)
	default:
		log.WithError(err).Error("request failed")
		writeError(w, "Internal server error", err.Error(), http.StatusInternalServerError)
	}
}
