package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"paydash/internal/core"
	"paydash/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

// invalidInputMessage enumerates the required fields so clients can render a
// single actionable message.
const invalidInputMessage = "Missing or invalid: amount (positive number), category_id, expense_date"

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps domain errors to status codes: invalid input is the
// caller's fault, everything else is reported as a generic server failure
// with the cause kept in the logs.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		slog.InfoContext(r.Context(), "Rejected invalid input", "field", verr.Field, "reason", verr.Reason)
		writeError(w, http.StatusBadRequest, invalidInputMessage)
		return
	}

	var serr *store.Error
	if errors.As(err, &serr) {
		slog.ErrorContext(r.Context(), "Record store failure", "op", serr.Op, "error", serr.Err)
		writeError(w, http.StatusInternalServerError, "failed to process request")
		return
	}

	slog.ErrorContext(r.Context(), "Unhandled error", "error", err)
	writeError(w, http.StatusInternalServerError, "failed to process request")
}
