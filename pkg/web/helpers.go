// Package web holds the HTTP plumbing shared by REST handlers: JSON responses, middleware and
// request validation helpers.
package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// RespondJSON writes payload as a JSON body with the given status. A nil payload writes only the status.
func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// RespondError writes {"error": message}.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, map[string]string{"error": message})
}

// RespondValidationErrors writes {"validation_errors": {field: "failed on rule: tag"}} with status 400.
func RespondValidationErrors(w http.ResponseWriter, logger *slog.Logger, fields map[string]string) {
	errorResponse := make(map[string]string, len(fields))
	for field, rule := range fields {
		errorResponse[field] = "failed on rule: " + rule
	}
	RespondJSON(w, logger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
}

// DecodeAndValidate decodes the JSON request body into dst and validates it with v.
// On failure it writes the 400 response itself and returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, v *validator.Validate, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := v.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make(map[string]string, len(validationErrors))
			for _, fieldErr := range validationErrors {
				fields[fieldErr.Field()] = fieldErr.Tag()
			}
			logger.WarnContext(r.Context(), "Validation errors occurred", "errors", fields)
			RespondValidationErrors(w, logger, fields)
			return false
		}
		logger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
