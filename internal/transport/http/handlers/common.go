package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/skyriting/skyriting/pkg/validator"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// writeInternal reports an unexpected failure. A request whose context
// deadline ran out (typically a hung store call) gets a retryable 503,
// distinct from business rejections and from genuine server faults.
func writeInternal(w http.ResponseWriter, log *logrus.Logger, err error, action string) {
	if errors.Is(err, context.DeadlineExceeded) {
		log.WithError(err).Warn(action + " timed out")
		writeError(w, http.StatusServiceUnavailable, "TIMEOUT", "Request timed out, please retry")
		return
	}
	log.WithError(err).Error(action + " failed")
	writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
}

func writeValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error": map[string]any{
			"code":   "VALIDATION_ERROR",
			"fields": errs,
		},
	})
}
