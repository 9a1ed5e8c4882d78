package controllers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"secretsanta/internal/delivery/http/helpers"
	"secretsanta/internal/delivery/http/middleware"
)

// writeServiceError answers with the envelope error for err. notFound is the
// message for domain.ErrNotFound. Server-side failures are logged with the cause.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, notFound string) {
	status, apiErr := helpers.ErrorStatus(err, notFound)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteJSONError(w, status, apiErr.Code, apiErr.Message)
}

// organizerID returns the authenticated caller or writes 401.
func organizerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return "", false
	}
	return userID, true
}

// pathID reads a UUID path value. A missing value is a 400; anything that is not
// a UUID cannot name a stored row and is answered with 404 and notFound.
func pathID(w http.ResponseWriter, r *http.Request, name, notFound string) (string, bool) {
	id := r.PathValue(name)
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing "+name)
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, notFound)
		return "", false
	}
	return id, true
}
