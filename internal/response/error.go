package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GregMSThompson/whatis/internal/errs"
	"github.com/GregMSThompson/whatis/pkg/logger"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	CodeInvalidRequest     = "invalid_request"
	CodeMalformedBody      = "malformed_body"
	CodeBackendUnavailable = "backend_unavailable"
	CodeBackendError       = "backend_error"
	CodeInternalError      = "internal_error"
)

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Code:    code,
		Message: message,
	}); err != nil {
		log := logger.FromContext(r.Context())
		log.Error("failed to encode error response", "error", err, "status", status, "code", code)
	}
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var (
		valErr       *errs.ValidationError
		malformedErr *errs.MalformedBodyError
		extErr       *errs.ExternalServiceError
	)

	switch {
	case errors.As(err, &valErr):
		log.Warn("invalid request", "error", valErr.Message)
		h.WriteError(w, r, http.StatusUnprocessableEntity, CodeInvalidRequest, valErr.Message)

	case errors.As(err, &malformedErr):
		log.Warn("malformed request body", "error", malformedErr.Message)
		h.WriteError(w, r, http.StatusBadRequest, CodeMalformedBody, malformedErr.Message)

	case errors.As(err, &extErr):
		level := slog.LevelError
		if extErr.Transient {
			level = slog.LevelWarn
		}
		log.Log(r.Context(), level, "external service error",
			"service", extErr.Service,
			"transient", extErr.Transient,
			"error", err)

		if extErr.Transient {
			h.WriteError(w, r, http.StatusServiceUnavailable, CodeBackendUnavailable, extErr.Message)
			return
		}
		h.WriteError(w, r, http.StatusBadGateway, CodeBackendError, extErr.Message)

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, CodeInternalError,
			"An unexpected error occurred")
	}
}
