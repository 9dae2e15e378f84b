package response

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/GregMSThompson/whatis/pkg/logger"
)

func (h *responseHandler) WriteText(w http.ResponseWriter, r *http.Request, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)

	if _, err := io.WriteString(w, text); err != nil {
		// client most likely went away
		logger.FromContext(r.Context()).Warn("failed to write text response", "error", err)
	}
}

func (h *responseHandler) WriteJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Last-ditch logging; can't return an error now
		logger.FromContext(r.Context()).Error("failed to encode json response", "error", err)
	}
}
