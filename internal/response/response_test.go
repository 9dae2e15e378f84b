package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"syscall"
	"testing"

	"github.com/GregMSThompson/whatis/internal/errs"
	"github.com/GregMSThompson/whatis/pkg/logger"
)

func newTestHandler() *responseHandler {
	return New(slog.New(logger.NewTestHandler(slog.LevelInfo)))
}

func TestHandleErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", errs.NewValidationError("cmd_or_func is required"), http.StatusUnprocessableEntity, CodeInvalidRequest},
		{"malformed", errs.NewMalformedBodyError("Invalid JSON in request body"), http.StatusBadRequest, CodeMalformedBody},
		{"unavailable", errs.NewUnavailableError("LLM", syscall.ECONNREFUSED), http.StatusServiceUnavailable, CodeBackendUnavailable},
		{"upstream", errs.NewUpstreamError("LLM", "upstream returned 500 Internal Server Error"), http.StatusBadGateway, CodeBackendError},
		{"wrapped upstream", fmt.Errorf("describe: %w", errs.NewUpstreamError("LLM", "x")), http.StatusBadGateway, CodeBackendError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler()
			req := httptest.NewRequest(http.MethodGet, "/ls", nil)
			rr := httptest.NewRecorder()

			h.HandleError(rr, req, tc.err)

			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			var body ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body.Code != tc.wantCode {
				t.Fatalf("code = %q, want %q", body.Code, tc.wantCode)
			}
		})
	}
}

func TestHandleErrorHidesInternalDetails(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/ls", nil)
	rr := httptest.NewRecorder()

	h.HandleError(rr, req, errors.New("dial tcp 10.0.0.7:11434: secret detail"))

	var body ErrorResponse
	_ = json.NewDecoder(rr.Body).Decode(&body)
	if body.Message != "An unexpected error occurred" {
		t.Fatalf("message = %q", body.Message)
	}
}

func TestWriteText(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/ls", nil)
	rr := httptest.NewRecorder()

	h.WriteText(rr, req, http.StatusOK, "ls (1) - list directory contents")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Fatalf("Content-Type = %q", ct)
	}
	if rr.Body.String() != "ls (1) - list directory contents" {
		t.Fatalf("body = %q", rr.Body.String())
	}
}

func TestWriteJSON(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	h.WriteJSON(rr, req, http.StatusOK, map[string]string{"status": "healthy"})

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q", ct)
	}
	if rr.Body.String() != "{\"status\":\"healthy\"}\n" {
		t.Fatalf("body = %q", rr.Body.String())
	}
}
