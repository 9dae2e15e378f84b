package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/whatis/internal/errs"
	"github.com/GregMSThompson/whatis/internal/models"
)

func withCommand(req *http.Request, command string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(commandParam, command)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestNormalizeQueryPath(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		verbose bool
	}{
		{"no flag", "/ls", false},
		{"true", "/ls?v=true", true},
		{"one", "/ls?v=1", true},
		{"yes", "/ls?v=YES", true},
		{"bare flag", "/ls?v", true},
		{"false", "/ls?v=false", false},
		{"off", "/ls?v=off", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := withCommand(httptest.NewRequest(http.MethodGet, tc.target, nil), "ls")

			q, err := normalizeQuery(req)
			if err != nil {
				t.Fatalf("normalizeQuery returned error: %v", err)
			}
			want := models.Query{Kind: models.QueryPath, Subject: "ls", Verbose: tc.verbose}
			if q != want {
				t.Fatalf("query = %+v, want %+v", q, want)
			}
		})
	}
}

func TestNormalizeQueryEmptyCommand(t *testing.T) {
	req := withCommand(httptest.NewRequest(http.MethodGet, "/", nil), "")

	_, err := normalizeQuery(req)

	var valErr *errs.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestNormalizeQueryUsage(t *testing.T) {
	for _, body := range []string{"", "  \n\t"} {
		req := httptest.NewRequest(http.MethodGet, "/", strings.NewReader(body))

		q, err := normalizeQuery(req)
		if err != nil {
			t.Fatalf("normalizeQuery(%q) returned error: %v", body, err)
		}
		if q.Kind != models.QueryUsage || q.NeedsBackend() {
			t.Fatalf("expected usage query for body %q, got %+v", body, q)
		}
	}
}

func TestNormalizeQueryBody(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		body      string
		want      models.Query
		malformed bool
		invalid   bool
	}{
		{
			name:   "post verbose",
			method: http.MethodPost,
			body:   `{"cmd_or_func": "sed", "verbose": true}`,
			want:   models.Query{Kind: models.QueryBody, Subject: "sed", Verbose: true},
		},
		{
			name:   "get default verbose",
			method: http.MethodGet,
			body:   `{"cmd_or_func": " awk "}`,
			want:   models.Query{Kind: models.QueryBody, Subject: "awk"},
		},
		{name: "truncated", method: http.MethodPost, body: `{"cmd_or_func": "ls"`, malformed: true},
		{name: "trailing garbage", method: http.MethodPost, body: `{"cmd_or_func": "ls"} x`, malformed: true},
		{name: "not json", method: http.MethodPost, body: `cmd_or_func=ls`, malformed: true},
		{name: "missing subject", method: http.MethodPost, body: `{"verbose": true}`, invalid: true},
		{name: "empty subject", method: http.MethodPost, body: `{"cmd_or_func": ""}`, invalid: true},
		{name: "blank subject", method: http.MethodPost, body: `{"cmd_or_func": "   "}`, invalid: true},
		{name: "wrong subject type", method: http.MethodPost, body: `{"cmd_or_func": 42}`, invalid: true},
		{name: "wrong verbose type", method: http.MethodPost, body: `{"cmd_or_func": "ls", "verbose": "yes"}`, invalid: true},
		{name: "array", method: http.MethodPost, body: `["ls"]`, invalid: true},
		{name: "null", method: http.MethodPost, body: `null`, invalid: true},
		{name: "post empty", method: http.MethodPost, body: ``, invalid: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/", strings.NewReader(tc.body))

			q, err := normalizeQuery(req)

			var malformedErr *errs.MalformedBodyError
			var valErr *errs.ValidationError
			switch {
			case tc.malformed:
				if !errors.As(err, &malformedErr) {
					t.Fatalf("expected MalformedBodyError, got %T (%v)", err, err)
				}
			case tc.invalid:
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T (%v)", err, err)
				}
			default:
				if err != nil {
					t.Fatalf("normalizeQuery returned error: %v", err)
				}
				if q != tc.want {
					t.Fatalf("query = %+v, want %+v", q, tc.want)
				}
			}
		})
	}
}

func TestNormalizeQueryBodyTooLarge(t *testing.T) {
	body := `{"cmd_or_func": "` + strings.Repeat("a", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	_, err := normalizeQuery(req)

	var malformedErr *errs.MalformedBodyError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("expected MalformedBodyError, got %T", err)
	}
}

func TestNormalizeQueryInvalidEscape(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ls", nil)
	req.URL.RawPath = "/bad%zz"
	req = withCommand(req, "bad%zz")

	_, err := normalizeQuery(req)

	var valErr *errs.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %T (%v)", err, err)
	}
}
