package services

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/GregMSThompson/whatis/internal/dto"
	"github.com/GregMSThompson/whatis/internal/errs"
	"github.com/GregMSThompson/whatis/internal/metrics"
	"github.com/GregMSThompson/whatis/internal/models"
	"github.com/GregMSThompson/whatis/pkg/helpers"
)

type stubGenerator struct {
	calls int
	req   dto.GenerateRequest
	resp  dto.GenerateResponse
	err   error
}

func (s *stubGenerator) Generate(_ context.Context, req dto.GenerateRequest) (dto.GenerateResponse, error) {
	s.calls++
	s.req = req
	return s.resp, s.err
}

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name  string
		query models.Query
		want  string
	}{
		{"terse", models.Query{Subject: "grep"}, "grep"},
		{"verbose", models.Query{Subject: "grep", Verbose: true}, "grep -v"},
		{"trims subject", models.Query{Subject: "  awk \n"}, "awk"},
		{"function", models.Query{Subject: "print()", Verbose: true}, "print() -v"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildPrompt(tc.query); got != tc.want {
				t.Fatalf("BuildPrompt = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBuildPromptVerboseDiffers(t *testing.T) {
	terse := BuildPrompt(models.Query{Subject: "grep"})
	verbose := BuildPrompt(models.Query{Subject: "grep", Verbose: true})
	if terse == verbose {
		t.Fatalf("verbose prompt should differ from terse prompt: %q", terse)
	}
}

func TestWhatisServiceDescribe(t *testing.T) {
	gen := &stubGenerator{resp: dto.GenerateResponse{Text: "\n ls (1) - list directory contents \n"}}
	svc := NewWhatisService(gen, "whatis.sh", "ollama")

	got, err := svc.Describe(helpers.TestCtx(), models.Query{Kind: models.QueryPath, Subject: "ls"})
	if err != nil {
		t.Fatalf("Describe returned error: %v", err)
	}

	if got != "ls (1) - list directory contents" {
		t.Fatalf("Describe = %q", got)
	}
	if gen.calls != 1 {
		t.Fatalf("Generate called %d times, want 1", gen.calls)
	}
	if gen.req.Model != "whatis.sh" || gen.req.Prompt != "ls" {
		t.Fatalf("unexpected generate request %+v", gen.req)
	}
}

func TestWhatisServiceDescribeEmptySubject(t *testing.T) {
	gen := &stubGenerator{}
	svc := NewWhatisService(gen, "whatis.sh", "ollama")

	_, err := svc.Describe(helpers.TestCtx(), models.Query{Kind: models.QueryBody, Subject: "   "})

	var valErr *errs.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if gen.calls != 0 {
		t.Fatalf("backend should not be called for an empty subject")
	}
}

func TestWhatisServiceDescribeBackendError(t *testing.T) {
	gen := &stubGenerator{err: errs.NewUnavailableError("LLM", syscall.ECONNREFUSED)}
	svc := NewWhatisService(gen, "whatis.sh", "test-unavailable")

	_, err := svc.Describe(helpers.TestCtx(), models.Query{Kind: models.QueryPath, Subject: "ls"})

	var extErr *errs.ExternalServiceError
	if !errors.As(err, &extErr) || !extErr.Transient {
		t.Fatalf("expected transient ExternalServiceError, got %T (%v)", err, err)
	}
	if n := testutil.ToFloat64(metrics.BackendRequestsTotal.WithLabelValues("test-unavailable", metrics.ResultUnavailable)); n != 1 {
		t.Fatalf("unavailable counter = %v, want 1", n)
	}
}

func TestWhatisServiceRecordsBackendDuration(t *testing.T) {
	gen := &stubGenerator{resp: dto.GenerateResponse{Text: "ok"}}
	svc := NewWhatisService(gen, "whatis.sh", "test-duration")

	now := time.Unix(0, 0)
	svc.clockNow = func() time.Time {
		now = now.Add(250 * time.Millisecond)
		return now
	}

	if _, err := svc.Describe(context.Background(), models.Query{Kind: models.QueryBody, Subject: "sed"}); err != nil {
		t.Fatalf("Describe returned error: %v", err)
	}
	if n := testutil.ToFloat64(metrics.BackendRequestsTotal.WithLabelValues("test-duration", metrics.ResultOK)); n != 1 {
		t.Fatalf("ok counter = %v, want 1", n)
	}
}

func TestBackendResult(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ok", nil, metrics.ResultOK},
		{"unavailable", errs.NewUnavailableError("LLM", errors.New("refused")), metrics.ResultUnavailable},
		{"upstream", errs.NewUpstreamError("LLM", "upstream returned 500 Internal Server Error"), metrics.ResultUpstream},
		{"other", errors.New("decode"), metrics.ResultError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := backendResult(tc.err); got != tc.want {
				t.Fatalf("backendResult = %q, want %q", got, tc.want)
			}
		})
	}
}
