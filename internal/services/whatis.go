package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GregMSThompson/whatis/internal/dto"
	"github.com/GregMSThompson/whatis/internal/errs"
	"github.com/GregMSThompson/whatis/internal/metrics"
	"github.com/GregMSThompson/whatis/internal/models"
	"github.com/GregMSThompson/whatis/pkg/logger"
)

// verboseSuffix is the flag the whatis.sh model expects for expanded answers.
const verboseSuffix = " -v"

type generator interface {
	Generate(ctx context.Context, req dto.GenerateRequest) (dto.GenerateResponse, error)
}

type whatisService struct {
	gen      generator
	model    string
	provider string
	clockNow func() time.Time
}

func NewWhatisService(gen generator, model, provider string) *whatisService {
	return &whatisService{
		gen:      gen,
		model:    model,
		provider: provider,
		clockNow: time.Now,
	}
}

// BuildPrompt renders the prompt for a query: the bare subject for a terse
// answer, the subject followed by " -v" for a verbose one.
func BuildPrompt(q models.Query) string {
	prompt := strings.TrimSpace(q.Subject)
	if q.Verbose {
		prompt += verboseSuffix
	}
	return prompt
}

// GenerateRequestFor derives the backend request for a query.
func GenerateRequestFor(q models.Query, model string) dto.GenerateRequest {
	return dto.GenerateRequest{
		Model:  model,
		Prompt: BuildPrompt(q),
	}
}

func (s *whatisService) Describe(ctx context.Context, q models.Query) (string, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(q.Subject) == "" {
		return "", errs.NewValidationError("cmd_or_func must not be empty")
	}

	req := GenerateRequestFor(q, s.model)
	if logger.IsDebugEnabled(ctx) {
		log.Debug("calling generation backend", "provider", s.provider, "model", req.Model, "prompt", req.Prompt)
	}

	start := s.clockNow()
	resp, err := s.gen.Generate(ctx, req)
	elapsed := s.clockNow().Sub(start)

	metrics.BackendDurationSeconds.WithLabelValues(s.provider).Observe(elapsed.Seconds())
	metrics.BackendRequestsTotal.WithLabelValues(s.provider, backendResult(err)).Inc()

	if err != nil {
		return "", fmt.Errorf("describe %q: %w", q.Subject, err)
	}

	answer := strings.TrimSpace(resp.Text)
	if answer == "" {
		log.Warn("generation backend returned an empty answer", "subject", q.Subject)
	}
	log.Info("whatis query completed",
		"subject", q.Subject,
		"verbose", q.Verbose,
		"source", q.Kind.String(),
		"backend_ms", elapsed.Milliseconds())

	return answer, nil
}

func backendResult(err error) string {
	if err == nil {
		return metrics.ResultOK
	}
	var extErr *errs.ExternalServiceError
	if errors.As(err, &extErr) {
		if extErr.Transient {
			return metrics.ResultUnavailable
		}
		return metrics.ResultUpstream
	}
	return metrics.ResultError
}
