package ollamaclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/GregMSThompson/whatis/internal/dto"
	"github.com/GregMSThompson/whatis/internal/errs"
)

const (
	serviceName      = "LLM"
	generatePath     = "/api/generate"
	maxResponseBytes = 1 << 20
	maxErrorBytes    = 4 << 10
	maxMessageRunes  = 200
)

// Adapter talks to an Ollama-compatible generate endpoint.
type Adapter struct {
	client  *http.Client
	baseURL string
	model   string
	log     *slog.Logger
}

func NewAdapter(log *slog.Logger, baseURL, model string, timeout time.Duration) *Adapter {
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		log:     log,
	}
}

func (a *Adapter) Generate(ctx context.Context, req dto.GenerateRequest) (dto.GenerateResponse, error) {
	out := dto.GenerateResponse{}

	modelName := req.Model
	if modelName == "" {
		modelName = a.model
	}
	if modelName == "" {
		return out, fmt.Errorf("ollama model is required")
	}

	payload, err := json.Marshal(dto.OllamaGenerateRequest{
		Model:  modelName,
		Prompt: req.Prompt,
		Stream: false,
	})
	if err != nil {
		return out, fmt.Errorf("encode generate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+generatePath, bytes.NewReader(payload))
	if err != nil {
		return out, fmt.Errorf("build generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		a.log.DebugContext(ctx, "ollama request failed", "url", a.baseURL+generatePath, "error", err)
		return out, errs.NewUnavailableError(serviceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := upstreamMessage(resp)
		a.log.DebugContext(ctx, "ollama returned error status", "status", resp.StatusCode, "model", modelName, "detail", msg)
		return out, errs.NewUpstreamError(serviceName, msg)
	}

	var gen dto.OllamaGenerateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&gen); err != nil {
		return out, fmt.Errorf("decode generate response: %w", err)
	}

	out.Text = strings.TrimSpace(gen.Response)
	return out, nil
}

// upstreamMessage describes a failed response without echoing arbitrary
// upstream output: the status line plus Ollama's own error field, if any.
func upstreamMessage(resp *http.Response) string {
	msg := fmt.Sprintf("upstream returned %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
	if err != nil || len(body) == 0 {
		return msg
	}

	var ollamaErr dto.OllamaErrorResponse
	if json.Unmarshal(body, &ollamaErr) != nil || ollamaErr.Error == "" {
		return msg
	}
	return msg + ": " + sanitize(ollamaErr.Error)
}

func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	s = strings.TrimSpace(s)

	runes := []rune(s)
	if len(runes) > maxMessageRunes {
		return string(runes[:maxMessageRunes]) + "..."
	}
	return s
}
