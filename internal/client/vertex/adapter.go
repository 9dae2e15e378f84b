package vertexclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/whatis/internal/dto"
	"github.com/GregMSThompson/whatis/internal/errs"
)

const serviceName = "LLM"

// systemInstruction teaches a general-purpose model the whatis.sh prompt
// convention that the dedicated Ollama model is tuned on.
const systemInstruction = `You mimic the Unix 'whatis' command.
The user sends the name of a shell command, program or programming-language function.
Reply with a single line in the form "name (section) - short description".
If the input ends with " -v", reply with a short paragraph instead: the one-line description, then the most common usage and two or three typical flags or arguments.
If the input is not a known command or function, reply "name: nothing appropriate."
Never use markdown.`

type generativeModel interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type Adapter struct {
	client   *genai.Client
	model    string
	log      *slog.Logger
	newModel func(name string) generativeModel
}

func NewAdapter(ctx context.Context, log *slog.Logger, projectID, region, model string) (*Adapter, error) {
	if projectID == "" || region == "" {
		return nil, fmt.Errorf("vertex provider requires PROJECTID and REGION")
	}

	client, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, err
	}

	a := &Adapter{
		client: client,
		model:  model,
		log:    log,
	}
	a.newModel = a.buildModel
	return a, nil
}

func (a *Adapter) Close() error {
	err := a.client.Close()
	if err != nil && a.log != nil {
		a.log.Error("vertex adapter close failed", "error", err)
	}
	return err
}

func (a *Adapter) Generate(ctx context.Context, req dto.GenerateRequest) (dto.GenerateResponse, error) {
	out := dto.GenerateResponse{}

	modelName := req.Model
	if modelName == "" {
		modelName = a.model
	}
	if modelName == "" {
		return out, fmt.Errorf("vertex model is required")
	}
	if req.Prompt == "" {
		return out, fmt.Errorf("vertex generate request has no content")
	}

	resp, err := a.newModel(modelName).GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return out, classify(err)
	}

	out.Text = strings.TrimSpace(parseContentResponse(resp))
	return out, nil
}

func (a *Adapter) buildModel(name string) generativeModel {
	model := a.client.GenerativeModel(name)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	return model
}

// classify maps Vertex failures onto the gateway's backend error kinds.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.NewUnavailableError(serviceName, err)
	}

	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("vertex generate: %w", err)
	}

	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return errs.NewUnavailableError(serviceName, err)
	default:
		upstream := errs.NewUpstreamError(serviceName, "vertex returned "+st.Code().String())
		upstream.Err = err
		return upstream
	}
}

func parseContentResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var text strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if p, ok := part.(genai.Text); ok {
				text.WriteString(string(p))
			}
		}
		// first candidate with content wins
		if text.Len() > 0 {
			break
		}
	}

	return text.String()
}
