package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	ollamaclient "github.com/GregMSThompson/whatis/internal/client/ollama"
	vertexclient "github.com/GregMSThompson/whatis/internal/client/vertex"
	"github.com/GregMSThompson/whatis/internal/config"
	"github.com/GregMSThompson/whatis/internal/dto"
	"github.com/GregMSThompson/whatis/internal/metrics"
	"github.com/GregMSThompson/whatis/pkg/logger"
)

// Generator is the backend every adapter satisfies.
type Generator interface {
	Generate(ctx context.Context, req dto.GenerateRequest) (dto.GenerateResponse, error)
}

type Bootstrap struct {
	Log       *slog.Logger
	Generator Generator
	closers   []func() error
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	slog.SetDefault(bs.Log)
	metrics.Register()

	gen, closer, err := InitGenerator(applicationCtx, bs.Log, cfg)
	if err != nil {
		return bs, err
	}
	bs.Generator = gen
	if closer != nil {
		bs.closers = append(bs.closers, closer)
	}

	bs.Log.Info("bootstrap complete",
		"provider", string(cfg.LLMProvider),
		"model", cfg.LLMModel,
		"llm_timeout", cfg.LLMTimeout)
	return bs, nil
}

// InitGenerator builds the adapter selected by cfg.LLMProvider. The returned
// closer is nil when the adapter holds no resources.
func InitGenerator(ctx context.Context, log *slog.Logger, cfg *config.Config) (Generator, func() error, error) {
	switch cfg.LLMProvider {
	case config.ProviderVertex:
		adapter, err := vertexclient.NewAdapter(ctx, log, cfg.ProjectID, cfg.Region, cfg.LLMModel)
		if err != nil {
			return nil, nil, fmt.Errorf("init vertex adapter: %w", err)
		}
		return adapter, adapter.Close, nil
	case config.ProviderOllama:
		return ollamaclient.NewAdapter(log, cfg.LLMBaseURL, cfg.LLMModel, cfg.LLMTimeout), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}

func (bs *Bootstrap) Close() {
	for _, c := range bs.closers {
		_ = c()
	}
}
