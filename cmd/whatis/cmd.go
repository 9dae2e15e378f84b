package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/whatis/internal/bootstrap"
	"github.com/GregMSThompson/whatis/internal/config"
	"github.com/GregMSThompson/whatis/internal/models"
	"github.com/GregMSThompson/whatis/internal/services"
	"github.com/GregMSThompson/whatis/pkg/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "whatis [-v] <command or function>",
	Short: "Describe a command or function in one line",
	Long: `Ask the configured generation backend (LLM_PROVIDER, LLM_BASE_URL, LLM_MODEL)
for a whatis-style description, without going through the HTTP gateway.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "ask for an expanded explanation")
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.New()
	if cfg.LogLevel == "" {
		// keep stdout for the answer
		cfg.LogLevel = "error"
	}

	bs, err := bootstrap.Run(cfg)
	if err != nil {
		return err
	}
	defer bs.Close()

	svc := services.NewWhatisService(bs.Generator, cfg.LLMModel, string(cfg.LLMProvider))
	ctx := logger.ToContext(cmd.Context(), bs.Log)

	answer, err := svc.Describe(ctx, models.Query{
		Kind:    models.QueryArgs,
		Subject: strings.Join(args, " "),
		Verbose: verbose,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "whatis:", err)
		os.Exit(1)
	}
}
