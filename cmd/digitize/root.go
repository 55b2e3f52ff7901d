package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"docdigest/internal/app"
	"docdigest/internal/config"
	"docdigest/internal/logger"
	"docdigest/internal/parser"
	"docdigest/internal/render"
	"docdigest/internal/service"
)

var version = "1.0.0"

type rootOptions struct {
	logLevel  string
	logFormat string
	cfg       *config.AppConfig
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "digitize",
		Short: "Digitize documents with a generative model",
		Long: `digitize extracts text from PDFs and images, scores and corrects it,
and can translate, explain or export the result as a PDF.

Model settings are read from the environment (MODEL_PROVIDER, MODEL_NAME,
GEMINI_API_KEY or OPENAI_API_KEY). A .env file is loaded when present.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			// keep stdout for command output
			if os.Getenv("LOG_OUTPUT") == "" {
				cfg.Log.Output = "stderr"
			}
			if cmd.Flags().Changed("log-level") || os.Getenv("LOG_LEVEL") == "" {
				cfg.Log.Level = opts.logLevel
			}
			if cmd.Flags().Changed("log-format") || os.Getenv("LOG_FORMAT") == "" {
				cfg.Log.Format = opts.logFormat
			}
			if err := logger.Setup(cfg.Log); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			opts.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "console", "Log format (json, console)")

	root.AddCommand(
		newProcessCmd(opts),
		newTranslateCmd(opts),
		newExplainCmd(opts),
		newExportCmd(opts),
	)
	return root
}

// commandContext is cancelled on SIGINT or SIGTERM.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// modelService builds the full pipeline. The configuration must name a usable model.
func (o *rootOptions) modelService(ctx context.Context) (service.DigitizeService, error) {
	if err := o.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return app.NewService(ctx, o.cfg, nil)
}

// exportService builds a service that can only render; no model is required.
func (o *rootOptions) exportService() service.DigitizeService {
	return service.NewDigitizeService(
		service.Stages{},
		parser.New(),
		render.New(logger.WithComponent("render")),
		service.WithLocation(o.cfg.Location()),
	)
}

// readText reads the text argument: a file path, or stdin when absent or "-".
func readText(cmd *cobra.Command, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
