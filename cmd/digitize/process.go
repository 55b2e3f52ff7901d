package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"docdigest/internal/logger"
	"docdigest/internal/model"
)

func newProcessCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "process [file]",
		Short: "Extract, score and correct the text of a PDF or image",
		Example: `  # Print accuracy and corrected text
  digitize process scan.pdf

  # Machine-readable output
  digitize process receipt.jpg --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.WithComponent("process")
			path := args[0]

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			doc, err := model.NewDocument(filepath.Base(path), data)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			svc, err := opts.modelService(ctx)
			if err != nil {
				return err
			}

			log.Info().Str("file", path).Int("size", len(data)).Msg("processing document")
			res, err := svc.Process(log.WithContext(ctx), doc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			fmt.Fprintf(out, "Accuracy: %d%%\n\n%s\n", res.AccuracyPercent, res.CorrectedText)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
