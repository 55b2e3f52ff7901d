package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"docdigest/internal/logger"
	"docdigest/internal/model"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		name       string
		translated bool
		outDir     string
	)

	cmd := &cobra.Command{
		Use:   "export [file|-]",
		Short: "Render text as a PDF",
		Long: `Render text as an A4 PDF. The output is named
{name}_{translated|extracted}_{YYYYMMDD}.pdf and written to --out.`,
		Example: `  digitize export corrected.txt --name invoice
  digitize translate notes.txt --to Spanish | digitize export --translated --out ./pdf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			if name == "" && len(args) == 1 && args[0] != "-" {
				name = filepath.Base(args[0])
				name = name[:len(name)-len(filepath.Ext(name))]
			}

			log := logger.WithComponent("export")
			res, err := opts.exportService().Export(log.WithContext(cmd.Context()), model.ExportRequest{
				Text:         text,
				Filename:     name,
				IsTranslated: translated,
			})
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			dst := filepath.Join(outDir, res.Filename)
			if err := os.WriteFile(dst, res.Data, 0o644); err != nil {
				return fmt.Errorf("write pdf: %w", err)
			}

			log.Info().Str("path", dst).Int("pages", res.Pages).Msg("pdf written")
			fmt.Fprintln(cmd.OutOrStdout(), dst)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Base name for the PDF (default: input file name or document)")
	cmd.Flags().BoolVar(&translated, "translated", false, "Mark the export as translated text")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory")
	return cmd
}
