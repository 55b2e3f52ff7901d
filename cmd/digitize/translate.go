package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"docdigest/internal/logger"
	"docdigest/internal/model"
)

func newTranslateCmd(opts *rootOptions) *cobra.Command {
	var to, from string

	cmd := &cobra.Command{
		Use:   "translate [file|-]",
		Short: "Translate text into another language",
		Example: `  digitize translate notes.txt --to German
  echo "Bonjour" | digitize translate --to English --from French`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			svc, err := opts.modelService(ctx)
			if err != nil {
				return err
			}

			log := logger.WithComponent("translate")
			res, err := svc.Translate(log.WithContext(ctx), model.TranslationRequest{
				Text:            text,
				TargetLanguage:  to,
				CurrentLanguage: from,
			})
			if err != nil {
				return err
			}
			if res.AlreadyTargetLanguage {
				log.Info().Str("language", to).Msg("text is already in target language")
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.TranslatedText)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", model.DefaultTargetLanguage, "Target language")
	cmd.Flags().StringVar(&from, "from", "", "Current language of the text, if known")
	return cmd
}
