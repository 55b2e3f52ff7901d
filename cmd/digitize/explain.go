package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"docdigest/internal/logger"
)

func newExplainCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [file|-]",
		Short: "Explain text in plain language",
		Args:  cobra.MaximumNArgs(1),
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

			out, err := svc.Explain(logger.WithComponent("explain").WithContext(ctx), text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
