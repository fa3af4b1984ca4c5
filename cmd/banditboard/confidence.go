package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"banditboard/internal/bootstrap"
	"banditboard/internal/ui/theme"
)

func newConfidenceCmd(flags *rootFlags) *cobra.Command {
	confidence := &cobra.Command{Use: "confidence", Short: "Track belief in each idea"}

	confidence.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List confidence per idea with experiments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if _, err := app.ExperimentCLI.SyncConfidence(ctx); err != nil {
					return err
				}
				records, err := app.ConfidenceCLI.List(ctx)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tracked ideas; log an experiment first")
					return nil
				}
				for _, r := range records {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%3d%%\t%s\t%s\t%s\t%s\n",
						r.Confidence,
						r.ImpactLabel,
						theme.Title.Render(r.IdeaTitle),
						theme.Muted.Render(humanize.Time(r.UpdatedAt)),
						r.Memo,
					)
				}
				return nil
			})
		},
	})

	var level int
	var impact, memo string
	update := &cobra.Command{
		Use:   "update <idea title>",
		Short: "Update confidence, last impact or memo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if _, err := app.ExperimentCLI.SyncConfidence(ctx); err != nil {
					return err
				}
				r, err := app.ConfidenceCLI.Update(ctx, args[0],
					optInt(cmd, "level", level),
					optString(cmd, "impact", impact),
					optString(cmd, "memo", memo),
				)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d%% (%s)\n", r.IdeaTitle, r.Confidence, r.ImpactLabel)
				return nil
			})
		},
	}
	update.Flags().IntVar(&level, "level", 50, "confidence 0-100")
	update.Flags().StringVar(&impact, "impact", "", "plus-large|plus-small|neutral|minus-small|minus-large")
	update.Flags().StringVar(&memo, "memo", "", "memo")
	confidence.AddCommand(update)
	return confidence
}
