package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"banditboard/internal/bootstrap"
	experimentdto "banditboard/internal/modules/experiment/dto"
	"banditboard/internal/ui/theme"
)

func newExperimentCmd(flags *rootFlags) *cobra.Command {
	experiment := &cobra.Command{Use: "experiment", Short: "Log experiment results and compare rates"}

	var in experimentdto.AddInput
	add := &cobra.Command{
		Use:   "add --idea <title> --test <title>",
		Short: "Record one experiment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ExperimentCLI.Add(ctx, in)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recorded %s (%s)\n", out.Experiment.TestTitle, out.Experiment.ID)
				if out.NewlyTracked > 0 {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "now tracking confidence for %d new idea(s)\n", out.NewlyTracked)
				}
				return nil
			})
		},
	}
	add.Flags().StringVar(&in.IdeaTitle, "idea", "", "idea title")
	add.Flags().StringVar(&in.TestTitle, "test", "", "test title")
	add.Flags().StringVar(&in.Period, "period", "", "period, free text")
	add.Flags().Float64Var(&in.Reach, "reach", 0, "reach metric")
	add.Flags().Float64Var(&in.Responses, "responses", 0, "responses metric")
	add.Flags().Float64Var(&in.Sales, "sales", 0, "sales metric")
	add.Flags().StringVar(&in.Memo, "memo", "", "memo")

	var ideaFilter, sortMode string
	list := &cobra.Command{
		Use:   "list",
		Short: "List experiments with derived rates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				items, err := app.ExperimentCLI.List(ctx, ideaFilter, sortMode)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no experiments")
					return nil
				}
				for _, e := range items {
					printExperiment(cmd.OutOrStdout(), e)
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&ideaFilter, "idea", "all", "idea title or all")
	list.Flags().StringVar(&sortMode, "sort", "newest", "newest|sales|response_rate")

	rates := &cobra.Command{
		Use:   "rates",
		Short: "Show rates per idea, best response rate first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				items, err := app.ExperimentCLI.List(ctx, ideaFilter, "response_rate")
				if err != nil {
					return err
				}
				for _, e := range items {
					parts := make([]string, 0, len(e.Rates))
					for _, r := range e.Rates {
						parts = append(parts, fmt.Sprintf("%s %s", r.Label, r.Display))
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s / %s\t%s\n", e.IdeaTitle, e.TestTitle, strings.Join(parts, "  "))
				}
				return nil
			})
		},
	}
	rates.Flags().StringVar(&ideaFilter, "idea", "all", "idea title or all")

	var period, memo, success, failure, feedback string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit the period or retrospective fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ExperimentCLI.Update(ctx, experimentdto.UpdateInput{
					ID:             args[0],
					Period:         optString(cmd, "period", period),
					Memo:           optString(cmd, "memo", memo),
					SuccessFactors: optString(cmd, "success", success),
					FailureFactors: optString(cmd, "failure", failure),
					Feedback:       optString(cmd, "feedback", feedback),
				})
				if err != nil {
					return err
				}
				printExperiment(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	update.Flags().StringVar(&period, "period", "", "period")
	update.Flags().StringVar(&memo, "memo", "", "memo")
	update.Flags().StringVar(&success, "success", "", "success factors")
	update.Flags().StringVar(&failure, "failure", "", "failure factors")
	update.Flags().StringVar(&feedback, "feedback", "", "customer feedback")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one experiment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.ExperimentCLI.Delete(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}

	var outPath string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write experiments to an xlsx workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				path := outPath
				if !filepath.IsAbs(path) {
					path = filepath.Join(app.Config.ExportDir, path)
				}
				out, err := app.ExperimentCLI.Export(ctx, path, ideaFilter, sortMode)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d experiments to %s\n", out.Rows, out.Path)
				return nil
			})
		},
	}
	export.Flags().StringVar(&outPath, "out", "experiments.xlsx", "output workbook")
	export.Flags().StringVar(&ideaFilter, "idea", "all", "idea title or all")
	export.Flags().StringVar(&sortMode, "sort", "newest", "newest|sales|response_rate")

	experiment.AddCommand(add, list, rates, update, del, export)
	return experiment
}

func printExperiment(w io.Writer, e experimentdto.ExperimentOutput) {
	_, _ = fmt.Fprintf(w, "%s\t%s / %s\t%s\n", e.ID, theme.Title.Render(e.IdeaTitle), e.TestTitle, theme.Muted.Render(e.Period))
	_, _ = fmt.Fprintf(w, "  reach=%g responses=%g sales=%g", e.Reach, e.Responses, e.Sales)
	for _, r := range e.Rates {
		_, _ = fmt.Fprintf(w, "  %s=%s", r.Label, r.Display)
	}
	_, _ = fmt.Fprintln(w)
}
