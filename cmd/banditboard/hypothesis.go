package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"banditboard/internal/bootstrap"
	experimentdto "banditboard/internal/modules/experiment/dto"
	hypothesisdto "banditboard/internal/modules/hypothesis/dto"
	"banditboard/internal/ui/theme"
	"banditboard/internal/ui/views/portfolio"
)

func newHypothesisCmd(flags *rootFlags) *cobra.Command {
	hypothesis := &cobra.Command{Use: "hypothesis", Aliases: []string{"hyp"}, Short: "Run the hypothesis portfolio"}

	var ideaTitle, text string
	add := &cobra.Command{
		Use:   "add --idea <title> --text <hypothesis>",
		Short: "Add a hypothesis",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.HypothesisCLI.Add(ctx, ideaTitle, text)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), portfolio.RenderItem(out))
				return nil
			})
		},
	}
	add.Flags().StringVar(&ideaTitle, "idea", "", "idea title")
	add.Flags().StringVar(&text, "text", "", "hypothesis")

	var status, sortMode string
	list := &cobra.Command{
		Use:   "list",
		Short: "List hypotheses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				items, err := app.HypothesisCLI.List(ctx, status, sortMode)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no hypotheses")
					return nil
				}
				for _, it := range items {
					line := portfolio.RenderItem(it)
					if trend, err := app.HypothesisCLI.Trend(ctx, it.ID); err == nil && trend.OK {
						line += fmt.Sprintf("  %s %s", portfolio.TrendGlyph(trend), trend.Label)
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&status, "status", "all", "all|active|not-started|trial|focus|sustain|drop|completed")
	list.Flags().StringVar(&sortMode, "sort", "newest", "newest|resource")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one hypothesis with its logs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				it, err := app.HypothesisCLI.Get(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), portfolio.RenderItem(it))
				if it.KPI != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  kpi: %s\n", it.KPI)
				}
				if it.Learning != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  learning: %s\n", it.Learning)
				}
				for _, l := range it.Logs {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s %v %s\n", l.Date, l.Metrics, l.Memo)
				}
				return nil
			})
		},
	}

	var hyp, effort, kpi, learning string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit hypothesis text, effort, KPI or learning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.HypothesisCLI.Update(ctx, hypothesisUpdate(cmd, args[0], hyp, effort, kpi, learning))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), portfolio.RenderItem(out))
				return nil
			})
		},
	}
	update.Flags().StringVar(&hyp, "text", "", "hypothesis")
	update.Flags().StringVar(&effort, "effort", "", "tiny|small|normal|heavy")
	update.Flags().StringVar(&kpi, "kpi", "", "KPI description")
	update.Flags().StringVar(&learning, "learning", "", "learning")

	statusCmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a hypothesis to another status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.HypothesisCLI.SetStatus(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), portfolio.RenderItem(out))
				return nil
			})
		},
	}

	var percent int
	resource := &cobra.Command{
		Use:   "resource <id> --percent <0-100>",
		Short: "Set the resource share of a hypothesis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if _, err := app.HypothesisCLI.SetResource(ctx, args[0], percent); err != nil {
					return err
				}
				out, err := app.HypothesisCLI.Resources(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), portfolio.RenderResources(out, 40))
				return nil
			})
		},
	}
	resource.Flags().IntVar(&percent, "percent", 0, "resource share in percent")

	var start, end string
	dates := &cobra.Command{
		Use:   "dates <id>",
		Short: "Set start and end dates (YYYY-MM-DD, empty clears)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.HypothesisCLI.SetDates(ctx, args[0], optString(cmd, "start", start), optString(cmd, "end", end))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), portfolio.RenderItem(out))
				return nil
			})
		},
	}
	dates.Flags().StringVar(&start, "start", "", "start date")
	dates.Flags().StringVar(&end, "end", "", "end date")

	var logDate, logMemo string
	var metrics map[string]string
	logCmd := &cobra.Command{
		Use:   "log <id> --metric reach=120 --metric responses=8",
		Short: "Record a daily log for an active hypothesis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseMetrics(metrics)
			if err != nil {
				return err
			}
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.HypothesisCLI.AddLog(ctx, args[0], logDate, values, logMemo)
				if err != nil {
					return err
				}
				keys := make([]string, 0, len(out.Metrics))
				for k := range out.Metrics {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				parts := make([]string, 0, len(keys))
				for _, k := range keys {
					parts = append(parts, fmt.Sprintf("%s=%g", k, out.Metrics[k]))
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %s %s\n", out.Date, strings.Join(parts, " "))
				return nil
			})
		},
	}
	logCmd.Flags().StringVar(&logDate, "date", "", "log date, default today")
	logCmd.Flags().StringVar(&logMemo, "memo", "", "memo")
	logCmd.Flags().StringToStringVar(&metrics, "metric", nil, "metric=value pairs")

	trend := &cobra.Command{
		Use:   "trend <id>",
		Short: "Compare the KPI numerator between the two latest logs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.HypothesisCLI.Trend(ctx, args[0])
				if err != nil {
					return err
				}
				if !out.OK {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), theme.Muted.Render("not enough logs for a trend"))
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", portfolio.TrendGlyph(out), out.Label, out.Metric)
				return nil
			})
		},
	}

	var width int
	resources := &cobra.Command{
		Use:   "resources",
		Short: "Show how resources are split across active hypotheses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.HypothesisCLI.Resources(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), portfolio.RenderResources(out, width))
				return nil
			})
		},
	}
	resources.Flags().IntVar(&width, "width", 40, "bar width")

	var record bool
	promote := &cobra.Command{
		Use:   "promote <id>",
		Short: "Summarise the logs as an experiment draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				draft, err := app.HypothesisCLI.Promote(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s / %s (%s)\nreach=%g responses=%g sales=%g\n%s\n",
					draft.IdeaTitle, draft.TestTitle, draft.Period, draft.Reach, draft.Responses, draft.Sales, draft.Memo)
				if !record {
					return nil
				}
				out, err := app.ExperimentCLI.Add(ctx, experimentdto.AddInput{
					IdeaTitle: draft.IdeaTitle,
					TestTitle: draft.TestTitle,
					Period:    draft.Period,
					Reach:     draft.Reach,
					Responses: draft.Responses,
					Sales:     draft.Sales,
					Memo:      draft.Memo,
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recorded experiment %s\n", out.Experiment.ID)
				return nil
			})
		},
	}
	promote.Flags().BoolVar(&record, "record", false, "save the draft as an experiment")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one hypothesis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.HypothesisCLI.Delete(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Delete every hypothesis",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.HypothesisCLI.Reset(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "all hypotheses deleted")
				return nil
			})
		},
	}

	var noteDir string
	note := &cobra.Command{
		Use:   "note <id>",
		Short: "Write or refresh the markdown note for a hypothesis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				dir := noteDir
				if dir == "" {
					dir = app.Config.ExportDir
				}
				out, err := app.HypothesisCLI.ExportNote(ctx, args[0], dir)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note=%s\n", out.Path)
				return nil
			})
		},
	}
	note.Flags().StringVar(&noteDir, "dir", "", "vault directory, default export_dir")

	hypothesis.AddCommand(add, list, show, update, statusCmd, resource, dates, logCmd, trend, resources, promote, del, reset, note)
	return hypothesis
}

func hypothesisUpdate(cmd *cobra.Command, id, text, effort, kpi, learning string) hypothesisdto.UpdateInput {
	return hypothesisdto.UpdateInput{
		ID:         id,
		Hypothesis: optString(cmd, "text", text),
		Effort:     optString(cmd, "effort", effort),
		KPI:        optString(cmd, "kpi", kpi),
		Learning:   optString(cmd, "learning", learning),
	}
}
