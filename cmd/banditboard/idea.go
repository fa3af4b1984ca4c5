package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"banditboard/internal/bootstrap"
	matrixdto "banditboard/internal/modules/matrix/dto"
	"banditboard/internal/ui/theme"
	matrixview "banditboard/internal/ui/views/matrix"
)

func newIdeaCmd(flags *rootFlags) *cobra.Command {
	idea := &cobra.Command{Use: "idea", Short: "Score ideas on the impact x cost matrix"}

	var title, memo string
	var impact, cost int
	add := &cobra.Command{
		Use:   "add --title <title> --impact 1-5 --cost 1-5",
		Short: "Add an idea",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := required("title", title); err != nil {
				return err
			}
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.MatrixCLI.AddIdea(ctx, title, memo, impact, cost)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s) score=%d zone=%s\n", out.Title, out.ID, out.Score, out.ZoneLabel)
				return nil
			})
		},
	}
	add.Flags().StringVar(&title, "title", "", "idea title")
	add.Flags().StringVar(&memo, "memo", "", "free-form memo")
	add.Flags().IntVar(&impact, "impact", 3, "impact 1-5")
	add.Flags().IntVar(&cost, "cost", 3, "cost 1-5")

	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List ideas by score, honouring the zone filter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				ideas, err := app.MatrixCLI.ListIdeas(ctx, all)
				if err != nil {
					return err
				}
				if len(ideas) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no ideas")
					return nil
				}
				for _, i := range ideas {
					zone := theme.ZoneStyle(i.Zone).Render(i.ZoneLabel)
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%2d\tI%d C%d\t%s\t%s\n", i.ID, i.Score, i.Impact, i.Cost, zone, i.Title)
				}
				return nil
			})
		},
	}
	list.Flags().BoolVar(&all, "all", false, "ignore the zone filter")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.MatrixCLI.DeleteIdea(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Delete every idea",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.MatrixCLI.ResetIdeas(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "all ideas deleted")
				return nil
			})
		},
	}

	var width int
	grid := &cobra.Command{
		Use:   "matrix",
		Short: "Draw the impact x cost grid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.MatrixCLI.Matrix(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), matrixview.Render(out, width))
				return nil
			})
		},
	}
	grid.Flags().IntVar(&width, "width", 100, "terminal width")

	filter := &cobra.Command{
		Use:   "filter [zone]",
		Short: "Show the zone filter or toggle one zone",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				var (
					filters []matrixdto.FilterOutput
					err     error
				)
				if len(args) == 1 {
					filters, err = app.MatrixCLI.ToggleFilter(ctx, args[0])
				} else {
					filters, err = app.MatrixCLI.Filters(ctx)
				}
				if err != nil {
					return err
				}
				for _, f := range filters {
					mark := "[ ]"
					if f.Enabled {
						mark = "[x]"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\n", mark, f.Zone, theme.ZoneStyle(f.Zone).Render(f.Label))
				}
				return nil
			})
		},
	}

	titleCmd := &cobra.Command{
		Use:   "title [new title]",
		Short: "Show or set the board title",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if len(args) == 1 {
					return app.MatrixCLI.SetTitle(ctx, args[0])
				}
				t, err := app.MatrixCLI.Title(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), t)
				return nil
			})
		},
	}

	var exportPath string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the board as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.MatrixCLI.Export(ctx)
				if err != nil {
					return err
				}
				if exportPath == "" || exportPath == "-" {
					_, err = cmd.OutOrStdout().Write(append(out.Payload, '\n'))
					return err
				}
				if !filepath.IsAbs(exportPath) {
					exportPath = filepath.Join(app.Config.ExportDir, exportPath)
				}
				if err := os.WriteFile(exportPath, out.Payload, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d ideas to %s\n", out.Items, exportPath)
				return nil
			})
		},
	}
	export.Flags().StringVar(&exportPath, "out", "", "output file, - for stdout")

	var dryRun bool
	imp := &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the board from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				diff, err := app.MatrixCLI.PreviewImport(ctx, payload)
				if err != nil {
					return err
				}
				if diff == "" {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "import matches the current board")
				} else {
					_, _ = fmt.Fprint(cmd.OutOrStdout(), diff)
				}
				if dryRun {
					return nil
				}
				out, err := app.MatrixCLI.Import(ctx, payload)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d ideas (%d repaired)\n", out.Items, out.Repaired)
				if out.TitleChanged {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "title: %s\n", out.Title)
				}
				return nil
			})
		},
	}
	imp.Flags().BoolVar(&dryRun, "dry-run", false, "only show the diff")

	idea.AddCommand(add, list, del, reset, grid, filter, titleCmd, export, imp)
	return idea
}
