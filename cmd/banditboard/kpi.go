package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"banditboard/internal/bootstrap"
	kpidto "banditboard/internal/modules/kpi/dto"
	"banditboard/internal/ui/theme"
)

func newKPICmd(flags *rootFlags) *cobra.Command {
	kpi := &cobra.Command{Use: "kpi", Short: "Configure the three experiment metrics"}

	kpi.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show metric labels and roles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.KPICLI.Show(ctx)
				if err != nil {
					return err
				}
				printKPI(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})

	var label, helper, role string
	set := &cobra.Command{
		Use:   "set <reach|responses|sales>",
		Short: "Change a metric label, helper text or role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.KPICLI.Set(ctx, args[0],
					optString(cmd, "label", label),
					optString(cmd, "helper", helper),
					optString(cmd, "role", role),
				)
				if err != nil {
					return err
				}
				printKPI(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	set.Flags().StringVar(&label, "label", "", "display label")
	set.Flags().StringVar(&helper, "helper", "", "helper text")
	set.Flags().StringVar(&role, "role", "", "denominator|numerator|none")

	kpi.AddCommand(set, &cobra.Command{
		Use:   "reset",
		Short: "Restore the default metric configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.KPICLI.Reset(ctx)
				if err != nil {
					return err
				}
				printKPI(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})
	return kpi
}

func printKPI(w io.Writer, out kpidto.ConfigOutput) {
	for _, item := range out.Items {
		_, _ = fmt.Fprintf(w, "%-10s %-12s %s\t%s\n", item.ID, item.Role, theme.Title.Render(item.Label), theme.Muted.Render(item.Helper))
	}
	if out.Denominator == "" {
		_, _ = fmt.Fprintln(w, theme.Warn.Render("no denominator: rates are unavailable"))
	}
}
