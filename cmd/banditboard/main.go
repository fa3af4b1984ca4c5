package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"banditboard/internal/bootstrap"
	"banditboard/internal/platform/config"
	apperrors "banditboard/internal/platform/errors"
)

type rootFlags struct {
	dataDir   string
	assumeYes bool
	verbose   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, apperrors.ErrNotConfirmed) {
			_, _ = fmt.Fprintln(os.Stderr, "cancelled")
			return
		}
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "banditboard",
		Short:         "Idea matrix, hypothesis portfolio and experiment log",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data", "", "data directory (default $"+config.EnvDataDir+" or .)")
	root.PersistentFlags().BoolVarP(&flags.assumeYes, "yes", "y", false, "answer yes to every confirmation")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newIdeaCmd(flags))
	root.AddCommand(newKPICmd(flags))
	root.AddCommand(newHypothesisCmd(flags))
	root.AddCommand(newExperimentCmd(flags))
	root.AddCommand(newConfidenceCmd(flags))
	return root
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(flags, func(_ context.Context, app *bootstrap.App) error {
				return bootstrap.RunTUI(app)
			})
		},
	}
}

// withApp opens the board for one command and closes it afterwards.
func withApp(flags *rootFlags, run func(ctx context.Context, app *bootstrap.App) error) error {
	cfg, err := config.New(flags.dataDir)
	if err != nil {
		return err
	}
	app, err := bootstrap.New(cfg, bootstrap.Options{Verbose: flags.verbose, AssumeYes: flags.assumeYes})
	if err != nil {
		return err
	}
	runErr := run(context.Background(), app)
	if err := app.Close(); err != nil && runErr == nil {
		return fmt.Errorf("close board: %w", err)
	}
	return runErr
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}

// optString returns nil unless the flag was given explicitly.
func optString(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func optInt(cmd *cobra.Command, name string, value int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

// parseMetrics turns key=value flag pairs into numeric metrics.
func parseMetrics(raw map[string]string) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for key, value := range raw {
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: metric %s=%q is not a number", apperrors.ErrInvalidInput, key, value)
		}
		out[key] = n
	}
	return out, nil
}

func readPayload(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}
