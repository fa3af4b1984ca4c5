package bootstrap

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	confidenceinadapter "banditboard/internal/modules/confidence/adapter/in"
	confidenceoutadapter "banditboard/internal/modules/confidence/adapter/out"
	confidenceservice "banditboard/internal/modules/confidence/service"
	confidenceusecase "banditboard/internal/modules/confidence/usecase"
	experimentinadapter "banditboard/internal/modules/experiment/adapter/in"
	experimentoutadapter "banditboard/internal/modules/experiment/adapter/out"
	experimentservice "banditboard/internal/modules/experiment/service"
	experimentusecase "banditboard/internal/modules/experiment/usecase"
	hypothesisinadapter "banditboard/internal/modules/hypothesis/adapter/in"
	hypothesisoutadapter "banditboard/internal/modules/hypothesis/adapter/out"
	hypothesisservice "banditboard/internal/modules/hypothesis/service"
	hypothesisusecase "banditboard/internal/modules/hypothesis/usecase"
	kpiinadapter "banditboard/internal/modules/kpi/adapter/in"
	kpioutadapter "banditboard/internal/modules/kpi/adapter/out"
	kpiservice "banditboard/internal/modules/kpi/service"
	kpiusecase "banditboard/internal/modules/kpi/usecase"
	matrixinadapter "banditboard/internal/modules/matrix/adapter/in"
	matrixoutadapter "banditboard/internal/modules/matrix/adapter/out"
	matrixservice "banditboard/internal/modules/matrix/service"
	matrixusecase "banditboard/internal/modules/matrix/usecase"
	"banditboard/internal/platform/clock"
	"banditboard/internal/platform/config"
	"banditboard/internal/platform/confirm"
	"banditboard/internal/platform/id"
	"banditboard/internal/platform/kv"
	"banditboard/internal/platform/logging"
	uiapp "banditboard/internal/ui/app"
)

type App struct {
	Config        config.Config
	Logger        *zap.Logger
	MatrixCLI     matrixinadapter.CLIHandler
	KPICLI        kpiinadapter.CLIHandler
	ConfidenceCLI confidenceinadapter.CLIHandler
	ExperimentCLI experimentinadapter.CLIHandler
	HypothesisCLI hypothesisinadapter.CLIHandler

	store *kv.SQLiteStore
}

type Options struct {
	Verbose   bool
	AssumeYes bool
}

func New(cfg config.Config, opts Options) (*App, error) {
	logger, err := logging.New(cfg.LogLevel, opts.Verbose)
	if err != nil {
		return nil, err
	}
	store, err := kv.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", zap.String("path", store.Path()))

	var confirmer confirm.Confirmer = confirm.NewTUI(os.Stdin, os.Stderr)
	if opts.AssumeYes || cfg.AssumeYes {
		confirmer = confirm.Static{Answer: true}
	}
	return wire(cfg, logger, store, confirmer, clock.SystemClock{}, id.UUID{}), nil
}

func wire(cfg config.Config, logger *zap.Logger, store *kv.SQLiteStore, confirmer confirm.Confirmer, clk clock.Clock, ids id.Generator) *App {
	kpiUC := kpiusecase.NewInteractor(kpiservice.NewKPIService(
		kpioutadapter.NewKVConfigStore(store),
		logger.Named("kpi"),
	))
	confidenceUC := confidenceusecase.NewInteractor(confidenceservice.NewConfidenceService(
		clk,
		confidenceoutadapter.NewKVRecordStore(store),
		logger.Named("confidence"),
	))
	matrixUC := matrixusecase.NewInteractor(matrixservice.NewMatrixService(
		clk,
		ids,
		matrixoutadapter.NewKVIdeaStore(store),
		matrixoutadapter.NewKVBoardStateStore(store),
		logger.Named("matrix"),
	), confirmer)
	experimentUC := experimentusecase.NewInteractor(
		experimentservice.NewExperimentService(clk, ids, experimentoutadapter.NewKVExperimentStore(store), logger.Named("experiment")),
		kpiUC,
		confidenceUC,
		confirmer,
		experimentoutadapter.NewXLSXWriter(),
	)
	hypothesisUC := hypothesisusecase.NewInteractor(
		hypothesisservice.NewHypothesisService(clk, ids, hypothesisoutadapter.NewKVItemStore(store), logger.Named("hypothesis")),
		kpiUC,
		confirmer,
		hypothesisoutadapter.NewVaultNoteWriter(),
	)

	return &App{
		Config:        cfg,
		Logger:        logger,
		MatrixCLI:     matrixinadapter.NewCLIHandler(matrixUC),
		KPICLI:        kpiinadapter.NewCLIHandler(kpiUC),
		ConfidenceCLI: confidenceinadapter.NewCLIHandler(confidenceUC),
		ExperimentCLI: experimentinadapter.NewCLIHandler(experimentUC),
		HypothesisCLI: hypothesisinadapter.NewCLIHandler(hypothesisUC),
		store:         store,
	}
}

// Close flushes the logger and releases the database handle.
func (a *App) Close() error {
	_ = a.Logger.Sync()
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(uiapp.Ports{
		Matrix:     app.MatrixCLI,
		Portfolio:  app.HypothesisCLI,
		Experiment: app.ExperimentCLI,
		Confidence: app.ConfidenceCLI,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
