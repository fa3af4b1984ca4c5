package usecase

import (
	"context"
	"fmt"
	"strings"

	confidencedto "banditboard/internal/modules/confidence/dto"
	confidencein "banditboard/internal/modules/confidence/port/in"
	"banditboard/internal/modules/experiment/domain"
	"banditboard/internal/modules/experiment/dto"
	experimentin "banditboard/internal/modules/experiment/port/in"
	experimentout "banditboard/internal/modules/experiment/port/out"
	"banditboard/internal/modules/experiment/service"
	kpidto "banditboard/internal/modules/kpi/dto"
	kpiin "banditboard/internal/modules/kpi/port/in"
	"banditboard/internal/platform/confirm"
	apperrors "banditboard/internal/platform/errors"
)

type Interactor struct {
	svc        *service.ExperimentService
	kpi        kpiin.Usecase
	confidence confidencein.Usecase
	confirm    confirm.Confirmer
	sheets     experimentout.SheetWriter
}

func NewInteractor(svc *service.ExperimentService, kpi kpiin.Usecase, confidence confidencein.Usecase, confirmer confirm.Confirmer, sheets experimentout.SheetWriter) experimentin.Usecase {
	if confirmer == nil {
		confirmer = confirm.Static{Answer: false}
	}
	return &Interactor{svc: svc, kpi: kpi, confidence: confidence, confirm: confirmer, sheets: sheets}
}

func (i *Interactor) Add(ctx context.Context, input dto.AddInput) (dto.AddOutput, error) {
	cfg, err := i.kpi.Config(ctx)
	if err != nil {
		return dto.AddOutput{}, err
	}
	e, err := i.svc.Add(ctx, domain.Experiment{
		IdeaTitle: input.IdeaTitle,
		TestTitle: input.TestTitle,
		Period:    input.Period,
		Reach:     input.Reach,
		Responses: input.Responses,
		Sales:     input.Sales,
		Memo:      input.Memo,
	})
	if err != nil {
		return dto.AddOutput{}, err
	}
	tracked, err := i.SyncConfidence(ctx)
	if err != nil {
		return dto.AddOutput{}, err
	}
	return dto.AddOutput{Experiment: toOutput(e, cfg), NewlyTracked: tracked}, nil
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.ExperimentOutput, error) {
	cfg, err := i.kpi.Config(ctx)
	if err != nil {
		return dto.ExperimentOutput{}, err
	}
	e, err := i.svc.Update(ctx, input.ID, domain.Patch{
		Period:         input.Period,
		Memo:           input.Memo,
		SuccessFactors: input.SuccessFactors,
		FailureFactors: input.FailureFactors,
		Feedback:       input.Feedback,
	})
	if err != nil {
		return dto.ExperimentOutput{}, err
	}
	if _, err := i.SyncConfidence(ctx); err != nil {
		return dto.ExperimentOutput{}, err
	}
	return toOutput(e, cfg), nil
}

func (i *Interactor) Delete(ctx context.Context, id string) error {
	e, err := i.svc.Find(ctx, id)
	if err != nil {
		return err
	}
	ok, err := i.confirm.Confirm(ctx, fmt.Sprintf("Delete experiment %q (%s)?", e.TestTitle, e.IdeaTitle))
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrNotConfirmed
	}
	if err := i.svc.Delete(ctx, id); err != nil {
		return err
	}
	_, err = i.SyncConfidence(ctx)
	return err
}

func (i *Interactor) List(ctx context.Context, input dto.ListInput) ([]dto.ExperimentOutput, error) {
	selected, cfg, err := i.selectExperiments(ctx, input)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExperimentOutput, 0, len(selected))
	for _, e := range selected {
		out = append(out, toOutput(e, cfg))
	}
	return out, nil
}

func (i *Interactor) IdeaTitles(ctx context.Context) ([]string, error) {
	items, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.IdeaTitles(items), nil
}

func (i *Interactor) SyncConfidence(ctx context.Context) (int, error) {
	if i.confidence == nil {
		return 0, nil
	}
	titles, err := i.IdeaTitles(ctx)
	if err != nil {
		return 0, err
	}
	return i.confidence.Sync(ctx, confidencedto.SyncInput{Titles: titles})
}

func (i *Interactor) ExportXLSX(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	if strings.TrimSpace(input.Path) == "" {
		return dto.ExportOutput{}, fmt.Errorf("%w: export path is required", apperrors.ErrInvalidInput)
	}
	selected, cfg, err := i.selectExperiments(ctx, input.ListInput)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	sheet := domain.Sheet{
		Name: "experiments",
		Header: []string{
			"idea", "test", "period",
			cfg.Label(domain.MetricReach), cfg.Label(domain.MetricResponses), cfg.Label(domain.MetricSales),
		},
	}
	if cfg.Denominator != "" {
		for _, num := range cfg.Numerators {
			sheet.Header = append(sheet.Header, fmt.Sprintf("%s / %s", cfg.Label(num), cfg.Label(cfg.Denominator)))
		}
	}
	sheet.Header = append(sheet.Header, "memo", "success factors", "failure factors", "feedback", "created at")
	for _, e := range selected {
		row := []any{e.IdeaTitle, e.TestTitle, e.Period, e.Reach, e.Responses, e.Sales}
		for _, rate := range domain.Rates(e.Values(), cfg.Denominator, cfg.Numerators) {
			if rate.OK {
				row = append(row, rate.Value)
			} else {
				row = append(row, "-")
			}
		}
		row = append(row, e.Memo, e.SuccessFactors, e.FailureFactors, e.Feedback, e.CreatedAt.Format("2006-01-02 15:04"))
		sheet.Rows = append(sheet.Rows, row)
	}
	if err := i.sheets.Write(ctx, input.Path, sheet); err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{Path: input.Path, Rows: len(sheet.Rows)}, nil
}

func (i *Interactor) selectExperiments(ctx context.Context, input dto.ListInput) ([]domain.Experiment, kpidto.ConfigOutput, error) {
	mode, err := domain.ParseSortMode(input.Sort)
	if err != nil {
		return nil, kpidto.ConfigOutput{}, err
	}
	cfg, err := i.kpi.Config(ctx)
	if err != nil {
		return nil, kpidto.ConfigOutput{}, err
	}
	items, err := i.svc.List(ctx)
	if err != nil {
		return nil, kpidto.ConfigOutput{}, err
	}
	return domain.Select(items, strings.TrimSpace(input.IdeaTitle), mode), cfg, nil
}

func toOutput(e domain.Experiment, cfg kpidto.ConfigOutput) dto.ExperimentOutput {
	out := dto.ExperimentOutput{
		ID:             e.ID,
		IdeaTitle:      e.IdeaTitle,
		TestTitle:      e.TestTitle,
		Period:         e.Period,
		Reach:          e.Reach,
		Responses:      e.Responses,
		Sales:          e.Sales,
		Memo:           e.Memo,
		SuccessFactors: e.SuccessFactors,
		FailureFactors: e.FailureFactors,
		Feedback:       e.Feedback,
		CreatedAt:      e.CreatedAt,
	}
	for _, rate := range domain.Rates(e.Values(), cfg.Denominator, cfg.Numerators) {
		out.Rates = append(out.Rates, dto.RateOutput{
			Metric:  rate.NumeratorID,
			Label:   cfg.Label(rate.NumeratorID),
			Value:   rate.Value,
			OK:      rate.OK,
			Display: domain.FormatRate(rate.Value, rate.OK),
		})
	}
	return out
}
