package usecase

import (
	"context"
	"fmt"
	"strings"

	"banditboard/internal/modules/hypothesis/domain"
	"banditboard/internal/modules/hypothesis/dto"
	hypothesisin "banditboard/internal/modules/hypothesis/port/in"
	hypothesisout "banditboard/internal/modules/hypothesis/port/out"
	"banditboard/internal/modules/hypothesis/service"
	kpiin "banditboard/internal/modules/kpi/port/in"
	"banditboard/internal/platform/confirm"
	apperrors "banditboard/internal/platform/errors"
)

type Interactor struct {
	svc     *service.HypothesisService
	kpi     kpiin.Usecase
	confirm confirm.Confirmer
	notes   hypothesisout.NoteWriter
}

func NewInteractor(svc *service.HypothesisService, kpi kpiin.Usecase, confirmer confirm.Confirmer, notes hypothesisout.NoteWriter) hypothesisin.Usecase {
	if confirmer == nil {
		confirmer = confirm.Static{Answer: false}
	}
	return &Interactor{svc: svc, kpi: kpi, confirm: confirmer, notes: notes}
}

func (i *Interactor) Add(ctx context.Context, input dto.AddInput) (dto.ItemOutput, error) {
	item, err := i.svc.Add(ctx, input.IdeaTitle, input.Hypothesis)
	if err != nil {
		return dto.ItemOutput{}, err
	}
	return toOutput(item), nil
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.ItemOutput, error) {
	patch := domain.Patch{
		Hypothesis: input.Hypothesis,
		KPI:        input.KPI,
		Learning:   input.Learning,
		Resource:   input.Resource,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	}
	if input.Effort != nil {
		effort := domain.Effort(*input.Effort)
		patch.Effort = &effort
	}
	if input.Status != nil {
		status := domain.Status(*input.Status)
		patch.Status = &status
	}
	item, err := i.svc.Update(ctx, input.ID, patch)
	if err != nil {
		return dto.ItemOutput{}, err
	}
	return toOutput(item), nil
}

func (i *Interactor) Delete(ctx context.Context, id string) error {
	item, err := i.svc.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := i.ask(ctx, fmt.Sprintf("Delete hypothesis %q?", item.Hypothesis)); err != nil {
		return err
	}
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) Reset(ctx context.Context) error {
	if err := i.ask(ctx, "Delete every hypothesis and its logs? This cannot be undone."); err != nil {
		return err
	}
	i.svc.Clear(ctx)
	return nil
}

func (i *Interactor) List(ctx context.Context, input dto.ListInput) ([]dto.ItemOutput, error) {
	filter, err := domain.ParseFilter(input.Status)
	if err != nil {
		return nil, err
	}
	mode, err := domain.ParseSortMode(input.Sort)
	if err != nil {
		return nil, err
	}
	items, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	selected := domain.Select(items, filter, mode)
	out := make([]dto.ItemOutput, 0, len(selected))
	for _, item := range selected {
		out = append(out, toOutput(item))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.ItemOutput, error) {
	item, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.ItemOutput{}, err
	}
	return toOutput(item), nil
}

func (i *Interactor) AddLog(ctx context.Context, input dto.LogInput) (dto.LogOutput, error) {
	metrics := make(map[string]float64, len(input.Metrics))
	known := make(map[string]struct{}, len(input.Metrics))
	for key, v := range input.Metrics {
		key = strings.ToLower(strings.TrimSpace(key))
		metrics[key] = v
		ok, err := i.kpi.IsMetric(ctx, key)
		if err != nil {
			return dto.LogOutput{}, err
		}
		if ok {
			known[key] = struct{}{}
		}
	}
	isMetric := func(key string) bool {
		_, ok := known[key]
		return ok
	}
	log, err := i.svc.AddLog(ctx, input.ItemID, input.Date, metrics, input.Memo, isMetric)
	if err != nil {
		return dto.LogOutput{}, err
	}
	return toLogOutput(log), nil
}

func (i *Interactor) Trend(ctx context.Context, id string) (dto.TrendOutput, error) {
	metric, err := i.kpi.NumeratorKey(ctx)
	if err != nil {
		return dto.TrendOutput{}, err
	}
	item, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.TrendOutput{}, err
	}
	out := dto.TrendOutput{ItemID: item.ID, Metric: metric}
	if trend, ok := domain.ComputeTrend(item.Logs, metric); ok {
		out.OK = true
		out.Trend = string(trend)
		out.Label = trend.Label()
	}
	return out, nil
}

func (i *Interactor) Resources(ctx context.Context) (dto.ResourcesOutput, error) {
	items, err := i.svc.List(ctx)
	if err != nil {
		return dto.ResourcesOutput{}, err
	}
	summary := domain.SummarizeResources(items)
	out := dto.ResourcesOutput{Total: summary.Total, Overfilled: summary.Overfilled}
	for _, seg := range summary.Segments {
		out.Segments = append(out.Segments, dto.SegmentOutput{ItemID: seg.ItemID, IdeaTitle: seg.IdeaTitle, Status: string(seg.Status), Resource: seg.Resource})
	}
	return out, nil
}

func (i *Interactor) Promote(ctx context.Context, id string) (dto.PromotionOutput, error) {
	item, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.PromotionOutput{}, err
	}
	p := domain.Promote(item)
	return dto.PromotionOutput{
		IdeaTitle: p.IdeaTitle,
		TestTitle: p.TestTitle,
		Period:    p.Period,
		Reach:     p.Reach,
		Responses: p.Responses,
		Sales:     p.Sales,
		Memo:      p.Memo,
	}, nil
}

func (i *Interactor) ExportNote(ctx context.Context, input dto.NoteInput) (dto.NoteOutput, error) {
	if strings.TrimSpace(input.Dir) == "" {
		return dto.NoteOutput{}, fmt.Errorf("%w: export directory is required", apperrors.ErrInvalidInput)
	}
	cfg, err := i.kpi.Config(ctx)
	if err != nil {
		return dto.NoteOutput{}, err
	}
	metrics := make([]string, 0, len(cfg.Items))
	for _, item := range cfg.Items {
		metrics = append(metrics, item.ID)
	}
	trendMetric, err := i.kpi.NumeratorKey(ctx)
	if err != nil {
		return dto.NoteOutput{}, err
	}
	item, note, err := i.svc.Note(ctx, input.ItemID, metrics, trendMetric)
	if err != nil {
		return dto.NoteOutput{}, err
	}
	path, err := i.notes.Write(ctx, input.Dir, item, note)
	if err != nil {
		return dto.NoteOutput{}, err
	}
	return dto.NoteOutput{Path: path}, nil
}

func (i *Interactor) ask(ctx context.Context, prompt string) error {
	ok, err := i.confirm.Confirm(ctx, prompt)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrNotConfirmed
	}
	return nil
}

func toOutput(item domain.Item) dto.ItemOutput {
	out := dto.ItemOutput{
		ID:          item.ID,
		IdeaTitle:   item.IdeaTitle,
		Hypothesis:  item.Hypothesis,
		Duration:    item.Duration,
		StartDate:   item.StartDate,
		EndDate:     item.EndDate,
		Effort:      string(item.Effort),
		EffortLabel: item.Effort.Label(),
		Resource:    item.Resource,
		KPI:         item.KPI,
		Status:      string(item.Status),
		StatusLabel: item.Status.Label(),
		Learning:    item.Learning,
		CreatedAt:   item.CreatedAt,
	}
	for _, log := range item.Logs {
		out.Logs = append(out.Logs, toLogOutput(log))
	}
	return out
}

func toLogOutput(log domain.DailyLog) dto.LogOutput {
	metrics := make(map[string]float64, len(log.Metrics))
	for k, v := range log.Metrics {
		metrics[k] = v
	}
	return dto.LogOutput{ID: log.ID, Date: log.Date, Metrics: metrics, Memo: log.Memo, CreatedAt: log.CreatedAt}
}
