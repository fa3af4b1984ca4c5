package usecase

import (
	"context"

	"banditboard/internal/modules/kpi/domain"
	"banditboard/internal/modules/kpi/dto"
	kpiin "banditboard/internal/modules/kpi/port/in"
	"banditboard/internal/modules/kpi/service"
)

type Interactor struct {
	svc *service.KPIService
}

func NewInteractor(svc *service.KPIService) kpiin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Config(ctx context.Context) (dto.ConfigOutput, error) {
	cfg, err := i.svc.Config(ctx)
	if err != nil {
		return dto.ConfigOutput{}, err
	}
	return toOutput(cfg), nil
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.ConfigOutput, error) {
	id, err := domain.ParseMetricID(input.ID)
	if err != nil {
		return dto.ConfigOutput{}, err
	}
	patch := domain.Patch{Label: input.Label, Helper: input.Helper}
	if input.Role != nil {
		role := domain.Role(*input.Role)
		patch.Role = &role
	}
	cfg, err := i.svc.Update(ctx, id, patch)
	if err != nil {
		return dto.ConfigOutput{}, err
	}
	return toOutput(cfg), nil
}

func (i *Interactor) Reset(ctx context.Context) (dto.ConfigOutput, error) {
	return toOutput(i.svc.Reset(ctx)), nil
}

func (i *Interactor) NumeratorKey(ctx context.Context) (string, error) {
	cfg, err := i.svc.Config(ctx)
	if err != nil {
		return "", err
	}
	return string(cfg.NumeratorKey()), nil
}

func (i *Interactor) IsMetric(ctx context.Context, id string) (bool, error) {
	cfg, err := i.svc.Config(ctx)
	if err != nil {
		return false, err
	}
	_, ok := cfg.Item(domain.MetricID(id))
	return ok, nil
}

func toOutput(cfg domain.Config) dto.ConfigOutput {
	out := dto.ConfigOutput{Items: make([]dto.ItemOutput, 0, len(cfg))}
	for _, item := range cfg {
		out.Items = append(out.Items, dto.ItemOutput{ID: string(item.ID), Label: item.Label, Helper: item.Helper, Role: string(item.Role)})
	}
	if den, ok := cfg.Denominator(); ok {
		out.Denominator = string(den.ID)
	}
	for _, num := range cfg.Numerators() {
		out.Numerators = append(out.Numerators, string(num.ID))
	}
	return out
}
