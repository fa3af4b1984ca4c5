package usecase

import (
	"context"
	"strings"

	"banditboard/internal/modules/confidence/domain"
	"banditboard/internal/modules/confidence/dto"
	confidencein "banditboard/internal/modules/confidence/port/in"
	"banditboard/internal/modules/confidence/service"
)

type Interactor struct {
	svc *service.ConfidenceService
}

func NewInteractor(svc *service.ConfidenceService) confidencein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Sync(ctx context.Context, input dto.SyncInput) (int, error) {
	return i.svc.Sync(ctx, input.Titles)
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.RecordOutput, error) {
	patch := domain.Patch{Confidence: input.Confidence, Memo: input.Memo}
	if input.Impact != nil {
		impact := domain.Impact(strings.TrimSpace(*input.Impact))
		patch.Impact = &impact
	}
	record, err := i.svc.Update(ctx, input.IdeaTitle, patch)
	if err != nil {
		return dto.RecordOutput{}, err
	}
	return toOutput(record), nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.RecordOutput, error) {
	records, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecordOutput, 0, len(records))
	for _, r := range records {
		out = append(out, toOutput(r))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, ideaTitle string) (dto.RecordOutput, error) {
	record, err := i.svc.Get(ctx, ideaTitle)
	if err != nil {
		return dto.RecordOutput{}, err
	}
	return toOutput(record), nil
}

func toOutput(r domain.Record) dto.RecordOutput {
	return dto.RecordOutput{
		IdeaTitle:   r.IdeaTitle,
		Confidence:  r.Confidence,
		Impact:      string(r.LastImpact),
		ImpactLabel: r.LastImpact.Label(),
		Memo:        r.Memo,
		UpdatedAt:   r.UpdatedAt,
	}
}
