package in

import (
	"context"

	"banditboard/internal/modules/hypothesis/dto"
)

type Usecase interface {
	Add(ctx context.Context, input dto.AddInput) (dto.ItemOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.ItemOutput, error)
	Delete(ctx context.Context, id string) error
	Reset(ctx context.Context) error
	List(ctx context.Context, input dto.ListInput) ([]dto.ItemOutput, error)
	Get(ctx context.Context, id string) (dto.ItemOutput, error)
	AddLog(ctx context.Context, input dto.LogInput) (dto.LogOutput, error)
	Trend(ctx context.Context, id string) (dto.TrendOutput, error)
	Resources(ctx context.Context) (dto.ResourcesOutput, error)
	// Promote builds an experiment seed; the item itself is not changed.
	Promote(ctx context.Context, id string) (dto.PromotionOutput, error)
	ExportNote(ctx context.Context, input dto.NoteInput) (dto.NoteOutput, error)
}
