package in

import (
	"context"

	"banditboard/internal/modules/confidence/dto"
)

type Usecase interface {
	// Sync creates default records for unseen titles and returns how many.
	Sync(ctx context.Context, input dto.SyncInput) (int, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.RecordOutput, error)
	List(ctx context.Context) ([]dto.RecordOutput, error)
	Get(ctx context.Context, ideaTitle string) (dto.RecordOutput, error)
}
