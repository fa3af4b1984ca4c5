package in

import (
	"context"

	"banditboard/internal/modules/experiment/dto"
)

type Usecase interface {
	Add(ctx context.Context, input dto.AddInput) (dto.AddOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.ExperimentOutput, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, input dto.ListInput) ([]dto.ExperimentOutput, error)
	IdeaTitles(ctx context.Context) ([]string, error)
	// SyncConfidence makes sure every experimented idea has a confidence record.
	SyncConfidence(ctx context.Context) (int, error)
	ExportXLSX(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
