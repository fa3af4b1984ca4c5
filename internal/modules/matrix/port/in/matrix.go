package in

import (
	"context"

	"banditboard/internal/modules/matrix/dto"
)

type Usecase interface {
	AddIdea(ctx context.Context, input dto.AddIdeaInput) (dto.IdeaOutput, error)
	DeleteIdea(ctx context.Context, id string) error
	ResetIdeas(ctx context.Context) error
	ListIdeas(ctx context.Context, input dto.ListInput) ([]dto.IdeaOutput, error)
	Filters(ctx context.Context) ([]dto.FilterOutput, error)
	ToggleFilter(ctx context.Context, zone string) ([]dto.FilterOutput, error)
	Title(ctx context.Context) (string, error)
	SetTitle(ctx context.Context, title string) error
	Export(ctx context.Context) (dto.ExportOutput, error)
	PreviewImport(ctx context.Context, input dto.ImportInput) (string, error)
	Import(ctx context.Context, input dto.ImportInput) (dto.ImportOutput, error)
	Matrix(ctx context.Context) (dto.MatrixOutput, error)
}
