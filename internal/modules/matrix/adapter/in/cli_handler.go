package in

import (
	"context"

	"banditboard/internal/modules/matrix/dto"
	matrixin "banditboard/internal/modules/matrix/port/in"
)

type CLIHandler struct {
	usecase matrixin.Usecase
}

func NewCLIHandler(usecase matrixin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) AddIdea(ctx context.Context, title, memo string, impact, cost int) (dto.IdeaOutput, error) {
	return h.usecase.AddIdea(ctx, dto.AddIdeaInput{Title: title, Memo: memo, Impact: impact, Cost: cost})
}

func (h CLIHandler) DeleteIdea(ctx context.Context, id string) error {
	return h.usecase.DeleteIdea(ctx, id)
}

func (h CLIHandler) ResetIdeas(ctx context.Context) error {
	return h.usecase.ResetIdeas(ctx)
}

func (h CLIHandler) ListIdeas(ctx context.Context, all bool) ([]dto.IdeaOutput, error) {
	return h.usecase.ListIdeas(ctx, dto.ListInput{All: all})
}

func (h CLIHandler) Filters(ctx context.Context) ([]dto.FilterOutput, error) {
	return h.usecase.Filters(ctx)
}

func (h CLIHandler) ToggleFilter(ctx context.Context, zone string) ([]dto.FilterOutput, error) {
	return h.usecase.ToggleFilter(ctx, zone)
}

func (h CLIHandler) Title(ctx context.Context) (string, error) {
	return h.usecase.Title(ctx)
}

func (h CLIHandler) SetTitle(ctx context.Context, title string) error {
	return h.usecase.SetTitle(ctx, title)
}

func (h CLIHandler) Export(ctx context.Context) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx)
}

func (h CLIHandler) PreviewImport(ctx context.Context, payload []byte) (string, error) {
	return h.usecase.PreviewImport(ctx, dto.ImportInput{Payload: payload})
}

func (h CLIHandler) Import(ctx context.Context, payload []byte) (dto.ImportOutput, error) {
	return h.usecase.Import(ctx, dto.ImportInput{Payload: payload})
}

func (h CLIHandler) Matrix(ctx context.Context) (dto.MatrixOutput, error) {
	return h.usecase.Matrix(ctx)
}
