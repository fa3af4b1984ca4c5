package in

import (
	"context"

	"banditboard/internal/modules/experiment/dto"
	experimentin "banditboard/internal/modules/experiment/port/in"
)

type CLIHandler struct {
	usecase experimentin.Usecase
}

func NewCLIHandler(usecase experimentin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, input dto.AddInput) (dto.AddOutput, error) {
	return h.usecase.Add(ctx, input)
}

func (h CLIHandler) Update(ctx context.Context, input dto.UpdateInput) (dto.ExperimentOutput, error) {
	return h.usecase.Update(ctx, input)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) List(ctx context.Context, ideaTitle, sort string) ([]dto.ExperimentOutput, error) {
	return h.usecase.List(ctx, dto.ListInput{IdeaTitle: ideaTitle, Sort: sort})
}

func (h CLIHandler) IdeaTitles(ctx context.Context) ([]string, error) {
	return h.usecase.IdeaTitles(ctx)
}

func (h CLIHandler) SyncConfidence(ctx context.Context) (int, error) {
	return h.usecase.SyncConfidence(ctx)
}

func (h CLIHandler) Export(ctx context.Context, path, ideaTitle, sort string) (dto.ExportOutput, error) {
	return h.usecase.ExportXLSX(ctx, dto.ExportInput{Path: path, ListInput: dto.ListInput{IdeaTitle: ideaTitle, Sort: sort}})
}
