package in

import (
	"context"

	"banditboard/internal/modules/confidence/dto"
	confidencein "banditboard/internal/modules/confidence/port/in"
)

type CLIHandler struct {
	usecase confidencein.Usecase
}

func NewCLIHandler(usecase confidencein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.RecordOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Update(ctx context.Context, title string, confidence *int, impact, memo *string) (dto.RecordOutput, error) {
	return h.usecase.Update(ctx, dto.UpdateInput{IdeaTitle: title, Confidence: confidence, Impact: impact, Memo: memo})
}
