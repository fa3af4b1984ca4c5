package in

import (
	"context"

	"banditboard/internal/modules/kpi/dto"
	kpiin "banditboard/internal/modules/kpi/port/in"
)

type CLIHandler struct {
	usecase kpiin.Usecase
}

func NewCLIHandler(usecase kpiin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (dto.ConfigOutput, error) {
	return h.usecase.Config(ctx)
}

func (h CLIHandler) Set(ctx context.Context, id string, label, helper, role *string) (dto.ConfigOutput, error) {
	return h.usecase.Update(ctx, dto.UpdateInput{ID: id, Label: label, Helper: helper, Role: role})
}

func (h CLIHandler) Reset(ctx context.Context) (dto.ConfigOutput, error) {
	return h.usecase.Reset(ctx)
}
