package in

import (
	"context"

	"banditboard/internal/modules/hypothesis/dto"
	hypothesisin "banditboard/internal/modules/hypothesis/port/in"
)

type CLIHandler struct {
	usecase hypothesisin.Usecase
}

func NewCLIHandler(usecase hypothesisin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, ideaTitle, hypothesis string) (dto.ItemOutput, error) {
	return h.usecase.Add(ctx, dto.AddInput{IdeaTitle: ideaTitle, Hypothesis: hypothesis})
}

func (h CLIHandler) Update(ctx context.Context, input dto.UpdateInput) (dto.ItemOutput, error) {
	return h.usecase.Update(ctx, input)
}

func (h CLIHandler) SetStatus(ctx context.Context, id, status string) (dto.ItemOutput, error) {
	return h.usecase.Update(ctx, dto.UpdateInput{ID: id, Status: &status})
}

func (h CLIHandler) SetResource(ctx context.Context, id string, percent int) (dto.ItemOutput, error) {
	return h.usecase.Update(ctx, dto.UpdateInput{ID: id, Resource: &percent})
}

func (h CLIHandler) SetDates(ctx context.Context, id string, start, end *string) (dto.ItemOutput, error) {
	return h.usecase.Update(ctx, dto.UpdateInput{ID: id, StartDate: start, EndDate: end})
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Reset(ctx context.Context) error {
	return h.usecase.Reset(ctx)
}

func (h CLIHandler) List(ctx context.Context, status, sort string) ([]dto.ItemOutput, error) {
	return h.usecase.List(ctx, dto.ListInput{Status: status, Sort: sort})
}

func (h CLIHandler) Get(ctx context.Context, id string) (dto.ItemOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) AddLog(ctx context.Context, id, date string, metrics map[string]float64, memo string) (dto.LogOutput, error) {
	return h.usecase.AddLog(ctx, dto.LogInput{ItemID: id, Date: date, Metrics: metrics, Memo: memo})
}

func (h CLIHandler) Trend(ctx context.Context, id string) (dto.TrendOutput, error) {
	return h.usecase.Trend(ctx, id)
}

func (h CLIHandler) Resources(ctx context.Context) (dto.ResourcesOutput, error) {
	return h.usecase.Resources(ctx)
}

func (h CLIHandler) Promote(ctx context.Context, id string) (dto.PromotionOutput, error) {
	return h.usecase.Promote(ctx, id)
}

func (h CLIHandler) ExportNote(ctx context.Context, id, dir string) (dto.NoteOutput, error) {
	return h.usecase.ExportNote(ctx, dto.NoteInput{ItemID: id, Dir: dir})
}
