package out

import (
	"context"

	"banditboard/internal/modules/experiment/domain"
)

type ExperimentStore interface {
	Load(ctx context.Context) ([]domain.Experiment, error)
	Save(ctx context.Context, items []domain.Experiment) error
}

type SheetWriter interface {
	Write(ctx context.Context, path string, sheet domain.Sheet) error
}
