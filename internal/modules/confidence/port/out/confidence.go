package out

import (
	"context"

	"banditboard/internal/modules/confidence/domain"
)

type RecordStore interface {
	Load(ctx context.Context) ([]domain.Record, error)
	Save(ctx context.Context, records []domain.Record) error
}
