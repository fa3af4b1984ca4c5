package out

import (
	"context"

	"banditboard/internal/modules/kpi/domain"
)

type ConfigStore interface {
	// Load returns found=false when nothing has been stored yet.
	Load(ctx context.Context) (items []domain.Item, found bool, err error)
	Save(ctx context.Context, cfg domain.Config) error
}
