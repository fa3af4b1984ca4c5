package in

import (
	"context"

	"banditboard/internal/modules/kpi/dto"
)

type Usecase interface {
	Config(ctx context.Context) (dto.ConfigOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.ConfigOutput, error)
	Reset(ctx context.Context) (dto.ConfigOutput, error)
	// NumeratorKey is the metric id trends are computed on.
	NumeratorKey(ctx context.Context) (string, error)
	// IsMetric reports whether id names a configured metric slot.
	IsMetric(ctx context.Context, id string) (bool, error)
}
