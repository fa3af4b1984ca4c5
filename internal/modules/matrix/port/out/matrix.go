package out

import (
	"context"

	"banditboard/internal/modules/matrix/domain"
)

type IdeaStore interface {
	Load(ctx context.Context) ([]domain.Idea, error)
	Save(ctx context.Context, ideas []domain.Idea) error
	Clear(ctx context.Context) error
}

type BoardStateStore interface {
	LoadFilters(ctx context.Context) (domain.FilterState, error)
	SaveFilters(ctx context.Context, filters domain.FilterState) error
	LoadTitle(ctx context.Context) (string, error)
	SaveTitle(ctx context.Context, title string) error
}
