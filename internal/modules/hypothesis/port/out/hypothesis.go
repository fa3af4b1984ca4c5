package out

import (
	"context"

	"banditboard/internal/modules/hypothesis/domain"
)

type ItemStore interface {
	Load(ctx context.Context) ([]domain.Item, error)
	Save(ctx context.Context, items []domain.Item) error
	Clear(ctx context.Context) error
}

type NoteWriter interface {
	// Write creates or refreshes the note for the item under dir and returns
	// its path.
	Write(ctx context.Context, dir string, item domain.Item, note domain.Note) (string, error)
}
