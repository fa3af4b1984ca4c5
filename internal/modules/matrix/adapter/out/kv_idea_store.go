package out

import (
	"context"
	"encoding/json"
	"strings"

	"banditboard/internal/modules/matrix/domain"
	matrixout "banditboard/internal/modules/matrix/port/out"
	"banditboard/internal/platform/kv"
)

type KVIdeaStore struct {
	store kv.Store
}

func NewKVIdeaStore(store kv.Store) matrixout.IdeaStore {
	return &KVIdeaStore{store: store}
}

func (s *KVIdeaStore) Load(ctx context.Context) ([]domain.Idea, error) {
	var records []domain.IdeaRecord
	if _, err := kv.LoadJSON(ctx, s.store, kv.KeyIdeas, &records); err != nil {
		return nil, err
	}
	out := make([]domain.Idea, 0, len(records))
	for _, r := range records {
		out = append(out, domain.FromRecord(r))
	}
	return out, nil
}

func (s *KVIdeaStore) Save(ctx context.Context, ideas []domain.Idea) error {
	records := make([]domain.IdeaRecord, 0, len(ideas))
	for _, idea := range ideas {
		records = append(records, domain.ToRecord(idea))
	}
	return kv.SaveJSON(ctx, s.store, kv.KeyIdeas, records)
}

func (s *KVIdeaStore) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, kv.KeyIdeas)
}

type KVBoardStateStore struct {
	store kv.Store
}

func NewKVBoardStateStore(store kv.Store) matrixout.BoardStateStore {
	return &KVBoardStateStore{store: store}
}

func (s *KVBoardStateStore) LoadFilters(ctx context.Context) (domain.FilterState, error) {
	filters := domain.DefaultFilters()
	if _, err := kv.LoadJSON(ctx, s.store, kv.KeyFilters, &filters); err != nil {
		return domain.DefaultFilters(), err
	}
	return filters, nil
}

func (s *KVBoardStateStore) SaveFilters(ctx context.Context, filters domain.FilterState) error {
	return kv.SaveJSON(ctx, s.store, kv.KeyFilters, filters)
}

// LoadTitle accepts both a JSON string and the raw text older versions wrote.
func (s *KVBoardStateStore) LoadTitle(ctx context.Context) (string, error) {
	raw, ok, err := s.store.Get(ctx, kv.KeyTitle)
	if err != nil || !ok {
		return "", err
	}
	var title string
	if err := json.Unmarshal(raw, &title); err == nil {
		return title, nil
	}
	return strings.TrimRight(string(raw), "\n"), nil
}

func (s *KVBoardStateStore) SaveTitle(ctx context.Context, title string) error {
	return kv.SaveJSON(ctx, s.store, kv.KeyTitle, title)
}
