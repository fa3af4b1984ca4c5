package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"banditboard/internal/modules/hypothesis/domain"
	hypothesisout "banditboard/internal/modules/hypothesis/port/out"
	apperrors "banditboard/internal/platform/errors"
	"banditboard/internal/platform/kv"
)

type KVItemStore struct {
	store kv.Store
}

func NewKVItemStore(store kv.Store) hypothesisout.ItemStore {
	return &KVItemStore{store: store}
}

// Load accepts the versioned document and the bare array older builds wrote.
func (s *KVItemStore) Load(ctx context.Context) ([]domain.Item, error) {
	raw, ok, err := s.store.Get(ctx, kv.KeyHypotheses)
	if err != nil || !ok {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	var records []domain.ItemRecord
	if len(raw) > 0 && raw[0] == '[' {
		err = json.Unmarshal(raw, &records)
	} else {
		var doc domain.Document
		err = json.Unmarshal(raw, &doc)
		records = doc.Items
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", apperrors.ErrCorruptData, kv.KeyHypotheses, err)
	}
	out := make([]domain.Item, 0, len(records))
	for _, r := range records {
		out = append(out, domain.FromRecord(r))
	}
	return out, nil
}

func (s *KVItemStore) Save(ctx context.Context, items []domain.Item) error {
	doc := domain.Document{Version: domain.DocumentVersion, Items: make([]domain.ItemRecord, 0, len(items))}
	for _, it := range items {
		doc.Items = append(doc.Items, domain.ToRecord(it))
	}
	return kv.SaveJSON(ctx, s.store, kv.KeyHypotheses, doc)
}

func (s *KVItemStore) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, kv.KeyHypotheses)
}
