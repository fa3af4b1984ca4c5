package out

import (
	"context"

	"banditboard/internal/modules/confidence/domain"
	confidenceout "banditboard/internal/modules/confidence/port/out"
	"banditboard/internal/platform/kv"
)

type KVRecordStore struct {
	store kv.Store
}

func NewKVRecordStore(store kv.Store) confidenceout.RecordStore {
	return &KVRecordStore{store: store}
}

func (s *KVRecordStore) Load(ctx context.Context) ([]domain.Record, error) {
	var raw []domain.RecordJSON
	if _, err := kv.LoadJSON(ctx, s.store, kv.KeyConfidence, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Record, 0, len(raw))
	for _, r := range raw {
		out = append(out, domain.FromJSON(r))
	}
	return out, nil
}

func (s *KVRecordStore) Save(ctx context.Context, records []domain.Record) error {
	raw := make([]domain.RecordJSON, 0, len(records))
	for _, r := range records {
		raw = append(raw, domain.ToJSON(r))
	}
	return kv.SaveJSON(ctx, s.store, kv.KeyConfidence, raw)
}
