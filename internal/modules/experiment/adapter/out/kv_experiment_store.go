package out

import (
	"context"

	"banditboard/internal/modules/experiment/domain"
	experimentout "banditboard/internal/modules/experiment/port/out"
	"banditboard/internal/platform/kv"
)

type KVExperimentStore struct {
	store kv.Store
}

func NewKVExperimentStore(store kv.Store) experimentout.ExperimentStore {
	return &KVExperimentStore{store: store}
}

func (s *KVExperimentStore) Load(ctx context.Context) ([]domain.Experiment, error) {
	var records []domain.Record
	if _, err := kv.LoadJSON(ctx, s.store, kv.KeyExperiments, &records); err != nil {
		return nil, err
	}
	out := make([]domain.Experiment, 0, len(records))
	for _, r := range records {
		out = append(out, domain.FromRecord(r))
	}
	return out, nil
}

func (s *KVExperimentStore) Save(ctx context.Context, items []domain.Experiment) error {
	records := make([]domain.Record, 0, len(items))
	for _, e := range items {
		records = append(records, domain.ToRecord(e))
	}
	return kv.SaveJSON(ctx, s.store, kv.KeyExperiments, records)
}
