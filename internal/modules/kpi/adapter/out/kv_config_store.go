package out

import (
	"context"

	"banditboard/internal/modules/kpi/domain"
	kpiout "banditboard/internal/modules/kpi/port/out"
	"banditboard/internal/platform/kv"
)

type KVConfigStore struct {
	store kv.Store
}

func NewKVConfigStore(store kv.Store) kpiout.ConfigStore {
	return &KVConfigStore{store: store}
}

func (s *KVConfigStore) Load(ctx context.Context) ([]domain.Item, bool, error) {
	var items []domain.Item
	found, err := kv.LoadJSON(ctx, s.store, kv.KeyKPIConfig, &items)
	if err != nil {
		return nil, false, err
	}
	return items, found, nil
}

func (s *KVConfigStore) Save(ctx context.Context, cfg domain.Config) error {
	return kv.SaveJSON(ctx, s.store, kv.KeyKPIConfig, cfg)
}
