// Package kv is the local persistence adapter: named JSON blobs behind a
// get/set interface, the way the original board kept them in browser storage.
package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	apperrors "banditboard/internal/platform/errors"
)

// Stable storage keys. Renaming any of these orphans existing data.
const (
	KeyIdeas       = "ideaMatrix:v1:items"
	KeyFilters     = "ideaMatrix:v1:filters"
	KeyTitle       = "ideaMatrix:v1:title"
	KeyHypotheses  = "hypothesisPracticeBoard:v1"
	KeyExperiments = "hypothesisAnalysisBoard:v1:experiments"
	KeyConfidence  = "hypothesisAnalysisBoard:v1:confidence"
	KeyKPIConfig   = "hypothesisAnalysisBoard:v1:kpiConfig"
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// LoadJSON decodes the value under key into out. found is false when the key
// is absent; a decode failure is returned as an error and out is left untouched.
func LoadJSON(ctx context.Context, store Store, key string, out any) (bool, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok || len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("%w: decode %s: %v", apperrors.ErrCorruptData, key, err)
	}
	return true, nil
}

func SaveJSON(ctx context.Context, store Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Set(ctx, key, raw)
}

// MemoryStore keeps blobs in a map. Used by tests and dry runs.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
	// FailWrites makes every Set/Delete fail, to exercise quota-style errors.
	FailWrites error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	delete(m.data, key)
	return nil
}
