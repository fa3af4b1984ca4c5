package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"banditboard/internal/modules/hypothesis/domain"
	hypothesisout "banditboard/internal/modules/hypothesis/port/out"
	"banditboard/internal/platform/clock"
	apperrors "banditboard/internal/platform/errors"
	"banditboard/internal/platform/id"
	"banditboard/internal/platform/logging"
)

// HypothesisService owns the portfolio, newest item first.
type HypothesisService struct {
	clock  clock.Clock
	idGen  id.Generator
	store  hypothesisout.ItemStore
	logger *zap.Logger

	mu     sync.Mutex
	items  []domain.Item
	loaded bool
}

func NewHypothesisService(clock clock.Clock, idGen id.Generator, store hypothesisout.ItemStore, logger *zap.Logger) *HypothesisService {
	return &HypothesisService{clock: clock, idGen: idGen, store: store, logger: logging.OrNop(logger)}
}

func (s *HypothesisService) Add(ctx context.Context, ideaTitle, hypothesis string) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Item{}, err
	}
	item, err := domain.NewItem(s.idGen.New(), ideaTitle, hypothesis, s.clock.Now())
	if err != nil {
		return domain.Item{}, err
	}
	s.items = append([]domain.Item{item}, s.items...)
	s.persist(ctx)
	return item, nil
}

func (s *HypothesisService) Update(ctx context.Context, itemID string, patch domain.Patch) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.index(ctx, itemID)
	if err != nil {
		return domain.Item{}, err
	}
	updated, err := s.items[idx].Apply(patch)
	if err != nil {
		return domain.Item{}, err
	}
	s.items[idx] = updated
	s.persist(ctx)
	return updated, nil
}

func (s *HypothesisService) AddLog(ctx context.Context, itemID, date string, metrics map[string]float64, memo string, isMetric func(string) bool) (domain.DailyLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.index(ctx, itemID)
	if err != nil {
		return domain.DailyLog{}, err
	}
	log, err := s.items[idx].NewLog(s.idGen.New(), date, metrics, memo, s.clock.Now(), isMetric)
	if err != nil {
		return domain.DailyLog{}, err
	}
	s.items[idx].Logs = append(s.items[idx].Logs, log)
	s.persist(ctx)
	return log, nil
}

func (s *HypothesisService) Delete(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.index(ctx, itemID)
	if err != nil {
		return err
	}
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	s.persist(ctx)
	return nil
}

func (s *HypothesisService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.loaded = true
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Error("clear hypotheses", zap.Error(err))
	}
}

func (s *HypothesisService) Get(ctx context.Context, itemID string) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.index(ctx, itemID)
	if err != nil {
		return domain.Item{}, err
	}
	return s.items[idx], nil
}

func (s *HypothesisService) List(ctx context.Context) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Note renders the export document for one item.
func (s *HypothesisService) Note(ctx context.Context, itemID string, metrics []string, trendMetric string) (domain.Item, domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.index(ctx, itemID)
	if err != nil {
		return domain.Item{}, domain.Note{}, err
	}
	item := s.items[idx]
	return item, domain.BuildNote(item, metrics, trendMetric, s.clock.Now()), nil
}

func (s *HypothesisService) index(ctx context.Context, itemID string) (int, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return -1, err
	}
	for i, it := range s.items {
		if it.ID == itemID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("hypothesis %s: %w", itemID, apperrors.ErrNotFound)
}

// ensureLoaded reads the stored board once and migrates legacy statuses.
// A migrated board is written back immediately.
func (s *HypothesisService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	items, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrCorruptData) {
			return err
		}
		s.logger.Warn("stored hypotheses unreadable, starting empty", zap.Error(err))
		items = nil
	}
	migrated := 0
	for i := range items {
		status, changed := domain.MigrateStatus(items[i].Status)
		if changed {
			s.logger.Debug("migrated status", zap.String("id", items[i].ID), zap.String("from", string(items[i].Status)), zap.String("to", string(status)))
			items[i].Status = status
			migrated++
		}
	}
	s.items = items
	s.loaded = true
	if migrated > 0 {
		s.logger.Info("migrated hypothesis statuses", zap.Int("count", migrated))
		s.persist(ctx)
	}
	return nil
}

func (s *HypothesisService) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.items); err != nil {
		s.logger.Error("persist hypotheses", zap.Int("count", len(s.items)), zap.Error(err))
	}
}
