package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"banditboard/internal/modules/confidence/domain"
	confidenceout "banditboard/internal/modules/confidence/port/out"
	"banditboard/internal/platform/clock"
	apperrors "banditboard/internal/platform/errors"
	"banditboard/internal/platform/logging"
)

type ConfidenceService struct {
	clock  clock.Clock
	store  confidenceout.RecordStore
	logger *zap.Logger

	mu      sync.Mutex
	records []domain.Record
	loaded  bool
}

func NewConfidenceService(clock clock.Clock, store confidenceout.RecordStore, logger *zap.Logger) *ConfidenceService {
	return &ConfidenceService{clock: clock, store: store, logger: logging.OrNop(logger)}
}

func (s *ConfidenceService) Sync(ctx context.Context, titles []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return 0, err
	}
	next, created := domain.Sync(s.records, titles, s.clock.Now())
	if created == 0 {
		return 0, nil
	}
	s.records = next
	s.logger.Debug("tracking new ideas", zap.Int("created", created))
	s.persist(ctx)
	return created, nil
}

func (s *ConfidenceService) Update(ctx context.Context, title string, patch domain.Patch) (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Record{}, err
	}
	for i, r := range s.records {
		if r.IdeaTitle != title {
			continue
		}
		updated, err := r.Apply(patch, s.clock.Now())
		if err != nil {
			return domain.Record{}, err
		}
		s.records[i] = updated
		s.persist(ctx)
		return updated, nil
	}
	return domain.Record{}, fmt.Errorf("confidence for %q: %w", title, apperrors.ErrNotFound)
}

func (s *ConfidenceService) List(ctx context.Context) ([]domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *ConfidenceService) Get(ctx context.Context, title string) (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Record{}, err
	}
	for _, r := range s.records {
		if r.IdeaTitle == title {
			return r, nil
		}
	}
	return domain.Record{}, fmt.Errorf("confidence for %q: %w", title, apperrors.ErrNotFound)
}

func (s *ConfidenceService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	records, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrCorruptData) {
			return err
		}
		s.logger.Warn("stored confidence data unreadable, starting empty", zap.Error(err))
		records = nil
	}
	s.records = records
	s.loaded = true
	return nil
}

func (s *ConfidenceService) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.records); err != nil {
		s.logger.Error("persist confidence data", zap.Int("count", len(s.records)), zap.Error(err))
	}
}
