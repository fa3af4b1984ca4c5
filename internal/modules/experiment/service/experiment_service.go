package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"banditboard/internal/modules/experiment/domain"
	experimentout "banditboard/internal/modules/experiment/port/out"
	"banditboard/internal/platform/clock"
	apperrors "banditboard/internal/platform/errors"
	"banditboard/internal/platform/id"
	"banditboard/internal/platform/logging"
)

// ExperimentService keeps the experiment log newest-first.
type ExperimentService struct {
	clock  clock.Clock
	idGen  id.Generator
	store  experimentout.ExperimentStore
	logger *zap.Logger

	mu     sync.Mutex
	items  []domain.Experiment
	loaded bool
}

func NewExperimentService(clock clock.Clock, idGen id.Generator, store experimentout.ExperimentStore, logger *zap.Logger) *ExperimentService {
	return &ExperimentService{clock: clock, idGen: idGen, store: store, logger: logging.OrNop(logger)}
}

func (s *ExperimentService) Add(ctx context.Context, e domain.Experiment) (domain.Experiment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Experiment{}, err
	}
	e.IdeaTitle = strings.TrimSpace(e.IdeaTitle)
	e.TestTitle = strings.TrimSpace(e.TestTitle)
	e.Period = strings.TrimSpace(e.Period)
	e.Memo = strings.TrimSpace(e.Memo)
	if err := e.Validate(); err != nil {
		return domain.Experiment{}, err
	}
	e.ID = s.idGen.New()
	e.CreatedAt = s.clock.Now()
	s.items = append([]domain.Experiment{e}, s.items...)
	s.persist(ctx)
	return e, nil
}

func (s *ExperimentService) Update(ctx context.Context, id string, patch domain.Patch) (domain.Experiment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Experiment{}, err
	}
	for i, e := range s.items {
		if e.ID == id {
			s.items[i] = e.Apply(patch)
			s.persist(ctx)
			return s.items[i], nil
		}
	}
	return domain.Experiment{}, fmt.Errorf("experiment %s: %w", id, apperrors.ErrNotFound)
}

func (s *ExperimentService) Find(ctx context.Context, id string) (domain.Experiment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Experiment{}, err
	}
	for _, e := range s.items {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.Experiment{}, fmt.Errorf("experiment %s: %w", id, apperrors.ErrNotFound)
}

func (s *ExperimentService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	for i, e := range s.items {
		if e.ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return fmt.Errorf("experiment %s: %w", id, apperrors.ErrNotFound)
}

func (s *ExperimentService) List(ctx context.Context) ([]domain.Experiment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Experiment, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *ExperimentService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	items, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrCorruptData) {
			return err
		}
		s.logger.Warn("stored experiments unreadable, starting empty", zap.Error(err))
		items = nil
	}
	s.items = items
	s.loaded = true
	return nil
}

func (s *ExperimentService) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.items); err != nil {
		s.logger.Error("persist experiments", zap.Int("count", len(s.items)), zap.Error(err))
	}
}
