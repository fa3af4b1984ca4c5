package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"banditboard/internal/modules/matrix/domain"
	matrixout "banditboard/internal/modules/matrix/port/out"
	"banditboard/internal/platform/clock"
	apperrors "banditboard/internal/platform/errors"
	"banditboard/internal/platform/id"
	"banditboard/internal/platform/logging"
)

// MatrixService owns the idea collection, the zone filter and the board title.
// The in-memory copy is authoritative once loaded; failed writes are logged
// and do not roll it back.
type MatrixService struct {
	clock  clock.Clock
	idGen  id.Generator
	ideas  matrixout.IdeaStore
	state  matrixout.BoardStateStore
	logger *zap.Logger

	mu     sync.Mutex
	items  []domain.Idea
	loaded bool
}

func NewMatrixService(clock clock.Clock, idGen id.Generator, ideas matrixout.IdeaStore, state matrixout.BoardStateStore, logger *zap.Logger) *MatrixService {
	return &MatrixService{clock: clock, idGen: idGen, ideas: ideas, state: state, logger: logging.OrNop(logger)}
}

func (s *MatrixService) Ideas(ctx context.Context) ([]domain.Idea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Idea, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MatrixService) AddIdea(ctx context.Context, title, memo string, impact, cost int) (domain.Idea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Idea{}, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Idea{}, fmt.Errorf("%w: title is required", apperrors.ErrInvalidInput)
	}
	metrics, err := domain.Classify(impact, cost)
	if err != nil {
		return domain.Idea{}, err
	}
	idea := domain.Idea{
		ID:        s.idGen.New(),
		Title:     title,
		Memo:      strings.TrimSpace(memo),
		Impact:    impact,
		Cost:      cost,
		Score:     metrics.Score,
		Zone:      metrics.Zone,
		CreatedAt: s.clock.Now(),
	}
	s.items = append(s.items, idea)
	s.persist(ctx)
	return idea, nil
}

func (s *MatrixService) DeleteIdea(ctx context.Context, ideaID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	for i, idea := range s.items {
		if idea.ID == ideaID {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return fmt.Errorf("idea %s: %w", ideaID, apperrors.ErrNotFound)
}

func (s *MatrixService) ClearIdeas(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.loaded = true
	if err := s.ideas.Clear(ctx); err != nil {
		s.logger.Error("clear ideas", zap.Error(err))
	}
	return nil
}

// ReplaceIdeas swaps the whole collection. Each idea is validated and its
// derived fields repaired; the first invalid idea aborts without mutation.
func (s *MatrixService) ReplaceIdeas(ctx context.Context, ideas []domain.Idea) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]domain.Idea, 0, len(ideas))
	repaired := 0
	for _, idea := range ideas {
		if err := idea.Validate(); err != nil {
			return 0, fmt.Errorf("%w: idea %q: %v", apperrors.ErrInvalidImport, idea.Title, err)
		}
		fixed, changed, err := idea.Repair()
		if err != nil {
			return 0, fmt.Errorf("%w: idea %q: %v", apperrors.ErrInvalidImport, idea.Title, err)
		}
		if changed {
			repaired++
		}
		next = append(next, fixed)
	}
	s.items = next
	s.loaded = true
	s.persist(ctx)
	return repaired, nil
}

func (s *MatrixService) Filters(ctx context.Context) domain.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadFilters(ctx)
}

func (s *MatrixService) loadFilters(ctx context.Context) domain.FilterState {
	filters, err := s.state.LoadFilters(ctx)
	if err != nil {
		s.logger.Warn("load filters, using defaults", zap.Error(err))
		return domain.DefaultFilters()
	}
	return filters
}

func (s *MatrixService) ToggleFilter(ctx context.Context, zone domain.Zone) (domain.FilterState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.loadFilters(ctx).Toggle(zone)
	if err != nil {
		return domain.FilterState{}, err
	}
	if err := s.state.SaveFilters(ctx, next); err != nil {
		s.logger.Error("persist filters", zap.Error(err))
	}
	return next, nil
}

func (s *MatrixService) Title(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	title, err := s.state.LoadTitle(ctx)
	if err != nil {
		s.logger.Warn("load title", zap.Error(err))
		return ""
	}
	return title
}

func (s *MatrixService) SetTitle(ctx context.Context, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.SaveTitle(ctx, title); err != nil {
		s.logger.Error("persist title", zap.Error(err))
	}
}

func (s *MatrixService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	ideas, err := s.ideas.Load(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrCorruptData) {
			return err
		}
		s.logger.Warn("stored ideas unreadable, starting empty", zap.Error(err))
		ideas = nil
	}
	items := make([]domain.Idea, 0, len(ideas))
	for _, idea := range ideas {
		fixed, changed, err := idea.Repair()
		if err != nil {
			s.logger.Warn("dropping unrepairable idea", zap.String("id", idea.ID), zap.Error(err))
			continue
		}
		if changed {
			s.logger.Debug("reclassified idea", zap.String("id", idea.ID), zap.String("zone", string(fixed.Zone)))
		}
		items = append(items, fixed)
	}
	s.items = items
	s.loaded = true
	return nil
}

func (s *MatrixService) persist(ctx context.Context) {
	if err := s.ideas.Save(ctx, s.items); err != nil {
		s.logger.Error("persist ideas", zap.Int("count", len(s.items)), zap.Error(err))
	}
}
