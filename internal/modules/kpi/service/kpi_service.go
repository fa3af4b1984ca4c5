package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"banditboard/internal/modules/kpi/domain"
	kpiout "banditboard/internal/modules/kpi/port/out"
	apperrors "banditboard/internal/platform/errors"
	"banditboard/internal/platform/logging"
)

type KPIService struct {
	store  kpiout.ConfigStore
	logger *zap.Logger

	mu     sync.Mutex
	cfg    domain.Config
	loaded bool
}

func NewKPIService(store kpiout.ConfigStore, logger *zap.Logger) *KPIService {
	return &KPIService{store: store, logger: logging.OrNop(logger)}
}

// Config returns the repaired configuration; a missing or unreadable store
// yields the defaults.
func (s *KPIService) Config(ctx context.Context) (domain.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config(ctx)
}

func (s *KPIService) config(ctx context.Context) (domain.Config, error) {
	if s.loaded {
		return s.cfg, nil
	}
	items, found, err := s.store.Load(ctx)
	switch {
	case err != nil && errors.Is(err, apperrors.ErrCorruptData):
		s.logger.Warn("stored kpi config unreadable, using defaults", zap.Error(err))
		s.cfg = domain.Defaults()
	case err != nil:
		return nil, err
	case !found:
		s.cfg = domain.Defaults()
	default:
		cfg, changed := domain.Repair(items)
		if changed {
			s.logger.Debug("repaired stored kpi config")
		}
		s.cfg = cfg
	}
	s.loaded = true
	return s.cfg, nil
}

func (s *KPIService) Update(ctx context.Context, id domain.MetricID, patch domain.Patch) (domain.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, err := s.config(ctx)
	if err != nil {
		return nil, err
	}
	next, err := cfg.Apply(id, patch)
	if err != nil {
		return nil, err
	}
	s.cfg = next
	s.persist(ctx)
	return next, nil
}

func (s *KPIService) Reset(ctx context.Context) domain.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = domain.Defaults()
	s.loaded = true
	s.persist(ctx)
	return s.cfg
}

func (s *KPIService) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.cfg); err != nil {
		s.logger.Error("persist kpi config", zap.Error(err))
	}
}
