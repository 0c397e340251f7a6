package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aiqb/preorder-system/internal/core/domain"
	"github.com/aiqb/preorder-system/internal/core/ports"
)

// StockCache abstracts the short-lived stock cache (Redis).
type StockCache interface {
	Get(ctx context.Context) ([]domain.StockLevel, bool, error)
	Set(ctx context.Context, levels []domain.StockLevel) error
}

// StockService serves stock levels for the landing page's availability
// counter, caching remote reads briefly so page loads do not hammer the
// backend. Cache failures degrade to direct remote reads.
type StockService struct {
	remote ports.RemoteData
	cache  StockCache
	logger zerolog.Logger
}

func NewStockService(remote ports.RemoteData, cache StockCache, logger zerolog.Logger) *StockService {
	return &StockService{remote: remote, cache: cache, logger: logger}
}

func (s *StockService) Levels(ctx context.Context) ([]domain.StockLevel, error) {
	if s.cache != nil {
		levels, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("stock cache read failed, falling back to remote")
		} else if ok {
			return levels, nil
		}
	}

	levels, err := s.remote.StockLevels(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, levels); err != nil {
			s.logger.Warn().Err(err).Msg("stock cache write failed")
		}
	}
	return levels, nil
}
