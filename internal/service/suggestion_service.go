package service

import (
	"context"
	"time"

	"github.com/padariaops/backend-go/internal/cache"
	"github.com/padariaops/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
)

// SuggestionSource is the engine surface the service depends on.
type SuggestionSource interface {
	CalculateSuggestions(ctx context.Context, storeID int64, currentStock map[int64]int, asOf time.Time) ([]domain.ProductSuggestion, error)
}

// SuggestionService fronts the forecast engine with an optional cache. Cache
// failures only downgrade to a direct computation.
type SuggestionService struct {
	engine SuggestionSource
	cache  cache.SuggestionCache
}

func NewSuggestionService(engine SuggestionSource, cacheImpl cache.SuggestionCache) *SuggestionService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSuggestionCache()
	}
	return &SuggestionService{engine: engine, cache: cacheImpl}
}

func (s *SuggestionService) CalculateSuggestions(ctx context.Context, storeID int64, currentStock map[int64]int, asOf time.Time) ([]domain.ProductSuggestion, error) {
	if suggestions, ok, err := s.cache.Get(ctx, storeID, asOf, currentStock); err == nil && ok {
		return suggestions, nil
	} else if err != nil {
		log.Warn().Err(err).Int64("store_id", storeID).Msg("suggestions: cache get failed")
	}

	suggestions, err := s.engine.CalculateSuggestions(ctx, storeID, currentStock, asOf)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, storeID, asOf, currentStock, suggestions); err != nil {
		log.Warn().Err(err).Int64("store_id", storeID).Msg("suggestions: cache set failed")
	}

	return suggestions, nil
}
