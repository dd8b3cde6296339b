package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/padariaops/backend-go/internal/config"
	"github.com/padariaops/backend-go/internal/domain"
	"github.com/padariaops/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	insightSourceEngine   = "engine"
	insightSourceFallback = "fallback"

	// How many products the insight text names.
	insightTopProducts = 3
)

// InsightService produces the once-per-day text summary for a store. The
// result is cached in the database keyed by a unique (store, date) pair; a
// duplicate-key failure on insert means another request got there first and
// the service re-reads instead of erroring.
type InsightService struct {
	repo   repository.InsightRepository
	engine SuggestionSource
	cfg    config.ForecastConfig
}

func NewInsightService(repo repository.InsightRepository, engine SuggestionSource, cfg config.ForecastConfig) *InsightService {
	return &InsightService{repo: repo, engine: engine, cfg: cfg}
}

func (s *InsightService) DailyInsight(ctx context.Context, storeID int64, asOf time.Time) (*domain.DailyInsight, error) {
	date := asOf.Truncate(24 * time.Hour)

	cached, err := s.repo.GetByDate(ctx, storeID, date)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	text, source := s.generate(ctx, storeID, asOf)

	insight := &domain.DailyInsight{
		StoreID:     storeID,
		InsightDate: date,
		Text:        text,
		Source:      source,
	}

	if err := s.repo.Insert(ctx, insight); err != nil {
		if errors.Is(err, repository.ErrDuplicateInsight) {
			log.Debug().Int64("store_id", storeID).Msg("insight: lost insert race, re-reading")
			return s.repo.GetByDate(ctx, storeID, date)
		}
		return nil, err
	}

	return insight, nil
}

func (s *InsightService) generate(ctx context.Context, storeID int64, asOf time.Time) (string, string) {
	suggestions, err := s.engine.CalculateSuggestions(ctx, storeID, nil, asOf)
	if err != nil {
		log.Warn().Err(err).Int64("store_id", storeID).Msg("insight: engine run failed, using fallback text")
		return s.fallbackText(asOf), insightSourceFallback
	}
	if len(suggestions) == 0 {
		return s.fallbackText(asOf), insightSourceFallback
	}

	top := make([]domain.ProductSuggestion, len(suggestions))
	copy(top, suggestions)
	sort.Slice(top, func(i, j int) bool { return top[i].Suggestion > top[j].Suggestion })
	if len(top) > insightTopProducts {
		top = top[:insightTopProducts]
	}

	parts := make([]string, 0, len(top))
	for _, suggestion := range top {
		parts = append(parts, fmt.Sprintf("%d un de %s", suggestion.Suggestion, suggestion.ProductName))
	}

	return fmt.Sprintf("Produção sugerida para hoje: %s.", strings.Join(parts, ", ")), insightSourceEngine
}

// fallbackText is used when the store has no usable history at all. It only
// tells the manager which seasonal adjustment applies to the day.
func (s *InsightService) fallbackText(asOf time.Time) string {
	factor := 1.0

	switch asOf.Weekday() {
	case time.Saturday, time.Sunday:
		factor *= s.cfg.InsightWeekendBoost
	case time.Monday:
		factor *= s.cfg.InsightMondayDip
	}

	if asOf.Day() > 15 {
		factor *= s.cfg.InsightQuinzenaDip
	}

	return fmt.Sprintf(
		"Sem histórico suficiente para sugestões hoje. Ajuste sazonal recomendado sobre a produção habitual: %d%%.",
		int(math.Round(factor*100)))
}
