package forecast

import (
	"time"

	"github.com/padariaops/backend-go/internal/config"
	"github.com/padariaops/backend-go/internal/domain"
)

// SelectTier maps a store's days of order history to an estimation tier.
// Pure function: same input, same tier, regardless of product.
func SelectTier(daysOfHistory int, cfg config.ForecastConfig) domain.Tier {
	switch {
	case daysOfHistory < cfg.IntermediateMinDays:
		return domain.TierStock
	case daysOfHistory < cfg.AdvancedMinDays:
		return domain.TierIntermediate
	default:
		return domain.TierAdvanced
	}
}

// DaysOfHistory converts the store's earliest order date into whole days of
// history as of the given date. A store with no order rows has zero days,
// which forces the stock tier for every product in it. Never negative.
func DaysOfHistory(earliest *time.Time, asOf time.Time) int {
	if earliest == nil {
		return 0
	}

	days := int(asOf.Sub(*earliest).Hours() / 24)
	if days < 0 {
		return 0
	}

	return days
}
