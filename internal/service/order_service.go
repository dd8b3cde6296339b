package service

import (
	"context"
	"fmt"
	"time"

	"github.com/padariaops/backend-go/internal/cache"
	"github.com/padariaops/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
)

// HistoryWriter is the write surface of the history repository.
type HistoryWriter interface {
	InsertDailyOrders(ctx context.Context, records []domain.DailyOrderRecord) error
}

// OrderService records the quantities a store manager actually ordered. These
// rows are what grow a store's order history and move it up the confidence
// tiers over time.
type OrderService struct {
	history HistoryWriter
	cache   cache.SuggestionCache
}

func NewOrderService(history HistoryWriter, cacheImpl cache.SuggestionCache) *OrderService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSuggestionCache()
	}
	return &OrderService{history: history, cache: cacheImpl}
}

// SubmitOrders persists one daily-order row per product. Orders carries the
// quantity ordered and Stock the on-hand count at submission time. Cached
// suggestions for the store are invalidated; a failed invalidation is logged
// and swallowed since the entries expire on their own.
func (s *OrderService) SubmitOrders(ctx context.Context, storeID int64, items map[int64]domain.OrderItem, asOf time.Time) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	records := make([]domain.DailyOrderRecord, 0, len(items))
	for productID, item := range items {
		records = append(records, domain.DailyOrderRecord{
			ProductID:   productID,
			StoreID:     storeID,
			OrderDate:   asOf,
			Quantity:    item.Orders,
			StockAtTime: item.Stock,
			DayOfWeek:   int(asOf.Weekday()),
		})
	}

	if err := s.history.InsertDailyOrders(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to record daily orders: %w", err)
	}

	if err := s.cache.InvalidateStore(ctx, storeID); err != nil {
		log.Warn().Err(err).Int64("store_id", storeID).Msg("orders: cache invalidation failed")
	}

	return len(records), nil
}
