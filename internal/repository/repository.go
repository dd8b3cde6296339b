package repository

import (
	"context"
	"errors"
	"time"

	"github.com/padariaops/backend-go/internal/domain"
)

// ErrDuplicateInsight is returned when inserting a daily insight for a
// (store, date) pair that another request already cached. Callers should
// re-read instead of failing.
var ErrDuplicateInsight = errors.New("daily insight already cached for this date")

type ProductRepository interface {
	ListProducts(ctx context.Context, onlyClassA bool) ([]domain.Product, error)
}

// HistoryRepository serves the engine's historical aggregates and the
// order-submission write. Aggregate reads are bounded by date-range filters
// so query cost tracks the window size, not total history.
type HistoryRepository interface {
	SalesHistoryTotal(ctx context.Context, productID int64, yearFrom int) (domain.SalesTotal, error)
	EarliestOrderDate(ctx context.Context, storeID int64) (*time.Time, error)
	OrderHistoryAverage(ctx context.Context, productID, storeID int64, since time.Time) (domain.OrderStats, error)
	OrderHistoryByWeekday(ctx context.Context, productID, storeID int64, since time.Time) (map[time.Weekday]float64, error)
	InsertDailyOrders(ctx context.Context, records []domain.DailyOrderRecord) error
}

type ForecastRepository interface {
	// AverageDailyForecast returns nil when the product has no forecast row.
	AverageDailyForecast(ctx context.Context, productID int64) (*float64, error)
	UpsertForecasts(ctx context.Context, rows []domain.ForecastRow) error
}

type InsightRepository interface {
	// GetByDate returns nil when no insight is cached for the date.
	GetByDate(ctx context.Context, storeID int64, date time.Time) (*domain.DailyInsight, error)
	// Insert returns ErrDuplicateInsight when the unique date column rejects
	// the row.
	Insert(ctx context.Context, insight *domain.DailyInsight) error
}
