package forecast

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/padariaops/backend-go/internal/config"
	"github.com/padariaops/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducts struct {
	products []domain.Product
	err      error
}

func (f *fakeProducts) ListProducts(ctx context.Context, onlyClassA bool) ([]domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}

	if !onlyClassA {
		return f.products, nil
	}

	classA := make([]domain.Product, 0, len(f.products))
	for _, product := range f.products {
		if product.IsClassA {
			classA = append(classA, product)
		}
	}
	return classA, nil
}

type fakeHistory struct {
	earliest   *time.Time
	sales      map[int64]domain.SalesTotal
	orders     map[int64]domain.OrderStats
	perWeekday map[int64]map[time.Weekday]float64
	err        error
}

func (f *fakeHistory) SalesHistoryTotal(ctx context.Context, productID int64, yearFrom int) (domain.SalesTotal, error) {
	if f.err != nil {
		return domain.SalesTotal{}, f.err
	}
	return f.sales[productID], nil
}

func (f *fakeHistory) EarliestOrderDate(ctx context.Context, storeID int64) (*time.Time, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.earliest, nil
}

func (f *fakeHistory) OrderHistoryAverage(ctx context.Context, productID, storeID int64, since time.Time) (domain.OrderStats, error) {
	if f.err != nil {
		return domain.OrderStats{}, f.err
	}
	return f.orders[productID], nil
}

func (f *fakeHistory) OrderHistoryByWeekday(ctx context.Context, productID, storeID int64, since time.Time) (map[time.Weekday]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.perWeekday[productID], nil
}

func catalog() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Pão Francês", IsClassA: true, Orderable: true},
		{ID: 2, Name: "Bolo de Fubá", IsClassA: true, Orderable: true},
		{ID: 3, Name: "Torta Vitrine", IsClassA: true, Orderable: false},
		{ID: 4, Name: "Decoração", IsClassA: false, Orderable: true},
	}
}

func TestEngineColdStartStore(t *testing.T) {
	history := &fakeHistory{
		// No order rows at all: the whole store is on the stock tier.
		sales: map[int64]domain.SalesTotal{
			1: {TotalUnits: 1200, MonthsCovered: 2}, // 20/day
			3: {TotalUnits: 900, MonthsCovered: 3},
		},
	}
	engine := NewEngine(&fakeProducts{products: catalog()}, history, config.DefaultForecast())

	asOf := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	suggestions, err := engine.CalculateSuggestions(context.Background(), 7, map[int64]int{1: 3}, asOf)
	require.NoError(t, err)

	// Product 2 has no sales history (omitted, not zeroed), product 3 is not
	// orderable, product 4 is not Class A.
	require.Len(t, suggestions, 1)
	got := suggestions[0]
	assert.Equal(t, int64(1), got.ProductID)
	assert.Equal(t, "Pão Francês", got.ProductName)
	assert.Equal(t, 20, got.Suggestion, "raw 23 minus 3 in stock")
	assert.Equal(t, domain.TierStock, got.Tier)
	assert.Equal(t, "Histórico vendas", got.ConfidenceLabel)
	assert.Equal(t, 0, got.DaysOfHistory)
}

func TestEngineIntermediateStore(t *testing.T) {
	asOf := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC) // Tuesday
	earliest := asOf.AddDate(0, 0, -40)

	history := &fakeHistory{
		earliest: &earliest,
		orders: map[int64]domain.OrderStats{
			1: {AvgQuantity: 40, RecordCount: 15},
			2: {AvgQuantity: 30, RecordCount: 4},
		},
		sales: map[int64]domain.SalesTotal{
			2: {TotalUnits: 600, MonthsCovered: 2}, // 10/day
		},
		perWeekday: map[int64]map[time.Weekday]float64{
			1: {time.Tuesday: 30, time.Thursday: 20}, // factor 1.2 on Tuesday
		},
	}
	engine := NewEngine(&fakeProducts{products: catalog()}, history, config.DefaultForecast())

	suggestions, err := engine.CalculateSuggestions(context.Background(), 7, nil, asOf)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	// Catalog order is preserved despite the concurrent fan-out.
	assert.Equal(t, int64(1), suggestions[0].ProductID)
	assert.Equal(t, 48, suggestions[0].Suggestion, "40 x 1.2")
	assert.Equal(t, domain.TierIntermediate, suggestions[0].Tier)
	assert.Equal(t, "40 dias", suggestions[0].ConfidenceLabel)
	assert.Equal(t, 40, suggestions[0].DaysOfHistory)

	assert.Equal(t, int64(2), suggestions[1].ProductID)
	assert.Equal(t, 22, suggestions[1].Suggestion, "30x0.6 + 10x0.4")
	assert.Equal(t, "Vendas + 40d", suggestions[1].ConfidenceLabel)
}

func TestEngineAdvancedStore(t *testing.T) {
	asOf := time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC) // day 20: quinzena
	earliest := asOf.AddDate(0, 0, -120)

	history := &fakeHistory{
		earliest: &earliest,
		orders: map[int64]domain.OrderStats{
			1: {AvgQuantity: 50, RecordCount: 25},
		},
	}
	engine := NewEngine(&fakeProducts{products: catalog()}, history, config.DefaultForecast())

	suggestions, err := engine.CalculateSuggestions(context.Background(), 7, nil, asOf)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	assert.Equal(t, 45, suggestions[0].Suggestion, "50 x 0.9 quinzena")
	assert.Equal(t, domain.TierAdvanced, suggestions[0].Tier)
	assert.Equal(t, "Avançado", suggestions[0].ConfidenceLabel)
	assert.Equal(t, 120, suggestions[0].DaysOfHistory)

	// Product 2 has no signal at all in the advanced tier: flat fallback 20,
	// dampened to 18 by the quinzena factor.
	assert.Equal(t, int64(2), suggestions[1].ProductID)
	assert.Equal(t, 18, suggestions[1].Suggestion)
}

func TestEngineNonNegativeSuggestions(t *testing.T) {
	asOf := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	history := &fakeHistory{
		sales: map[int64]domain.SalesTotal{
			1: {TotalUnits: 1200, MonthsCovered: 2},
		},
	}
	engine := NewEngine(&fakeProducts{products: catalog()}, history, config.DefaultForecast())

	// Stock far above demand: reconciliation floors at zero.
	suggestions, err := engine.CalculateSuggestions(context.Background(), 7, map[int64]int{1: 999}, asOf)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, 0, suggestions[0].Suggestion)
}

func TestEnginePropagatesStorageFailure(t *testing.T) {
	boom := errors.New("connection refused")
	engine := NewEngine(&fakeProducts{products: catalog()}, &fakeHistory{err: boom}, config.DefaultForecast())

	_, err := engine.CalculateSuggestions(context.Background(), 7, nil, time.Now())
	assert.ErrorIs(t, err, boom)
}
