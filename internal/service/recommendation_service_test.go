package service

import (
	"context"
	"testing"

	"github.com/padariaops/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductLister struct {
	products []domain.Product
}

func (f *fakeProductLister) ListProducts(ctx context.Context, onlyClassA bool) ([]domain.Product, error) {
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

type fakeForecastReader struct {
	forecasts map[int64]float64
}

func (f *fakeForecastReader) AverageDailyForecast(ctx context.Context, productID int64) (*float64, error) {
	value, ok := f.forecasts[productID]
	if !ok {
		return nil, nil
	}
	return &value, nil
}

func TestRecommend(t *testing.T) {
	products := &fakeProductLister{products: []domain.Product{
		{ID: 1, Name: "Pão Francês", IsClassA: true, Orderable: true},
		{ID: 2, Name: "Sonho", IsClassA: true, Orderable: true},
		{ID: 5, Name: "Item Vitrine", IsClassA: false, Orderable: false},
	}}
	forecasts := &fakeForecastReader{forecasts: map[int64]float64{1: 100}}
	svc := NewRecommendationService(products, forecasts)

	items := map[int64]domain.OrderItem{
		1: {Stock: 20, Orders: 50},
		2: {Stock: 5, Orders: 0},
		5: {Stock: 1, Orders: 1}, // not Class A: excluded entirely
		9: {Stock: 2, Orders: 2}, // unknown product: excluded
	}

	recommendations, err := svc.Recommend(context.Background(), items)
	require.NoError(t, err)
	require.Len(t, recommendations, 2)

	assert.Equal(t, int64(1), recommendations[0].ProductID)
	assert.Equal(t, 130, recommendations[0].SuggestedProduction, "100 - 20 + 50")
	assert.Equal(t, 100.0, recommendations[0].Forecast)

	// No forecast row degrades to a zero baseline and the floor keeps the
	// result non-negative.
	assert.Equal(t, int64(2), recommendations[1].ProductID)
	assert.Equal(t, 0, recommendations[1].SuggestedProduction)
}

func TestRecommendOrdersAboveForecast(t *testing.T) {
	products := &fakeProductLister{products: []domain.Product{
		{ID: 1, Name: "Pão Francês", IsClassA: true, Orderable: true},
	}}
	forecasts := &fakeForecastReader{forecasts: map[int64]float64{1: 100}}
	svc := NewRecommendationService(products, forecasts)

	recommendations, err := svc.Recommend(context.Background(), map[int64]domain.OrderItem{
		1: {Stock: 20, Orders: 150},
	})
	require.NoError(t, err)
	require.Len(t, recommendations, 1)
	assert.Equal(t, 230, recommendations[0].SuggestedProduction, "150 + 100 - 20")
}
