package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/padariaops/backend-go/internal/domain"
	"github.com/padariaops/backend-go/internal/forecast"
)

// ForecastReader is the slice of the forecast repository this service needs.
type ForecastReader interface {
	AverageDailyForecast(ctx context.Context, productID int64) (*float64, error)
}

// RecommendationService runs the simple flat-forecast production formula.
// Only Class A products make it into the output; everything else is excluded
// entirely.
type RecommendationService struct {
	products  forecast.ProductLister
	forecasts ForecastReader
}

func NewRecommendationService(products forecast.ProductLister, forecasts ForecastReader) *RecommendationService {
	return &RecommendationService{products: products, forecasts: forecasts}
}

func (s *RecommendationService) Recommend(ctx context.Context, items map[int64]domain.OrderItem) ([]domain.ProductRecommendation, error) {
	products, err := s.products.ListProducts(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	recommendations := make([]domain.ProductRecommendation, 0, len(items))
	for _, product := range products {
		item, ok := items[product.ID]
		if !ok {
			continue
		}

		avg, err := s.forecasts.AverageDailyForecast(ctx, product.ID)
		if err != nil {
			return nil, fmt.Errorf("forecast for product %d: %w", product.ID, err)
		}

		// Missing forecast row degrades to a zero baseline, not an error.
		var flat float64
		if avg != nil {
			flat = *avg
		}

		recommendations = append(recommendations, domain.ProductRecommendation{
			ProductID:           product.ID,
			ProductName:         product.Name,
			Forecast:            flat,
			Stock:               item.Stock,
			Orders:              item.Orders,
			SuggestedProduction: forecast.SimpleProduction(flat, float64(item.Stock), float64(item.Orders)),
		})
	}

	sort.Slice(recommendations, func(i, j int) bool {
		return recommendations[i].ProductID < recommendations[j].ProductID
	})

	return recommendations, nil
}
