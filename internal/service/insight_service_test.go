package service

import (
	"context"
	"testing"
	"time"

	"github.com/padariaops/backend-go/internal/config"
	"github.com/padariaops/backend-go/internal/domain"
	"github.com/padariaops/backend-go/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInsightRepo struct {
	stored    *domain.DailyInsight
	insertErr error
	inserts   int
}

func (f *fakeInsightRepo) GetByDate(ctx context.Context, storeID int64, date time.Time) (*domain.DailyInsight, error) {
	return f.stored, nil
}

func (f *fakeInsightRepo) Insert(ctx context.Context, insight *domain.DailyInsight) error {
	f.inserts++
	if f.insertErr != nil {
		// Mimic the loser of the insert race: the row now exists.
		f.stored = &domain.DailyInsight{StoreID: insight.StoreID, InsightDate: insight.InsightDate, Text: "cached by another request", Source: insightSourceEngine}
		return f.insertErr
	}
	f.stored = insight
	return nil
}

type fakeEngine struct {
	suggestions []domain.ProductSuggestion
	err         error
	calls       int
}

func (f *fakeEngine) CalculateSuggestions(ctx context.Context, storeID int64, currentStock map[int64]int, asOf time.Time) ([]domain.ProductSuggestion, error) {
	f.calls++
	return f.suggestions, f.err
}

func TestDailyInsightUsesCachedRow(t *testing.T) {
	cached := &domain.DailyInsight{StoreID: 7, Text: "already here"}
	repo := &fakeInsightRepo{stored: cached}
	engine := &fakeEngine{}
	svc := NewInsightService(repo, engine, config.DefaultForecast())

	insight, err := svc.DailyInsight(context.Background(), 7, time.Now())
	require.NoError(t, err)
	assert.Same(t, cached, insight)
	assert.Zero(t, engine.calls, "cached day must not rerun the engine")
}

func TestDailyInsightNamesTopProducts(t *testing.T) {
	repo := &fakeInsightRepo{}
	engine := &fakeEngine{suggestions: []domain.ProductSuggestion{
		{ProductID: 1, ProductName: "Pão Francês", Suggestion: 30},
		{ProductID: 2, ProductName: "Bolo de Fubá", Suggestion: 50},
		{ProductID: 3, ProductName: "Sonho", Suggestion: 10},
		{ProductID: 4, ProductName: "Broa", Suggestion: 5},
	}}
	svc := NewInsightService(repo, engine, config.DefaultForecast())

	insight, err := svc.DailyInsight(context.Background(), 7, time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, insightSourceEngine, insight.Source)
	assert.Contains(t, insight.Text, "50 un de Bolo de Fubá")
	assert.Contains(t, insight.Text, "30 un de Pão Francês")
	assert.Contains(t, insight.Text, "10 un de Sonho")
	assert.NotContains(t, insight.Text, "Broa", "only the top three are named")
	assert.Equal(t, 1, repo.inserts)
}

func TestDailyInsightLosesInsertRace(t *testing.T) {
	repo := &fakeInsightRepo{insertErr: repository.ErrDuplicateInsight}
	engine := &fakeEngine{suggestions: []domain.ProductSuggestion{
		{ProductID: 1, ProductName: "Pão Francês", Suggestion: 30},
	}}
	svc := NewInsightService(repo, engine, config.DefaultForecast())

	insight, err := svc.DailyInsight(context.Background(), 7, time.Now())
	require.NoError(t, err, "losing the race is not an error")
	assert.Equal(t, "cached by another request", insight.Text)
}

func TestDailyInsightFallbackText(t *testing.T) {
	cfg := config.DefaultForecast()

	t.Run("weekend in the second half of the month", func(t *testing.T) {
		repo := &fakeInsightRepo{}
		svc := NewInsightService(repo, &fakeEngine{}, cfg)

		// 2025-03-22 is a Saturday: 1.15 x 0.88 = 1.012.
		insight, err := svc.DailyInsight(context.Background(), 7, time.Date(2025, 3, 22, 9, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, insightSourceFallback, insight.Source)
		assert.Contains(t, insight.Text, "101%")
	})

	t.Run("monday early in the month", func(t *testing.T) {
		repo := &fakeInsightRepo{}
		svc := NewInsightService(repo, &fakeEngine{}, cfg)

		insight, err := svc.DailyInsight(context.Background(), 7, time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Contains(t, insight.Text, "85%")
	})
}
