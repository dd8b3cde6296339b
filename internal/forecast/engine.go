package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/padariaops/backend-go/internal/config"
	"github.com/padariaops/backend-go/internal/domain"
	"golang.org/x/sync/errgroup"
)

// defaultWorkers bounds the per-product fan-out of one engine run.
const defaultWorkers = 8

// ProductLister exposes the catalog reads the engine needs.
type ProductLister interface {
	ListProducts(ctx context.Context, onlyClassA bool) ([]domain.Product, error)
}

// HistoryReader exposes the historical aggregates the engine needs. All reads
// are against a snapshot of append-only tables; the engine never writes.
type HistoryReader interface {
	SalesHistoryTotal(ctx context.Context, productID int64, yearFrom int) (domain.SalesTotal, error)
	EarliestOrderDate(ctx context.Context, storeID int64) (*time.Time, error)
	OrderHistoryAverage(ctx context.Context, productID, storeID int64, since time.Time) (domain.OrderStats, error)
	OrderHistoryByWeekday(ctx context.Context, productID, storeID int64, since time.Time) (map[time.Weekday]float64, error)
}

// Engine turns historical aggregates into per-product production suggestions
// for one store, picking the estimation tier from how much order history the
// store has accumulated.
type Engine struct {
	products ProductLister
	history  HistoryReader
	calc     *Calculator
	cfg      config.ForecastConfig
	workers  int
}

func NewEngine(products ProductLister, history HistoryReader, cfg config.ForecastConfig) *Engine {
	return &Engine{
		products: products,
		history:  history,
		calc:     NewCalculator(cfg),
		cfg:      cfg,
		workers:  defaultWorkers,
	}
}

// CalculateSuggestions computes a suggestion for every eligible product of
// the store, reconciled against the caller-supplied current stock. Products
// with no usable signal in the cold-start tier are omitted, not zeroed.
// Results keep catalog order regardless of the concurrent fan-out.
func (e *Engine) CalculateSuggestions(ctx context.Context, storeID int64, currentStock map[int64]int, asOf time.Time) ([]domain.ProductSuggestion, error) {
	products, err := e.products.ListProducts(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	earliest, err := e.history.EarliestOrderDate(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to read earliest order date: %w", err)
	}

	days := DaysOfHistory(earliest, asOf)
	tier := SelectTier(days, e.cfg)

	// Per-product work is independent; fan out and keep slot order.
	slots := make([]*domain.ProductSuggestion, len(products))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, product := range products {
		if !product.Orderable {
			continue
		}

		i, product := i, product
		g.Go(func() error {
			suggestion, ok, err := e.suggestFor(gctx, product, storeID, tier, days, currentStock[product.ID], asOf)
			if err != nil {
				return err
			}
			if ok {
				slots[i] = &suggestion
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	suggestions := make([]domain.ProductSuggestion, 0, len(products))
	for _, slot := range slots {
		if slot != nil {
			suggestions = append(suggestions, *slot)
		}
	}

	return suggestions, nil
}

func (e *Engine) suggestFor(ctx context.Context, product domain.Product, storeID int64, tier domain.Tier, daysOfHistory, stock int, asOf time.Time) (domain.ProductSuggestion, bool, error) {
	// Sales history window: current year and the previous one.
	yearFrom := asOf.Year() - 1

	var (
		raw   int
		label string
	)

	switch tier {
	case domain.TierStock:
		sales, err := e.history.SalesHistoryTotal(ctx, product.ID, yearFrom)
		if err != nil {
			return domain.ProductSuggestion{}, false, fmt.Errorf("sales history for product %d: %w", product.ID, err)
		}

		suggestion, ok := e.calc.StockTier(sales)
		if !ok {
			// Nothing to go on: omit the product entirely.
			return domain.ProductSuggestion{}, false, nil
		}
		raw, label = suggestion, labelSalesHistory

	case domain.TierIntermediate:
		sales, orders, perWeekday, err := e.loadSignals(ctx, product.ID, storeID, yearFrom, asOf, e.cfg.IntermediateWindowDays)
		if err != nil {
			return domain.ProductSuggestion{}, false, err
		}
		raw, label = e.calc.Intermediate(sales, orders, perWeekday, daysOfHistory, asOf)

	default:
		sales, orders, perWeekday, err := e.loadSignals(ctx, product.ID, storeID, yearFrom, asOf, e.cfg.AdvancedWindowDays)
		if err != nil {
			return domain.ProductSuggestion{}, false, err
		}
		raw, label = e.calc.Advanced(sales, orders, perWeekday, asOf)
	}

	return domain.ProductSuggestion{
		ProductID:       product.ID,
		ProductName:     product.Name,
		Suggestion:      ReconcileStock(raw, stock),
		Tier:            tier,
		ConfidenceLabel: label,
		DaysOfHistory:   daysOfHistory,
	}, true, nil
}

func (e *Engine) loadSignals(ctx context.Context, productID, storeID int64, yearFrom int, asOf time.Time, windowDays int) (domain.SalesTotal, domain.OrderStats, map[time.Weekday]float64, error) {
	since := asOf.AddDate(0, 0, -windowDays)

	sales, err := e.history.SalesHistoryTotal(ctx, productID, yearFrom)
	if err != nil {
		return domain.SalesTotal{}, domain.OrderStats{}, nil, fmt.Errorf("sales history for product %d: %w", productID, err)
	}

	orders, err := e.history.OrderHistoryAverage(ctx, productID, storeID, since)
	if err != nil {
		return domain.SalesTotal{}, domain.OrderStats{}, nil, fmt.Errorf("order history for product %d: %w", productID, err)
	}

	perWeekday, err := e.history.OrderHistoryByWeekday(ctx, productID, storeID, since)
	if err != nil {
		return domain.SalesTotal{}, domain.OrderStats{}, nil, fmt.Errorf("weekday averages for product %d: %w", productID, err)
	}

	return sales, orders, perWeekday, nil
}
