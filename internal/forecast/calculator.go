package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/padariaops/backend-go/internal/config"
	"github.com/padariaops/backend-go/internal/domain"
)

// Portuguese confidence labels shown in the ordering UI.
const (
	labelSalesHistory = "Histórico vendas"
	labelAdvanced     = "Avançado"
)

// Calculator computes raw per-product demand estimates. One instance is safe
// for concurrent use; it holds only the tuning constants.
type Calculator struct {
	cfg config.ForecastConfig
}

// NewCalculator creates a calculator with the given tuning constants.
func NewCalculator(cfg config.ForecastConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// AvgDailySales converts a monthly sales aggregate into an average per day,
// assuming 30-day months. No history yields 0, not an error.
func (c *Calculator) AvgDailySales(sales domain.SalesTotal) float64 {
	if sales.MonthsCovered == 0 {
		return 0
	}

	return float64(sales.TotalUnits) / (float64(sales.MonthsCovered) * 30)
}

// DayFactor is the ratio of the asOf weekday's historical average order
// quantity to the mean across all observed weekdays. Missing or all-zero
// weekday data short-circuits to a neutral 1.0.
func DayFactor(perWeekday map[time.Weekday]float64, asOf time.Time) float64 {
	if len(perWeekday) == 0 {
		return 1.0
	}

	var sum float64
	for _, avg := range perWeekday {
		sum += avg
	}

	mean := sum / float64(len(perWeekday))
	if mean == 0 {
		return 1.0
	}

	avg, ok := perWeekday[asOf.Weekday()]
	if !ok {
		return 1.0
	}

	return avg / mean
}

// StockTier is the cold-start estimate: sales history only, padded by the
// safety margin. When the product has no sales history at all it returns
// ok=false and the product must be omitted from the output, not shown as zero.
func (c *Calculator) StockTier(sales domain.SalesTotal) (suggestion int, ok bool) {
	if sales.MonthsCovered == 0 {
		return 0, false
	}

	raw := int(math.Round(c.AvgDailySales(sales) * c.cfg.SafetyMargin))

	return c.clampMin(raw), true
}

// Intermediate blends recent order history with sales history when orders are
// still sparse, then applies the weekday factor.
func (c *Calculator) Intermediate(sales domain.SalesTotal, orders domain.OrderStats, perWeekday map[time.Weekday]float64, daysOfHistory int, asOf time.Time) (suggestion int, label string) {
	avgSales := c.AvgDailySales(sales)

	var base float64
	switch {
	case orders.RecordCount >= c.cfg.SparseRecordThreshold:
		base = orders.AvgQuantity
	case orders.RecordCount > 0:
		base = orders.AvgQuantity*c.cfg.BlendOrdersWeight + avgSales*c.cfg.BlendSalesWeight
	default:
		base = avgSales
	}

	// Both signals absent: fall back to a flat base before rounding.
	if orders.RecordCount == 0 && avgSales == 0 {
		base = c.cfg.IntermediateFallback
	}

	raw := int(math.Round(base * DayFactor(perWeekday, asOf)))

	if orders.RecordCount >= c.cfg.SparseRecordThreshold {
		label = fmt.Sprintf("%d dias", daysOfHistory)
	} else {
		label = fmt.Sprintf("Vendas + %dd", daysOfHistory)
	}

	return c.clampMin(raw), label
}

// Advanced weighs sales history against a 60-day order average, then applies
// the weekday factor and the quinzena dampener for the second half of the
// month.
func (c *Calculator) Advanced(sales domain.SalesTotal, orders domain.OrderStats, perWeekday map[time.Weekday]float64, asOf time.Time) (suggestion int, label string) {
	avgSales := c.AvgDailySales(sales)
	salesPresent := sales.MonthsCovered > 0
	ordersPresent := orders.RecordCount > 0

	var base float64
	switch {
	case salesPresent && ordersPresent:
		base = avgSales*c.cfg.AdvancedSalesWeight + orders.AvgQuantity*c.cfg.AdvancedOrdersWeight
	case ordersPresent:
		base = orders.AvgQuantity
	case salesPresent:
		base = avgSales
	default:
		base = c.cfg.AdvancedFallback
	}

	quinzena := 1.0
	if asOf.Day() > 15 {
		quinzena = c.cfg.QuinzenaFactor
	}

	raw := int(math.Round(base * DayFactor(perWeekday, asOf) * quinzena))

	return c.clampMin(raw), labelAdvanced
}

// ReconcileStock subtracts the caller-supplied on-hand stock from a raw
// demand estimate. Sufficient stock means nothing needs to be produced.
func ReconcileStock(raw, stock int) int {
	if stock <= 0 {
		return raw
	}
	if stock >= raw {
		return 0
	}

	return raw - stock
}

func (c *Calculator) clampMin(suggestion int) int {
	if suggestion < c.cfg.MinSuggestion {
		return c.cfg.MinSuggestion
	}

	return suggestion
}
