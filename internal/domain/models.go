package domain

import "time"

// Product is a catalog item. Only "Class A" products are eligible for
// forecasting and customer orders; vitrine items are display-only.
type Product struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	IsClassA  bool      `json:"is_class_a" db:"is_class_a"`
	Orderable bool      `json:"orderable" db:"orderable"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SalesTotal aggregates monthly sales rows for one product over a year range.
type SalesTotal struct {
	TotalUnits    int `json:"total_units" db:"total_units"`
	MonthsCovered int `json:"months_covered" db:"months_covered"`
}

// OrderStats aggregates daily order-history rows for one product in one store
// over a lookback window.
type OrderStats struct {
	AvgQuantity float64 `json:"avg_quantity" db:"avg_quantity"`
	RecordCount int     `json:"record_count" db:"record_count"`
}

// DailyOrderRecord is one production-order line as written by the
// order-submission flow. The engine only ever reads these.
type DailyOrderRecord struct {
	ID          int64     `json:"id" db:"id"`
	ProductID   int64     `json:"product_id" db:"product_id"`
	StoreID     int64     `json:"store_id" db:"store_id"`
	OrderDate   time.Time `json:"order_date" db:"order_date"`
	Quantity    int       `json:"quantity_ordered" db:"quantity_ordered"`
	StockAtTime int       `json:"stock_at_time" db:"stock_at_time"`
	DayOfWeek   int       `json:"day_of_week" db:"day_of_week"`
}

// ProductSuggestion is one line of the tiered engine's output. Transient,
// never persisted. A product with no usable signal is omitted from the list
// entirely; a zero here means "stock already covers demand".
type ProductSuggestion struct {
	ProductID       int64  `json:"product_id"`
	ProductName     string `json:"product_name"`
	Suggestion      int    `json:"suggestion"`
	Tier            Tier   `json:"confidence_tier"`
	ConfidenceLabel string `json:"confidence_label"`
	DaysOfHistory   int    `json:"days_of_history"`
}

// ProductRecommendation is one line of the simple forecast-based formula.
type ProductRecommendation struct {
	ProductID           int64   `json:"product_id"`
	ProductName         string  `json:"product_name"`
	Forecast            float64 `json:"forecast"`
	Stock               int     `json:"stock"`
	Orders              int     `json:"orders"`
	SuggestedProduction int     `json:"suggested_production"`
}

// OrderItem is the caller-supplied state for one product when asking for a
// simple recommendation: current vitrine stock and current encomendas.
type OrderItem struct {
	Stock  int `json:"stock"`
	Orders int `json:"orders"`
}

// DailyInsight is the once-per-day cached text summary for a store.
type DailyInsight struct {
	ID          int64     `json:"id" db:"id"`
	StoreID     int64     `json:"store_id" db:"store_id"`
	InsightDate time.Time `json:"insight_date" db:"insight_date"`
	Text        string    `json:"text" db:"text"`
	Source      string    `json:"source" db:"source"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ForecastRow is one product's precomputed flat forecast, maintained by the
// CSV ingestion flow.
type ForecastRow struct {
	ProductID        int64   `json:"product_id" db:"product_id"`
	AvgDailyForecast float64 `json:"avg_daily_forecast" db:"avg_daily_forecast"`
}
