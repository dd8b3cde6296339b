package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/padariaops/backend-go/internal/domain"
	"github.com/padariaops/backend-go/internal/repository"
)

type historyRepository struct {
	db   *sqlx.DB
	pool *DB
}

// NewHistoryRepository builds the Postgres-backed history repository. The
// pool is used for the transactional order-submission write.
func NewHistoryRepository(pool *DB) repository.HistoryRepository {
	return &historyRepository{db: pool.DB, pool: pool}
}

func (r *historyRepository) SalesHistoryTotal(ctx context.Context, productID int64, yearFrom int) (domain.SalesTotal, error) {
	query := `
        SELECT
            COALESCE(SUM(total_units), 0) AS total_units,
            COUNT(*) AS months_covered
        FROM sales_history
        WHERE product_id = $1 AND year >= $2
    `

	var total domain.SalesTotal
	if err := r.db.GetContext(ctx, &total, query, productID, yearFrom); err != nil {
		return domain.SalesTotal{}, fmt.Errorf("error getting sales history total: %w", err)
	}

	return total, nil
}

func (r *historyRepository) EarliestOrderDate(ctx context.Context, storeID int64) (*time.Time, error) {
	query := `
        SELECT MIN(order_date)
        FROM daily_order_history
        WHERE store_id = $1
    `

	var earliest sql.NullTime
	if err := r.db.GetContext(ctx, &earliest, query, storeID); err != nil {
		return nil, fmt.Errorf("error getting earliest order date: %w", err)
	}

	if !earliest.Valid {
		return nil, nil
	}

	return &earliest.Time, nil
}

func (r *historyRepository) OrderHistoryAverage(ctx context.Context, productID, storeID int64, since time.Time) (domain.OrderStats, error) {
	query := `
        SELECT
            COALESCE(AVG(quantity_ordered), 0) AS avg_quantity,
            COUNT(*) AS record_count
        FROM daily_order_history
        WHERE product_id = $1 AND store_id = $2 AND order_date >= $3
    `

	var stats domain.OrderStats
	if err := r.db.GetContext(ctx, &stats, query, productID, storeID, since); err != nil {
		return domain.OrderStats{}, fmt.Errorf("error getting order history average: %w", err)
	}

	return stats, nil
}

func (r *historyRepository) OrderHistoryByWeekday(ctx context.Context, productID, storeID int64, since time.Time) (map[time.Weekday]float64, error) {
	query := `
        SELECT day_of_week, AVG(quantity_ordered) AS avg_quantity
        FROM daily_order_history
        WHERE product_id = $1 AND store_id = $2 AND order_date >= $3
        GROUP BY day_of_week
    `

	rows, err := r.db.QueryxContext(ctx, query, productID, storeID, since)
	if err != nil {
		return nil, fmt.Errorf("error querying weekday averages: %w", err)
	}
	defer rows.Close()

	result := make(map[time.Weekday]float64)
	for rows.Next() {
		var (
			dayOfWeek int
			avg       float64
		)
		if err := rows.Scan(&dayOfWeek, &avg); err != nil {
			return nil, fmt.Errorf("error scanning weekday average: %w", err)
		}
		result[time.Weekday(dayOfWeek)] = avg
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weekday averages: %w", err)
	}

	return result, nil
}

func (r *historyRepository) InsertDailyOrders(ctx context.Context, records []domain.DailyOrderRecord) error {
	if len(records) == 0 {
		return nil
	}

	return r.pool.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
            INSERT INTO daily_order_history
                (product_id, store_id, order_date, quantity_ordered, stock_at_time, day_of_week)
            VALUES ($1, $2, $3, $4, $5, $6)
        `)
		if err != nil {
			return fmt.Errorf("error preparing daily order insert: %w", err)
		}
		defer stmt.Close()

		for _, record := range records {
			if _, err := stmt.ExecContext(ctx,
				record.ProductID,
				record.StoreID,
				record.OrderDate,
				record.Quantity,
				record.StockAtTime,
				record.DayOfWeek,
			); err != nil {
				return fmt.Errorf("error inserting daily order for product %d: %w", record.ProductID, err)
			}
		}

		return nil
	})
}
