package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/padariaops/backend-go/internal/domain"
	"github.com/padariaops/backend-go/internal/repository"
)

type forecastRepository struct {
	db   *sqlx.DB
	pool *DB
}

func NewForecastRepository(pool *DB) repository.ForecastRepository {
	return &forecastRepository{db: pool.DB, pool: pool}
}

func (r *forecastRepository) AverageDailyForecast(ctx context.Context, productID int64) (*float64, error) {
	query := `
        SELECT avg_daily_forecast
        FROM product_forecasts
        WHERE product_id = $1
    `

	var forecast float64
	if err := r.db.GetContext(ctx, &forecast, query, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting product forecast: %w", err)
	}

	return &forecast, nil
}

func (r *forecastRepository) UpsertForecasts(ctx context.Context, rows []domain.ForecastRow) error {
	if len(rows) == 0 {
		return nil
	}

	return r.pool.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
            INSERT INTO product_forecasts (product_id, avg_daily_forecast, updated_at)
            VALUES ($1, $2, NOW())
            ON CONFLICT (product_id)
            DO UPDATE SET avg_daily_forecast = EXCLUDED.avg_daily_forecast, updated_at = NOW()
        `)
		if err != nil {
			return fmt.Errorf("error preparing forecast upsert: %w", err)
		}
		defer stmt.Close()

		for _, row := range rows {
			if _, err := stmt.ExecContext(ctx, row.ProductID, row.AvgDailyForecast); err != nil {
				return fmt.Errorf("error upserting forecast for product %d: %w", row.ProductID, err)
			}
		}

		return nil
	})
}
