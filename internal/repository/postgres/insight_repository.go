package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/padariaops/backend-go/internal/domain"
	"github.com/padariaops/backend-go/internal/repository"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

type insightRepository struct {
	db *sqlx.DB
}

func NewInsightRepository(db *sqlx.DB) repository.InsightRepository {
	return &insightRepository{db: db}
}

func (r *insightRepository) GetByDate(ctx context.Context, storeID int64, date time.Time) (*domain.DailyInsight, error) {
	query := `
        SELECT id, store_id, insight_date, text, source, created_at
        FROM daily_insights
        WHERE store_id = $1 AND insight_date = $2::date
    `

	var insight domain.DailyInsight
	if err := r.db.GetContext(ctx, &insight, query, storeID, date.Format("2006-01-02")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting daily insight: %w", err)
	}

	return &insight, nil
}

func (r *insightRepository) Insert(ctx context.Context, insight *domain.DailyInsight) error {
	query := `
        INSERT INTO daily_insights (store_id, insight_date, text, source, created_at)
        VALUES ($1, $2::date, $3, $4, NOW())
        RETURNING id, created_at
    `

	err := r.db.QueryRowxContext(ctx, query,
		insight.StoreID,
		insight.InsightDate.Format("2006-01-02"),
		insight.Text,
		insight.Source,
	).Scan(&insight.ID, &insight.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			// Another request cached today's insight first.
			return repository.ErrDuplicateInsight
		}
		return fmt.Errorf("error inserting daily insight: %w", err)
	}

	return nil
}
