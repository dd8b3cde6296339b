package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/padariaops/backend-go/internal/domain"
	"github.com/padariaops/backend-go/internal/repository"
)

type productRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) ListProducts(ctx context.Context, onlyClassA bool) ([]domain.Product, error) {
	query := `
        SELECT id, name, is_class_a, orderable, created_at, updated_at
        FROM products
        WHERE 1=1
    `

	if onlyClassA {
		query += " AND is_class_a = TRUE"
	}

	query += " ORDER BY id"

	var products []domain.Product
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}

	return products, nil
}
