package store

import (
	"context"
	"database/sql"
	"fmt"

	"targetonchain/internal/product/models"
)

// PostgresStore persists products in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed product store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListByShop(ctx context.Context, shop string) ([]models.Product, error) {
	query := `
		SELECT id, shop, title, description, image, handle, variant_id, variant_formatted_price
		FROM products
		WHERE shop = $1
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query, shop)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Shop, &p.Title, &p.Description, &p.Image, &p.Handle, &p.VariantID, &p.VariantFormattedPrice); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (s *PostgresStore) Save(ctx context.Context, product *models.Product) error {
	if product == nil {
		return fmt.Errorf("product is required")
	}
	query := `
		INSERT INTO products (shop, title, description, image, handle, variant_id, variant_formatted_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		product.Shop,
		product.Title,
		product.Description,
		product.Image,
		product.Handle,
		product.VariantID,
		product.VariantFormattedPrice,
	).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("save product: %w", err)
	}
	return nil
}

// Verify interface is satisfied.
var _ Store = (*PostgresStore)(nil)
