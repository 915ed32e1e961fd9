package store

import (
	"context"

	"targetonchain/internal/product/models"
)

// Error Contract:
// All store methods follow this error pattern:
// - Return nil (empty slice) when a shop has no products
// - Return wrapped errors with context for infrastructure failures

// Store provides read access to a shop's product catalog plus the Save used
// by catalog sync and seeding.
type Store interface {
	ListByShop(ctx context.Context, shop string) ([]models.Product, error)
	Save(ctx context.Context, product *models.Product) error
}
