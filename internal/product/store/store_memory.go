package store

import (
	"context"
	"sync"

	"targetonchain/internal/product/models"
)

// InMemoryStore stores products in memory for development and tests.
type InMemoryStore struct {
	mu       sync.RWMutex
	nextID   int64
	products map[string][]models.Product
}

// NewMemory constructs an empty in-memory product store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{nextID: 1, products: make(map[string][]models.Product)}
}

func (s *InMemoryStore) ListByShop(_ context.Context, shop string) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.products[shop]
	// Return copies to prevent external modifications.
	out := make([]models.Product, len(items))
	copy(out, items)
	return out, nil
}

func (s *InMemoryStore) Save(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if product.ID == 0 {
		product.ID = s.nextID
		s.nextID++
	}
	s.products[product.Shop] = append(s.products[product.Shop], *product)
	return nil
}
