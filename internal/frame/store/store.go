package store

import (
	"context"
	"errors"

	"targetonchain/internal/frame/models"
)

// Error Contract:
// All store methods follow this error pattern:
// - Return ErrNotFound when the requested frame does not exist
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures

// ErrNotFound is returned when a frame does not exist.
var ErrNotFound = errors.New("frame not found")

// Store persists frame configurations.
type Store interface {
	GetByID(ctx context.Context, id int64) (*models.Frame, error)
	List(ctx context.Context) ([]models.Frame, error)
	Save(ctx context.Context, frame *models.Frame) error
	Update(ctx context.Context, frame *models.Frame) error
	Delete(ctx context.Context, id int64) error
}
