package trade

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOwner returns a user's orders with items, newest first
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]Order, error)

	// FindAll returns all orders with items, newest first
	FindAll(ctx context.Context) ([]Order, error)

	// Save creates or updates an order and its items
	Save(ctx context.Context, order *Order) error
}
