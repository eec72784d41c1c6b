package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/inkthread/backend/internal/domain/shared"
)

// Repository defines the persistence interface for orders
type Repository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its business order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindByUser finds a user's orders, newest first
	FindByUser(ctx context.Context, userID string, filter shared.Filter) (*shared.Paginated[Order], error)

	// FindByStatus finds orders in a given status
	FindByStatus(ctx context.Context, status Status, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order
	Save(ctx context.Context, o *Order) error

	// SaveWithLock updates an order guarded by its version; returns
	// shared.ErrConcurrencyConflict when another writer got there first
	SaveWithLock(ctx context.Context, o *Order) error
}
