package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/inkthread/backend/internal/domain/catalog"
	"github.com/inkthread/backend/internal/domain/shared"
)

// Ledger owns the per-(product, size) stock counters.
//
// Reserve must be linearizable per (product, size): the check and the
// decrement happen as one atomic unit at the storage layer, so two
// concurrent callers can never both take the last unit. A read-check-
// write sequence is not an acceptable implementation.
//
// Release is the compensating operation used on cancellation and on
// rollback of a partially reserved order. It is not idempotent;
// releasing twice double-credits stock, so callers must guard repeats
// through the order state machine.
type Ledger interface {
	// Reserve atomically decrements stock for (product, size) by qty.
	// Fails with *InsufficientStockError, leaving state unchanged, when
	// fewer than qty units are available.
	Reserve(ctx context.Context, productID uuid.UUID, size catalog.Size, qty int) error

	// Release increments stock for (product, size) by qty
	Release(ctx context.Context, productID uuid.UUID, size catalog.Size, qty int) error

	// TotalStock recomputes the product's total stock as the sum over
	// its size entries
	TotalStock(ctx context.Context, productID uuid.UUID) (int, error)
}

// InsufficientStockError reports a failed reservation with enough
// structure for the caller to render an actionable message
type InsufficientStockError struct {
	ProductID uuid.UUID
	Size      catalog.Size
	Requested int
	Available int
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s size %s: requested %d, available %d",
		e.ProductID, e.Size, e.Requested, e.Available)
}

// Unwrap lets errors.Is match the shared domain error
func (e *InsufficientStockError) Unwrap() error {
	return shared.ErrInsufficientStock
}
