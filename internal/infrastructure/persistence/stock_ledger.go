package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkthread/backend/internal/domain/catalog"
	"github.com/inkthread/backend/internal/domain/inventory"
	"github.com/inkthread/backend/internal/domain/shared"
)

// GormStockLedger implements the inventory Ledger on the product_sizes
// table. Reservations use a conditional decrement so the stock check and
// the write happen in one statement; the database serializes concurrent
// reservations on the same row and at most one caller gets the last unit.
type GormStockLedger struct {
	db *gorm.DB
}

// NewGormStockLedger creates a new GormStockLedger
func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

// Reserve atomically decrements stock for (product, size) by qty
func (l *GormStockLedger) Reserve(ctx context.Context, productID uuid.UUID, size catalog.Size, qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Reservation quantity must be positive")
	}

	result := l.db.WithContext(ctx).
		Model(&catalog.SizeStock{}).
		Where("product_id = ? AND size = ? AND stock >= ?", productID, size, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		available, err := l.stockFor(ctx, productID, size)
		if err != nil {
			return err
		}
		return &inventory.InsufficientStockError{
			ProductID: productID,
			Size:      size,
			Requested: qty,
			Available: available,
		}
	}
	return nil
}

// Release increments stock for (product, size) by qty
func (l *GormStockLedger) Release(ctx context.Context, productID uuid.UUID, size catalog.Size, qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Release quantity must be positive")
	}

	result := l.db.WithContext(ctx).
		Model(&catalog.SizeStock{}).
		Where("product_id = ? AND size = ?", productID, size).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// TotalStock recomputes the product's total stock as the sum over its
// size entries
func (l *GormStockLedger) TotalStock(ctx context.Context, productID uuid.UUID) (int, error) {
	var result struct {
		Total int
	}
	if err := l.db.WithContext(ctx).
		Model(&catalog.SizeStock{}).
		Select("COALESCE(SUM(stock), 0) as total").
		Where("product_id = ?", productID).
		Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Total, nil
}

// stockFor reads the current stock count for one size entry
func (l *GormStockLedger) stockFor(ctx context.Context, productID uuid.UUID, size catalog.Size) (int, error) {
	var entry catalog.SizeStock
	if err := l.db.WithContext(ctx).
		Where("product_id = ? AND size = ?", productID, size).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return entry.Stock, nil
}

// Ensure GormStockLedger implements the inventory Ledger
var _ inventory.Ledger = (*GormStockLedger)(nil)
