package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inkthread/backend/internal/domain/shared"
	"github.com/inkthread/backend/internal/domain/shared/identifier"
)

// Size represents a garment size. Sizes are a closed enumeration;
// stock is tracked per product per size.
type Size string

const (
	SizeXS   Size = "XS"
	SizeS    Size = "S"
	SizeM    Size = "M"
	SizeL    Size = "L"
	SizeXL   Size = "XL"
	SizeXXL  Size = "XXL"
	SizeXXXL Size = "XXXL"
)

// AllSizes returns every valid size in display order
func AllSizes() []Size {
	return []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL, SizeXXXL}
}

// IsValid checks if the size is part of the closed enumeration
func (s Size) IsValid() bool {
	switch s {
	case SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL, SizeXXXL:
		return true
	}
	return false
}

// String returns the string representation of Size
func (s Size) String() string {
	return string(s)
}

// ParseSize converts a string into a Size, rejecting unknown labels
func ParseSize(label string) (Size, error) {
	s := Size(label)
	if !s.IsValid() {
		return "", shared.NewDomainError("INVALID_SIZE", fmt.Sprintf("Unknown size %q", label))
	}
	return s, nil
}

// SizeStock is a per-size stock counter belonging to a product.
// Stock must never go below zero; reservations are applied through
// the inventory ledger with an atomic conditional decrement.
type SizeStock struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_size,priority:1"`
	Size      Size      `gorm:"type:varchar(8);not null;uniqueIndex:idx_product_size,priority:2"`
	Stock     int       `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (SizeStock) TableName() string {
	return "product_sizes"
}

// Product represents a sellable garment with per-size stock entries.
// TotalStock is always derived from the size entries, never stored.
type Product struct {
	shared.BaseAggregateRoot
	Code        string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	ImageRef    string          `gorm:"type:varchar(500)"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	IsActive    bool            `gorm:"not null;default:true"`
	Sizes       []SizeStock     `gorm:"foreignKey:ProductID;references:ID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with a generated product code and a
// zero-stock entry for every size in the enumeration
func NewProduct(name, imageRef string, price decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}

	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              identifier.Generate(identifier.PrefixProduct),
		Name:              name,
		ImageRef:          imageRef,
		Price:             price,
		IsActive:          true,
	}
	for _, size := range AllSizes() {
		p.Sizes = append(p.Sizes, SizeStock{
			ID:        uuid.New(),
			ProductID: p.ID,
			Size:      size,
			Stock:     0,
			UpdatedAt: p.CreatedAt,
		})
	}
	return p, nil
}

// TotalStock recomputes the total stock from the size entries
func (p *Product) TotalStock() int {
	total := 0
	for _, s := range p.Sizes {
		total += s.Stock
	}
	return total
}

// StockFor returns the stock count for a single size
func (p *Product) StockFor(size Size) (int, error) {
	if !size.IsValid() {
		return 0, shared.NewDomainError("INVALID_SIZE", fmt.Sprintf("Unknown size %q", size))
	}
	for _, s := range p.Sizes {
		if s.Size == size {
			return s.Stock, nil
		}
	}
	return 0, nil
}

// SetStock sets the stock count for a size (admin restock/correction)
func (p *Product) SetStock(size Size, stock int) error {
	if !size.IsValid() {
		return shared.NewDomainError("INVALID_SIZE", fmt.Sprintf("Unknown size %q", size))
	}
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	now := time.Now()
	for idx := range p.Sizes {
		if p.Sizes[idx].Size == size {
			p.Sizes[idx].Stock = stock
			p.Sizes[idx].UpdatedAt = now
			p.UpdatedAt = now
			p.IncrementVersion()
			return nil
		}
	}

	p.Sizes = append(p.Sizes, SizeStock{
		ID:        uuid.New(),
		ProductID: p.ID,
		Size:      size,
		Stock:     stock,
		UpdatedAt: now,
	})
	p.UpdatedAt = now
	p.IncrementVersion()
	return nil
}

// UpdatePrice changes the catalog price. Existing cart line items and
// orders keep their captured unit price.
func (p *Product) UpdatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	p.Price = price
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Deactivate removes the product from sale without deleting it
func (p *Product) Deactivate() {
	p.IsActive = false
	p.Touch()
	p.IncrementVersion()
}

// Activate puts the product back on sale
func (p *Product) Activate() {
	p.IsActive = true
	p.Touch()
	p.IncrementVersion()
}
