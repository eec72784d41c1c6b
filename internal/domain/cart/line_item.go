package cart

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inkthread/backend/internal/domain/catalog"
	"github.com/inkthread/backend/internal/domain/shared"
)

// MaxQuantityPerItem caps the quantity of any single line item.
// Amounts beyond the cap are truncated, never rejected.
const MaxQuantityPerItem = 10

// Color identifies the garment color of a line item
type Color struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// LineItem is one purchasable configuration in a cart. UnitPrice is
// captured when the item is added and never recomputed from the live
// catalog, so orders reflect the price at order time.
type LineItem struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	Quantity      int             `json:"quantity"`
	Size          catalog.Size    `json:"size"`
	Color         Color           `json:"color"`
	Customization Customization   `json:"customization"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	AddedAt       time.Time       `json:"added_at"`
}

// NewLineItem creates a new line item with a clamped quantity
func NewLineItem(productID uuid.UUID, size catalog.Size, color Color, customization Customization, quantity int, unitPrice decimal.Decimal) (*LineItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !size.IsValid() {
		return nil, shared.NewDomainError("INVALID_SIZE", "Unknown garment size")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if err := customization.Validate(); err != nil {
		return nil, err
	}

	return &LineItem{
		ID:            uuid.New(),
		ProductID:     productID,
		Quantity:      clampQuantity(quantity),
		Size:          size,
		Color:         color,
		Customization: customization,
		UnitPrice:     unitPrice,
		AddedAt:       time.Now(),
	}, nil
}

// Fingerprint derives the deterministic key that decides whether two
// line items are the same logical item: product + size + color code +
// canonical customization. Items with equal fingerprints are merged,
// never duplicated.
func (li *LineItem) Fingerprint() string {
	h := sha256.New()
	h.Write([]byte(li.ProductID.String()))
	h.Write([]byte{'|'})
	h.Write([]byte(li.Size))
	h.Write([]byte{'|'})
	h.Write([]byte(li.Color.Code))
	h.Write([]byte{'|'})
	h.Write(li.Customization.Canonical())
	return hex.EncodeToString(h.Sum(nil))
}

// Subtotal returns quantity x unit price
func (li *LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// clampQuantity bounds a quantity to [1, MaxQuantityPerItem]
func clampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	if q > MaxQuantityPerItem {
		return MaxQuantityPerItem
	}
	return q
}
