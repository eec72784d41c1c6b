package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inkthread/backend/internal/domain/shared"
)

// Cart is the per-user mutable collection of line items. Derived
// totals are recomputed explicitly after every mutation rather than in
// a persistence hook, so the invariant is visible and testable here.
//
// Invariant: no two items ever share a fingerprint.
type Cart struct {
	UserID       string          `json:"user_id"`
	Items        []LineItem      `json:"items"`
	TotalItems   int             `json:"total_items"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	LastModified time.Time       `json:"last_modified"`
}

// NewCart creates an empty cart for a user
func NewCart(userID string) *Cart {
	return &Cart{
		UserID:       userID,
		Items:        make([]LineItem, 0),
		TotalPrice:   decimal.Zero,
		LastModified: time.Now(),
	}
}

// AddItem adds a line item, merging with an existing item that shares
// its fingerprint. Merged quantities are truncated at the per-item cap
// rather than rejected.
func (c *Cart) AddItem(item LineItem) {
	fp := item.Fingerprint()
	for idx := range c.Items {
		if c.Items[idx].Fingerprint() == fp {
			c.Items[idx].Quantity = clampQuantity(c.Items[idx].Quantity + item.Quantity)
			c.recalculateTotals()
			return
		}
	}

	item.Quantity = clampQuantity(item.Quantity)
	c.Items = append(c.Items, item)
	c.recalculateTotals()
}

// UpdateQuantity sets the quantity of an existing item. A quantity of
// zero or less removes the item; anything else is clamped to the cap.
func (c *Cart) UpdateQuantity(lineItemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return c.RemoveItem(lineItemID)
	}

	for idx := range c.Items {
		if c.Items[idx].ID == lineItemID {
			c.Items[idx].Quantity = clampQuantity(quantity)
			c.recalculateTotals()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Cart item not found")
}

// RemoveItem removes a line item from the cart
func (c *Cart) RemoveItem(lineItemID uuid.UUID) error {
	for idx := range c.Items {
		if c.Items[idx].ID == lineItemID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			c.recalculateTotals()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Cart item not found")
}

// Clear removes every item
func (c *Cart) Clear() {
	c.Items = c.Items[:0]
	c.recalculateTotals()
}

// IsEmpty returns true when the cart holds no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItem returns the line item with the given ID, or nil
func (c *Cart) FindItem(lineItemID uuid.UUID) *LineItem {
	for idx := range c.Items {
		if c.Items[idx].ID == lineItemID {
			return &c.Items[idx]
		}
	}
	return nil
}

// Clone returns a deep copy of the cart
func (c *Cart) Clone() *Cart {
	clone := *c
	clone.Items = make([]LineItem, len(c.Items))
	copy(clone.Items, c.Items)
	return &clone
}

// recalculateTotals recomputes the derived totals from the items and
// touches LastModified. Called after every mutation.
func (c *Cart) recalculateTotals() {
	totalItems := 0
	totalPrice := decimal.Zero
	for idx := range c.Items {
		totalItems += c.Items[idx].Quantity
		totalPrice = totalPrice.Add(c.Items[idx].Subtotal())
	}
	c.TotalItems = totalItems
	c.TotalPrice = totalPrice
	c.LastModified = time.Now()
}
