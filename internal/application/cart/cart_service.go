package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/inkthread/backend/internal/domain/cart"
	"github.com/inkthread/backend/internal/domain/catalog"
	"github.com/inkthread/backend/internal/domain/shared"
)

// CartService handles cart operations for a user
type CartService struct {
	store       cart.Store
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(store cart.Store, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		store:       store,
		productRepo: productRepo,
	}
}

// Get retrieves the user's cart. A user without a stored cart gets an
// empty one; carts only come into existence on the first add.
func (s *CartService) Get(ctx context.Context, userID string) (*CartResponse, error) {
	c, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			c = cart.NewCart(userID)
		} else {
			return nil, err
		}
	}
	return s.toResponse(ctx, c)
}

// AddItem adds a product configuration to the user's cart, merging with
// an existing line item that shares its fingerprint. The unit price is
// captured from the catalog at add time.
func (s *CartService) AddItem(ctx context.Context, userID string, req AddItemRequest) (*CartResponse, error) {
	size, err := catalog.ParseSize(req.Size)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.ErrProductUnavailable
	}

	item, err := cart.NewLineItem(
		product.ID,
		size,
		cart.Color{Name: req.ColorName, Code: req.ColorCode},
		req.Customization.ToCustomization(),
		req.Quantity,
		product.Price,
	)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.Mutate(ctx, userID, func(c *cart.Cart) error {
		c.AddItem(*item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, updated)
}

// UpdateQuantity changes the quantity of a cart item. Zero or less
// removes the item.
func (s *CartService) UpdateQuantity(ctx context.Context, userID string, itemID uuid.UUID, req UpdateQuantityRequest) (*CartResponse, error) {
	updated, err := s.store.Mutate(ctx, userID, func(c *cart.Cart) error {
		return c.UpdateQuantity(itemID, req.Quantity)
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, updated)
}

// RemoveItem removes a line item from the cart
func (s *CartService) RemoveItem(ctx context.Context, userID string, itemID uuid.UUID) (*CartResponse, error) {
	updated, err := s.store.Mutate(ctx, userID, func(c *cart.Cart) error {
		return c.RemoveItem(itemID)
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, updated)
}

// Clear removes every item from the user's cart
func (s *CartService) Clear(ctx context.Context, userID string) (*CartResponse, error) {
	updated, err := s.store.Mutate(ctx, userID, func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, updated)
}

// toResponse resolves catalog display fields for the cart's items. A
// product deleted after being added renders with empty display fields
// rather than failing the whole cart.
func (s *CartService) toResponse(ctx context.Context, c *cart.Cart) (*CartResponse, error) {
	names := make(map[uuid.UUID]productDisplay, len(c.Items))
	for idx := range c.Items {
		productID := c.Items[idx].ProductID
		if _, ok := names[productID]; ok {
			continue
		}
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				names[productID] = productDisplay{}
				continue
			}
			return nil, err
		}
		names[productID] = productDisplay{Name: product.Name, ImageRef: product.ImageRef}
	}
	resp := ToCartResponse(c, names)
	return &resp, nil
}
