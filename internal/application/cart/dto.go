package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inkthread/backend/internal/domain/cart"
)

// CustomizationRequest carries the print customization of an item
type CustomizationRequest struct {
	HasCustomization  bool   `json:"has_customization"`
	Text              string `json:"text"`
	TextColor         string `json:"text_color"`
	TextFont          string `json:"text_font"`
	TextPosition      string `json:"text_position"`
	UploadedImageRef  string `json:"uploaded_image_ref"`
	SelectedDesignRef string `json:"selected_design_ref"`
	Notes             string `json:"notes"`
}

// ToCustomization converts the request to the domain value type
func (r CustomizationRequest) ToCustomization() cart.Customization {
	return cart.Customization{
		HasCustomization:  r.HasCustomization,
		Text:              r.Text,
		TextColor:         r.TextColor,
		TextFont:          r.TextFont,
		TextPosition:      cart.TextPosition(r.TextPosition),
		UploadedImageRef:  r.UploadedImageRef,
		SelectedDesignRef: r.SelectedDesignRef,
		Notes:             r.Notes,
	}
}

// AddItemRequest is the request to add an item to the cart
type AddItemRequest struct {
	ProductID     uuid.UUID            `json:"product_id" binding:"required"`
	Size          string               `json:"size" binding:"required"`
	ColorName     string               `json:"color_name"`
	ColorCode     string               `json:"color_code"`
	Quantity      int                  `json:"quantity" binding:"required,min=1"`
	Customization CustomizationRequest `json:"customization"`
}

// UpdateQuantityRequest is the request to change a cart item's quantity
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse is the API representation of a cart line item
type CartItemResponse struct {
	ID            uuid.UUID          `json:"id"`
	ProductID     uuid.UUID          `json:"product_id"`
	ProductName   string             `json:"product_name"`
	ImageRef      string             `json:"image_ref"`
	Quantity      int                `json:"quantity"`
	Size          string             `json:"size"`
	ColorName     string             `json:"color_name"`
	ColorCode     string             `json:"color_code"`
	Customization cart.Customization `json:"customization"`
	UnitPrice     decimal.Decimal    `json:"unit_price"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	AddedAt       time.Time          `json:"added_at"`
}

// CartResponse is the API representation of a cart
type CartResponse struct {
	UserID       string             `json:"user_id"`
	Items        []CartItemResponse `json:"items"`
	TotalItems   int                `json:"total_items"`
	TotalPrice   decimal.Decimal    `json:"total_price"`
	LastModified time.Time          `json:"last_modified"`
}

// ToCartResponse converts a domain cart to its API representation.
// Display fields for each item are resolved by the service before the
// response is returned.
func ToCartResponse(c *cart.Cart, names map[uuid.UUID]productDisplay) CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	for i, item := range c.Items {
		display := names[item.ProductID]
		items[i] = CartItemResponse{
			ID:            item.ID,
			ProductID:     item.ProductID,
			ProductName:   display.Name,
			ImageRef:      display.ImageRef,
			Quantity:      item.Quantity,
			Size:          item.Size.String(),
			ColorName:     item.Color.Name,
			ColorCode:     item.Color.Code,
			Customization: item.Customization,
			UnitPrice:     item.UnitPrice,
			Subtotal:      item.Subtotal(),
			AddedAt:       item.AddedAt,
		}
	}
	return CartResponse{
		UserID:       c.UserID,
		Items:        items,
		TotalItems:   c.TotalItems,
		TotalPrice:   c.TotalPrice,
		LastModified: c.LastModified,
	}
}

// productDisplay holds the catalog display fields resolved for a response
type productDisplay struct {
	Name     string
	ImageRef string
}
