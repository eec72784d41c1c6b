package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inkthread/backend/internal/domain/cart"
	"github.com/inkthread/backend/internal/domain/order"
	"github.com/inkthread/backend/internal/domain/shared"
	"github.com/inkthread/backend/internal/domain/shared/valueobject"
)

// AddressRequest carries a postal address
type AddressRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Phone      string `json:"phone"`
}

// ToAddress converts the request to the domain value type
func (r AddressRequest) ToAddress() (valueobject.Address, error) {
	addr, err := valueobject.NewAddress(r.FullName, r.Line1, r.City, r.State, r.PostalCode, r.Country)
	if err != nil {
		return valueobject.Address{}, err
	}
	addr.Line2 = strings.TrimSpace(r.Line2)
	addr.Phone = strings.TrimSpace(r.Phone)
	if err := addr.Validate(); err != nil {
		return valueobject.Address{}, err
	}
	return addr, nil
}

// PlaceOrderRequest is the request to convert the user's cart into an
// order. Shipping, tax and discount are computed upstream and supplied
// by the caller.
type PlaceOrderRequest struct {
	ShippingAddress AddressRequest  `json:"shipping_address" binding:"required"`
	BillingAddress  *AddressRequest `json:"billing_address"`
	PaymentMethod   string          `json:"payment_method" binding:"required"`
	Shipping        decimal.Decimal `json:"shipping"`
	Tax             decimal.Decimal `json:"tax"`
	Discount        decimal.Decimal `json:"discount"`
	CustomerNote    string          `json:"customer_note"`
}

// CancelOrderRequest is the request to cancel an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// TransitionRequest is the admin request to move an order to a new status
type TransitionRequest struct {
	Status            string     `json:"status" binding:"required"`
	Message           string     `json:"message"`
	TrackingNumber    string     `json:"tracking_number"`
	Carrier           string     `json:"carrier"`
	TrackingURL       string     `json:"tracking_url"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

// OrderListFilter holds list filtering options
type OrderListFilter struct {
	Page     int           `form:"page"`
	PageSize int           `form:"page_size"`
	Status   *order.Status `form:"status"`
}

// OrderItemResponse is the API representation of an order item
type OrderItemResponse struct {
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
}

// TimelineEntryResponse is one entry of the order's status history
type TimelineEntryResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderResponse is the full API representation of an order
type OrderResponse struct {
	ID              uuid.UUID               `json:"id"`
	OrderNumber     string                  `json:"order_number"`
	UserID          string                  `json:"user_id"`
	Status          string                  `json:"status"`
	Items           []OrderItemResponse     `json:"items"`
	ShippingAddress valueobject.Address     `json:"shipping_address"`
	BillingAddress  valueobject.Address     `json:"billing_address"`
	Pricing         order.Pricing           `json:"pricing"`
	Payment         order.Payment           `json:"payment"`
	Tracking        *order.Tracking         `json:"tracking,omitempty"`
	Timeline        []TimelineEntryResponse `json:"timeline"`
	CustomerNote    string                  `json:"customer_note,omitempty"`
	DeliveredAt     *time.Time              `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time              `json:"cancelled_at,omitempty"`
	CancelReason    string                  `json:"cancel_reason,omitempty"`
	RefundAmount    decimal.Decimal         `json:"refund_amount"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// OrderListItemResponse is the condensed representation used in lists
type OrderListItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	ItemCount   int             `json:"item_count"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToOrderResponse converts a domain order to its API representation
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:            item.ID,
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			ImageRef:      item.ImageRef,
			Quantity:      item.Quantity,
			Size:          item.Size.String(),
			ColorName:     item.Color.Name,
			ColorCode:     item.Color.Code,
			Customization: item.Customization,
			UnitPrice:     item.UnitPrice,
			Subtotal:      item.Subtotal,
		}
	}

	timeline := make([]TimelineEntryResponse, len(o.Timeline))
	for i, entry := range o.Timeline {
		timeline[i] = TimelineEntryResponse{
			Status:    entry.Status.String(),
			Message:   entry.Message,
			Timestamp: entry.Timestamp,
		}
	}

	var tracking *order.Tracking
	if !o.Tracking.IsEmpty() {
		t := o.Tracking
		tracking = &t
	}

	return OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		Status:          o.Status.String(),
		Items:           items,
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
		Pricing:         o.Pricing,
		Payment:         o.Payment,
		Tracking:        tracking,
		Timeline:        timeline,
		CustomerNote:    o.CustomerNote,
		DeliveredAt:     o.DeliveredAt,
		CancelledAt:     o.CancelledAt,
		CancelReason:    o.CancelReason,
		RefundAmount:    o.RefundAmount,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ToOrderListItemResponses converts domain orders to list items
func ToOrderListItemResponses(orders []order.Order) []OrderListItemResponse {
	items := make([]OrderListItemResponse, len(orders))
	for i := range orders {
		items[i] = OrderListItemResponse{
			ID:          orders[i].ID,
			OrderNumber: orders[i].OrderNumber,
			Status:      orders[i].Status.String(),
			ItemCount:   len(orders[i].Items),
			Total:       orders[i].Pricing.Total,
			CreatedAt:   orders[i].CreatedAt,
		}
	}
	return items
}

// ToPaginatedListResponse converts a paginated domain result
func ToPaginatedListResponse(p *shared.Paginated[order.Order]) shared.Paginated[OrderListItemResponse] {
	return shared.Paginated[OrderListItemResponse]{
		Items:      ToOrderListItemResponses(p.Items),
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
	}
}
