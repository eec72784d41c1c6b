package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inkthread/backend/internal/domain/cart"
	"github.com/inkthread/backend/internal/domain/catalog"
	"github.com/inkthread/backend/internal/domain/shared"
	"github.com/inkthread/backend/internal/domain/shared/valueobject"
)

// Status represents the status of a customer order
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusPrinting   Status = "printing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusReturned   Status = "returned"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusPrinting,
		StatusShipped, StatusDelivered, StatusCancelled, StatusReturned:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Cancellation is reachable from every state up to and including printing;
// once an order has shipped it can only move forward.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusProcessing || target == StatusCancelled
	case StatusProcessing:
		return target == StatusPrinting || target == StatusCancelled
	case StatusPrinting:
		return target == StatusShipped || target == StatusCancelled
	case StatusShipped:
		return target == StatusDelivered
	case StatusDelivered:
		return target == StatusReturned
	case StatusCancelled, StatusReturned:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true if no further transition is possible
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusReturned
}

// CanCancel returns true if an order in this status may still be cancelled
func (s Status) CanCancel() bool {
	return s.CanTransitionTo(StatusCancelled)
}

// timelineMessages maps each status to the human-readable timeline entry
// recorded when the order enters it.
var timelineMessages = map[Status]string{
	StatusPending:    "Order placed",
	StatusConfirmed:  "Order confirmed",
	StatusProcessing: "Order is being prepared",
	StatusPrinting:   "Custom print in progress",
	StatusShipped:    "Order shipped",
	StatusDelivered:  "Order delivered",
	StatusCancelled:  "Order cancelled",
	StatusReturned:   "Order returned",
}

// TimelineMessage returns the timeline message for a status, falling back
// to a generic message for anything not in the lookup.
func TimelineMessage(s Status) string {
	if msg, ok := timelineMessages[s]; ok {
		return msg
	}
	return fmt.Sprintf("Status updated to %s", s)
}

// PaymentStatus represents the status of the order's payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid checks if the payment status is part of the closed enumeration
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// Payment captures how the order is paid. The gateway integration lives
// outside this module; only the recorded outcome is stored here.
type Payment struct {
	Method        string        `json:"method"`
	Status        PaymentStatus `json:"status" gorm:"size:20"`
	TransactionID string        `json:"transaction_id"`
	PaymentDate   *time.Time    `json:"payment_date,omitempty"`
	FailureReason string        `json:"failure_reason,omitempty"`
}

// Pricing is the order's price breakdown. It is computed once at
// creation and never recomputed afterwards.
type Pricing struct {
	Subtotal decimal.Decimal `json:"subtotal" gorm:"type:decimal(18,2)"`
	Shipping decimal.Decimal `json:"shipping" gorm:"type:decimal(18,2)"`
	Tax      decimal.Decimal `json:"tax" gorm:"type:decimal(18,2)"`
	Discount decimal.Decimal `json:"discount" gorm:"type:decimal(18,2)"`
	Total    decimal.Decimal `json:"total" gorm:"type:decimal(18,2)"`
}

// NewPricing builds a pricing breakdown with the total derived from its
// parts: subtotal + shipping + tax - discount.
func NewPricing(subtotal, shipping, tax, discount decimal.Decimal) (Pricing, error) {
	if subtotal.IsNegative() || shipping.IsNegative() || tax.IsNegative() || discount.IsNegative() {
		return Pricing{}, shared.NewDomainError("INVALID_PRICING", "Pricing components cannot be negative")
	}
	total := subtotal.Add(shipping).Add(tax).Sub(discount)
	if total.IsNegative() {
		return Pricing{}, shared.NewDomainError("INVALID_PRICING", "Discount cannot exceed the sum of the other components")
	}
	return Pricing{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Discount: discount,
		Total:    total,
	}, nil
}

// Tracking holds shipment tracking details, populated when the order
// enters the shipped status.
type Tracking struct {
	TrackingNumber    string     `json:"tracking_number"`
	Carrier           string     `json:"carrier"`
	TrackingURL       string     `json:"tracking_url"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
}

// IsEmpty returns true when no tracking information has been recorded
func (t Tracking) IsEmpty() bool {
	return t.TrackingNumber == ""
}

// TimelineEntry is one record in the order's status history. Entries are
// append-only: once written they are never edited or removed.
type TimelineEntry struct {
	Status    Status    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderItem is a purchased line item frozen at order time. ProductName
// and ImageRef are snapshots from the catalog so the order stays fully
// renderable even if the product is later changed or deleted.
type OrderItem struct {
	ID            uuid.UUID          `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID          `json:"order_id" gorm:"type:uuid;index;not null"`
	ProductID     uuid.UUID          `json:"product_id" gorm:"type:uuid;not null"`
	ProductName   string             `json:"product_name" gorm:"size:255;not null"`
	ImageRef      string             `json:"image_ref" gorm:"size:512"`
	Quantity      int                `json:"quantity" gorm:"not null"`
	Size          catalog.Size       `json:"size" gorm:"size:10;not null"`
	Color         cart.Color         `json:"color" gorm:"embedded;embeddedPrefix:color_"`
	Customization cart.Customization `json:"customization" gorm:"type:jsonb;serializer:json"`
	UnitPrice     decimal.Decimal    `json:"unit_price" gorm:"type:decimal(18,2)"`
	Subtotal      decimal.Decimal    `json:"subtotal" gorm:"type:decimal(18,2)"`
	CreatedAt     time.Time          `json:"created_at"`
}

// TableName returns the table name for the OrderItem entity
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem freezes a cart line item into an order item, snapshotting
// the catalog display fields.
func NewOrderItem(line cart.LineItem, productName, imageRef string) (*OrderItem, error) {
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if line.Quantity <= 0 || line.Quantity > cart.MaxQuantityPerItem {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity out of range")
	}

	return &OrderItem{
		ID:            uuid.New(),
		ProductID:     line.ProductID,
		ProductName:   productName,
		ImageRef:      imageRef,
		Quantity:      line.Quantity,
		Size:          line.Size,
		Color:         line.Color,
		Customization: line.Customization,
		UnitPrice:     line.UnitPrice,
		Subtotal:      line.Subtotal(),
		CreatedAt:     time.Now(),
	}, nil
}

// Order is the aggregate root for a placed order. Once created it is
// immutable except for status (via the state machine), tracking, notes,
// and the terminal timestamps.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber     string              `json:"order_number" gorm:"uniqueIndex;size:50;not null"`
	UserID          string              `json:"user_id" gorm:"index;size:64;not null"`
	Items           []OrderItem         `json:"items" gorm:"foreignKey:OrderID"`
	ShippingAddress valueobject.Address `json:"shipping_address" gorm:"embedded;embeddedPrefix:shipping_"`
	BillingAddress  valueobject.Address `json:"billing_address" gorm:"embedded;embeddedPrefix:billing_"`
	Pricing         Pricing             `json:"pricing" gorm:"embedded;embeddedPrefix:pricing_"`
	Payment         Payment             `json:"payment" gorm:"embedded;embeddedPrefix:payment_"`
	Status          Status              `json:"status" gorm:"size:20;index;not null"`
	Tracking        Tracking            `json:"tracking" gorm:"embedded;embeddedPrefix:tracking_"`
	Timeline        []TimelineEntry     `json:"timeline" gorm:"type:jsonb;serializer:json"`
	CustomerNote    string              `json:"customer_note"`
	AdminNote       string              `json:"admin_note"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time          `json:"cancelled_at,omitempty"`
	CancelReason    string              `json:"cancel_reason,omitempty"`
	RefundAmount    decimal.Decimal     `json:"refund_amount" gorm:"type:decimal(18,2)"`
	RefundReason    string              `json:"refund_reason,omitempty"`
}

// TableName returns the table name for the Order aggregate
func (Order) TableName() string {
	return "orders"
}

// TransitionContext carries the optional inputs of a status transition
type TransitionContext struct {
	Message  string    // overrides the default timeline message when set
	Tracking *Tracking // recorded when entering shipped
	Reason   string    // cancellation or return reason
}

// InvalidTransitionError reports an illegal status change together with
// the current and requested statuses.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

// Unwrap allows errors.Is matching against shared.ErrInvalidTransition
func (e *InvalidTransitionError) Unwrap() error {
	return shared.ErrInvalidTransition
}

// CannotCancelError reports a cancellation attempt on an order that is
// already past the point of no return.
type CannotCancelError struct {
	Status Status
}

func (e *CannotCancelError) Error() string {
	return fmt.Sprintf("order in %s status can no longer be cancelled", e.Status)
}

// Unwrap allows errors.Is matching against shared.ErrCannotCancel
func (e *CannotCancelError) Unwrap() error {
	return shared.ErrCannotCancel
}

// NewOrder creates a new order in pending status with its first timeline
// entry seeded atomically.
func NewOrder(orderNumber, userID string, items []OrderItem, shipping, billing valueobject.Address, payment Payment, pricing Pricing) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if userID == "" {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.ErrEmptyOrder
	}
	if shipping.IsEmpty() {
		return nil, shared.ErrMissingAddress
	}
	if err := shipping.Validate(); err != nil {
		return nil, err
	}
	if !payment.Status.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_STATUS", "Unknown payment status")
	}
	if billing.IsEmpty() {
		billing = shipping
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		UserID:            userID,
		Items:             items,
		ShippingAddress:   shipping,
		BillingAddress:    billing,
		Pricing:           pricing,
		Payment:           payment,
		Status:            StatusPending,
		Timeline:          make([]TimelineEntry, 0, 1),
		RefundAmount:      decimal.Zero,
	}
	for idx := range o.Items {
		o.Items[idx].OrderID = o.ID
	}
	o.appendTimeline(StatusPending, TimelineMessage(StatusPending))

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return o, nil
}

// TransitionTo moves the order to the target status. Every successful
// transition appends exactly one timeline entry and applies the status's
// side effects; illegal transitions leave the order untouched.
func (o *Order) TransitionTo(target Status, tctx TransitionContext) error {
	if !target.IsValid() {
		return &InvalidTransitionError{From: o.Status, To: target}
	}
	if !o.Status.CanTransitionTo(target) {
		return &InvalidTransitionError{From: o.Status, To: target}
	}

	previous := o.Status
	now := time.Now()
	o.Status = target

	switch target {
	case StatusShipped:
		if tctx.Tracking != nil {
			o.Tracking = *tctx.Tracking
		}
	case StatusDelivered:
		o.DeliveredAt = &now
	case StatusCancelled:
		o.CancelledAt = &now
		o.CancelReason = tctx.Reason
	case StatusReturned:
		o.RefundReason = tctx.Reason
	}

	message := tctx.Message
	if message == "" {
		message = TimelineMessage(target)
	}
	o.appendTimeline(target, message)
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))
	if target == StatusCancelled {
		o.AddDomainEvent(NewOrderCancelledEvent(o, previous))
	}

	return nil
}

// Cancel cancels the order. Fails with CannotCancelError once the order
// has shipped or reached a terminal state; cancelling an already
// cancelled order is a hard failure, not a no-op, so stock is never
// released twice.
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanCancel() {
		return &CannotCancelError{Status: o.Status}
	}
	return o.TransitionTo(StatusCancelled, TransitionContext{Reason: reason})
}

// MarkReturned records a return of a delivered order with the refunded
// amount.
func (o *Order) MarkReturned(reason string, refund decimal.Decimal) error {
	if refund.IsNegative() || refund.GreaterThan(o.Pricing.Total) {
		return shared.NewDomainError("INVALID_REFUND", "Refund must be between zero and the order total")
	}
	if err := o.TransitionTo(StatusReturned, TransitionContext{Reason: reason}); err != nil {
		return err
	}
	o.RefundAmount = refund
	return nil
}

// SetCustomerNote sets the customer-facing note
func (o *Order) SetCustomerNote(note string) {
	o.CustomerNote = note
	o.Touch()
}

// SetAdminNote sets the internal note
func (o *Order) SetAdminNote(note string) {
	o.AdminNote = note
	o.Touch()
}

// TotalQuantity returns the sum of all item quantities
func (o *Order) TotalQuantity() int {
	total := 0
	for idx := range o.Items {
		total += o.Items[idx].Quantity
	}
	return total
}

// LastTimelineEntry returns the most recent timeline entry
func (o *Order) LastTimelineEntry() *TimelineEntry {
	if len(o.Timeline) == 0 {
		return nil
	}
	return &o.Timeline[len(o.Timeline)-1]
}

// IsTerminal returns true if the order is in a terminal state
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// appendTimeline appends an entry with a timestamp strictly later than
// the previous entry's. When the clock has not advanced between two
// transitions the new timestamp is bumped past the last one so the
// timeline ordering invariant holds even at coarse clock resolution.
func (o *Order) appendTimeline(status Status, message string) {
	ts := time.Now()
	if last := o.LastTimelineEntry(); last != nil && !ts.After(last.Timestamp) {
		ts = last.Timestamp.Add(time.Nanosecond)
	}
	o.Timeline = append(o.Timeline, TimelineEntry{
		Status:    status,
		Message:   message,
		Timestamp: ts,
	})
}
