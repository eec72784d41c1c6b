package inventory

import (
	"github.com/google/uuid"

	"github.com/inkthread/backend/internal/domain/catalog"
	"github.com/inkthread/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeStock = "Stock"

// Event type constants
const (
	EventTypeStockReserved = "StockReserved"
	EventTypeStockReleased = "StockReleased"
)

// Reservation is one line of an atomic stock reservation: the quantity
// taken from (product, size) for a single order.
type Reservation struct {
	ProductID uuid.UUID    `json:"product_id"`
	Size      catalog.Size `json:"size"`
	Quantity  int          `json:"quantity"`
}

// StockReservedEvent is raised after every line of an order's
// reservation has been applied.
type StockReservedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID     `json:"order_id"`
	OrderNumber string        `json:"order_number"`
	Lines       []Reservation `json:"lines"`
}

// NewStockReservedEvent creates a new StockReservedEvent
func NewStockReservedEvent(orderID uuid.UUID, orderNumber string, lines []Reservation) *StockReservedEvent {
	return &StockReservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReserved, AggregateTypeStock, orderID),
		OrderID:         orderID,
		OrderNumber:     orderNumber,
		Lines:           lines,
	}
}

// EventType returns the event type name
func (e *StockReservedEvent) EventType() string {
	return EventTypeStockReserved
}

// StockReleasedEvent is raised when an order's reserved stock is
// credited back, either on cancellation or on rollback of a failed
// placement.
type StockReleasedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID     `json:"order_id"`
	OrderNumber string        `json:"order_number"`
	Reason      string        `json:"reason"`
	Lines       []Reservation `json:"lines"`
}

// NewStockReleasedEvent creates a new StockReleasedEvent
func NewStockReleasedEvent(orderID uuid.UUID, orderNumber, reason string, lines []Reservation) *StockReleasedEvent {
	return &StockReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReleased, AggregateTypeStock, orderID),
		OrderID:         orderID,
		OrderNumber:     orderNumber,
		Reason:          reason,
		Lines:           lines,
	}
}

// EventType returns the event type name
func (e *StockReleasedEvent) EventType() string {
	return EventTypeStockReleased
}
