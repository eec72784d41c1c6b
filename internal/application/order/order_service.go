package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inkthread/backend/internal/domain/cart"
	"github.com/inkthread/backend/internal/domain/catalog"
	"github.com/inkthread/backend/internal/domain/inventory"
	"github.com/inkthread/backend/internal/domain/order"
	"github.com/inkthread/backend/internal/domain/shared"
	"github.com/inkthread/backend/internal/domain/shared/identifier"
)

// OrderService orchestrates order placement, cancellation and status
// transitions across the cart, catalog and inventory boundaries.
type OrderService struct {
	orderRepo        order.Repository
	productRepo      catalog.ProductRepository
	ledger           inventory.Ledger
	cartStore        cart.Store
	eventPublisher   shared.EventPublisher
	logger           *zap.Logger
	placementTimeout time.Duration
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo order.Repository,
	productRepo catalog.ProductRepository,
	ledger inventory.Ledger,
	cartStore cart.Store,
	logger *zap.Logger,
	placementTimeout time.Duration,
) *OrderService {
	return &OrderService{
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		ledger:           ledger,
		cartStore:        cartStore,
		logger:           logger,
		placementTimeout: placementTimeout,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}


// PlaceOrder converts the user's cart into an order:
//
//  1. every referenced product must be active
//  2. stock is reserved per line item, all-or-nothing; any failure
//     releases the reservations already made in this call
//  3. catalog display fields are snapshotted into the order items
//  4. pricing is computed once from the captured unit prices plus the
//     caller-supplied shipping, tax and discount
//  5. the order is created and saved
//  6. the source cart is cleared
//
// A failure anywhere before the save leaves inventory and cart untouched.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, req PlaceOrderRequest) (*OrderResponse, error) {
	if s.placementTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.placementTimeout)
		defer cancel()
	}

	shipping, err := req.ShippingAddress.ToAddress()
	if err != nil {
		return nil, err
	}
	var billing = shipping
	if req.BillingAddress != nil {
		if billing, err = req.BillingAddress.ToAddress(); err != nil {
			return nil, err
		}
	}

	c, err := s.cartStore.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrEmptyOrder
		}
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.ErrEmptyOrder
	}

	// Verify availability and snapshot display fields before touching stock
	products := make(map[uuid.UUID]*catalog.Product, len(c.Items))
	items := make([]order.OrderItem, 0, len(c.Items))
	for idx := range c.Items {
		line := c.Items[idx]
		product, ok := products[line.ProductID]
		if !ok {
			product, err = s.productRepo.FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return nil, shared.ErrProductUnavailable
				}
				return nil, err
			}
			products[line.ProductID] = product
		}
		if !product.IsActive {
			return nil, &shared.DomainError{
				Code:    "PRODUCT_UNAVAILABLE",
				Message: fmt.Sprintf("Product %q is no longer available", product.Name),
			}
		}

		item, err := order.NewOrderItem(line, product.Name, product.ImageRef)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	// Reserve stock for every line item, rolling back on any failure
	reserved := make([]inventory.Reservation, 0, len(c.Items))
	for idx := range c.Items {
		line := c.Items[idx]
		if err := s.ledger.Reserve(ctx, line.ProductID, line.Size, line.Quantity); err != nil {
			s.releaseReservations(ctx, reserved)
			return nil, err
		}
		reserved = append(reserved, inventory.Reservation{
			ProductID: line.ProductID,
			Size:      line.Size,
			Quantity:  line.Quantity,
		})
	}

	pricing, err := order.NewPricing(c.TotalPrice, req.Shipping, req.Tax, req.Discount)
	if err != nil {
		s.releaseReservations(ctx, reserved)
		return nil, err
	}

	o, err := order.NewOrder(
		identifier.Generate(identifier.PrefixOrder),
		userID,
		items,
		shipping,
		billing,
		order.Payment{Method: req.PaymentMethod, Status: order.PaymentStatusPending},
		pricing,
	)
	if err != nil {
		s.releaseReservations(ctx, reserved)
		return nil, err
	}
	if req.CustomerNote != "" {
		o.SetCustomerNote(req.CustomerNote)
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		s.releaseReservations(ctx, reserved)
		return nil, err
	}

	if _, err := s.cartStore.Mutate(ctx, userID, func(c *cart.Cart) error {
		c.Clear()
		return nil
	}); err != nil {
		// The order is placed; a stale cart is an annoyance, not a failure
		s.logger.Warn("failed to clear cart after order placement",
			zap.String("user_id", userID),
			zap.String("order_number", o.OrderNumber),
			zap.Error(err),
		)
	}

	s.publishEvents(ctx, o, inventory.NewStockReservedEvent(o.ID, o.OrderNumber, reserved))

	response := ToOrderResponse(o)
	return &response, nil
}

// CancelOrder cancels an order and releases its reserved stock. The
// optimistic-lock save runs before the release: of two concurrent
// cancels one loses with a conflict, so the stock of an order is
// credited back exactly once.
func (s *OrderService) CancelOrder(ctx context.Context, userID string, orderID uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if userID != "" && o.UserID != userID {
		return nil, shared.ErrNotFound
	}

	if err := o.Cancel(req.Reason); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	released := s.releaseOrderStock(ctx, o)

	s.publishEvents(ctx, o, inventory.NewStockReleasedEvent(o.ID, o.OrderNumber, req.Reason, released))

	response := ToOrderResponse(o)
	return &response, nil
}

// TransitionStatus moves an order to a new status (admin operation).
// Entering shipped generates a tracking number when none is supplied.
// Entering cancelled through this path releases the order's reserved
// stock exactly like CancelOrder does; the state machine rejects a
// second cancellation, so the release cannot run twice.
func (s *OrderService) TransitionStatus(ctx context.Context, orderID uuid.UUID, req TransitionRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	target := order.Status(req.Status)
	if !target.IsValid() {
		return nil, &order.InvalidTransitionError{From: o.Status, To: target}
	}

	tctx := order.TransitionContext{Message: req.Message}
	switch target {
	case order.StatusShipped:
		trackingNumber := req.TrackingNumber
		if trackingNumber == "" {
			trackingNumber = identifier.Generate(identifier.PrefixTracking)
		}
		tctx.Tracking = &order.Tracking{
			TrackingNumber:    trackingNumber,
			Carrier:           req.Carrier,
			TrackingURL:       req.TrackingURL,
			EstimatedDelivery: req.EstimatedDelivery,
		}
	case order.StatusCancelled, order.StatusReturned:
		tctx.Reason = req.Message
	}

	if err := o.TransitionTo(target, tctx); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	if target == order.StatusCancelled {
		released := s.releaseOrderStock(ctx, o)
		s.publishEvents(ctx, o, inventory.NewStockReleasedEvent(o.ID, o.OrderNumber, req.Message, released))
	} else {
		s.publishEvents(ctx, o)
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// GetByID retrieves an order, scoped to its owner when userID is set
func (s *OrderService) GetByID(ctx context.Context, userID string, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if userID != "" && o.UserID != userID {
		return nil, shared.ErrNotFound
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// GetByOrderNumber retrieves an order by its business number
func (s *OrderService) GetByOrderNumber(ctx context.Context, userID string, orderNumber string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if userID != "" && o.UserID != userID {
		return nil, shared.ErrNotFound
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// ListForUser retrieves a user's orders, newest first
func (s *OrderService) ListForUser(ctx context.Context, userID string, filter OrderListFilter) (*shared.Paginated[OrderListItemResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = filter.Status.String()
	}

	page, err := s.orderRepo.FindByUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	response := ToPaginatedListResponse(page)
	return &response, nil
}

// releaseReservations compensates the stock decrements of a failed
// placement. It runs detached from the request context so reservations
// are released even when the placement failed on a timeout.
func (s *OrderService) releaseReservations(ctx context.Context, reserved []inventory.Reservation) {
	ctx = context.WithoutCancel(ctx)
	for _, r := range reserved {
		if err := s.ledger.Release(ctx, r.ProductID, r.Size, r.Quantity); err != nil {
			s.logger.Error("failed to roll back stock reservation",
				zap.String("product_id", r.ProductID.String()),
				zap.String("size", r.Size.String()),
				zap.Int("quantity", r.Quantity),
				zap.Error(err),
			)
		}
	}
}

// releaseOrderStock credits back the stock of every item of a cancelled
// order and returns the released lines for the stock event.
func (s *OrderService) releaseOrderStock(ctx context.Context, o *order.Order) []inventory.Reservation {
	released := make([]inventory.Reservation, 0, len(o.Items))
	for idx := range o.Items {
		item := o.Items[idx]
		if err := s.ledger.Release(ctx, item.ProductID, item.Size, item.Quantity); err != nil {
			s.logger.Error("failed to release stock for cancelled order",
				zap.String("order_number", o.OrderNumber),
				zap.String("product_id", item.ProductID.String()),
				zap.String("size", item.Size.String()),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
			continue
		}
		released = append(released, inventory.Reservation{
			ProductID: item.ProductID,
			Size:      item.Size,
			Quantity:  item.Quantity,
		})
	}
	return released
}

// publishEvents drains the aggregate's pending events, appends any
// service-level events, and hands them to the publisher.
func (s *OrderService) publishEvents(ctx context.Context, o *order.Order, extra ...shared.DomainEvent) {
	events := append(o.GetDomainEvents(), extra...)
	o.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish order events",
			zap.String("order_number", o.OrderNumber),
			zap.Error(err),
		)
	}
}
