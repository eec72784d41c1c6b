package handler

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inkthread/backend/internal/domain/cart"
	"github.com/inkthread/backend/internal/domain/catalog"
	"github.com/inkthread/backend/internal/domain/inventory"
	"github.com/inkthread/backend/internal/domain/order"
	"github.com/inkthread/backend/internal/domain/shared"
	"github.com/inkthread/backend/internal/domain/shared/valueobject"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ catalog.ProductRepository = (*MockProductRepository)(nil)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID string, filter shared.Filter) (*shared.Paginated[order.Order], error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[order.Order]), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, status order.Status, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

var _ order.Repository = (*MockOrderRepository)(nil)

// MockLedger is a mock implementation of inventory.Ledger
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Reserve(ctx context.Context, productID uuid.UUID, size catalog.Size, qty int) error {
	args := m.Called(ctx, productID, size, qty)
	return args.Error(0)
}

func (m *MockLedger) Release(ctx context.Context, productID uuid.UUID, size catalog.Size, qty int) error {
	args := m.Called(ctx, productID, size, qty)
	return args.Error(0)
}

func (m *MockLedger) TotalStock(ctx context.Context, productID uuid.UUID) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

var _ inventory.Ledger = (*MockLedger)(nil)

// Shared test fixtures

func createActiveProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("Crew Neck Tee", "img/crew-neck.png", decimal.NewFromFloat(24.50))
	require.NoError(t, err)
	return product
}

func mustParseSize(t *testing.T, s string) catalog.Size {
	t.Helper()
	size, err := catalog.ParseSize(s)
	require.NoError(t, err)
	return size
}

func createPlacedOrder(t *testing.T, userID string) *order.Order {
	t.Helper()

	line, err := cart.NewLineItem(uuid.New(), catalog.SizeM,
		cart.Color{Name: "Black", Code: "#000000"}, cart.Customization{}, 2, decimal.NewFromFloat(24.50))
	require.NoError(t, err)

	item, err := order.NewOrderItem(*line, "Crew Neck Tee", "img/crew-neck.png")
	require.NoError(t, err)

	addr, err := valueobject.NewAddress("Jordan Reyes", "1 Main St", "Portland", "OR", "97201", "US")
	require.NoError(t, err)

	pricing, err := order.NewPricing(decimal.NewFromInt(49), decimal.NewFromInt(5), decimal.NewFromInt(2), decimal.Zero)
	require.NoError(t, err)

	o, err := order.NewOrder("ORD-HTTP-TEST", userID, []order.OrderItem{*item}, addr, addr,
		order.Payment{Method: "card", Status: order.PaymentStatusPending}, pricing)
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}
