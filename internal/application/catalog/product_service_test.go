package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inkthread/backend/internal/domain/catalog"
	"github.com/inkthread/backend/internal/domain/shared"
)

// MockProductRepository is a mock implementation of ProductRepository
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

func createTestProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("Crew Neck Tee", "img/crew-neck.png", decimal.NewFromFloat(24.50))
	require.NoError(t, err)
	return product
}

// ============================================
// ProductService Tests
// ============================================

func TestProductService_Create(t *testing.T) {
	t.Run("creates product with all sizes seeded", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)
		svc := NewProductService(repo)

		resp, err := svc.Create(context.Background(), CreateProductRequest{
			Name:        "Crew Neck Tee",
			Description: "Heavyweight cotton",
			Price:       decimal.NewFromFloat(24.50),
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Code)
		assert.True(t, resp.IsActive)
		assert.Len(t, resp.Sizes, len(catalog.AllSizes()))
		assert.Equal(t, 0, resp.TotalStock)
		assert.Equal(t, "Heavyweight cotton", resp.Description)
		repo.AssertExpectations(t)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		svc := NewProductService(new(MockProductRepository))

		_, err := svc.Create(context.Background(), CreateProductRequest{Price: decimal.NewFromInt(10)})

		require.Error(t, err)
	})
}

func TestProductService_Restock(t *testing.T) {
	t.Run("sets stock for a size", func(t *testing.T) {
		product := createTestProduct(t)
		repo := new(MockProductRepository)
		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		repo.On("Save", mock.Anything, product).Return(nil)
		svc := NewProductService(repo)

		resp, err := svc.Restock(context.Background(), product.ID, RestockRequest{Size: "M", Stock: 25})

		require.NoError(t, err)
		assert.Equal(t, 25, resp.TotalStock)
	})

	t.Run("rejects unknown size", func(t *testing.T) {
		svc := NewProductService(new(MockProductRepository))

		_, err := svc.Restock(context.Background(), uuid.New(), RestockRequest{Size: "HUGE", Stock: 5})

		require.Error(t, err)
	})

	t.Run("propagates missing product", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
		svc := NewProductService(repo)

		_, err := svc.Restock(context.Background(), uuid.New(), RestockRequest{Size: "M", Stock: 5})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_UpdatePrice(t *testing.T) {
	product := createTestProduct(t)
	repo := new(MockProductRepository)
	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	repo.On("Save", mock.Anything, product).Return(nil)
	svc := NewProductService(repo)

	resp, err := svc.UpdatePrice(context.Background(), product.ID, UpdatePriceRequest{Price: decimal.NewFromFloat(29.99)})

	require.NoError(t, err)
	assert.True(t, resp.Price.Equal(decimal.NewFromFloat(29.99)))
}

func TestProductService_ActivateDeactivate(t *testing.T) {
	product := createTestProduct(t)
	repo := new(MockProductRepository)
	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	repo.On("Save", mock.Anything, product).Return(nil)
	svc := NewProductService(repo)
	ctx := context.Background()

	resp, err := svc.Deactivate(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	resp, err = svc.Activate(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
}

func TestProductService_List(t *testing.T) {
	product := createTestProduct(t)
	repo := new(MockProductRepository)
	repo.On("FindActive", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)
	svc := NewProductService(repo)

	page, err := svc.List(context.Background(), ProductListFilter{ActiveOnly: true})

	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, product.Code, page.Items[0].Code)
}
