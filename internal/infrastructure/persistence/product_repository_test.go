package persistence

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/inkthread/backend/internal/domain/catalog"
	"github.com/inkthread/backend/internal/domain/inventory"
	"github.com/inkthread/backend/internal/domain/shared"
)

// newTestDB opens an isolated in-memory SQLite database with the schema
// migrated, for round-trip repository tests
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique shared-cache DSN so the database survives connection pooling
	// but stays isolated per test
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&catalog.Product{}, &catalog.SizeStock{}))
	return db
}

func createPersistedProduct(t *testing.T, repo *GormProductRepository) *catalog.Product {
	t.Helper()

	product, err := catalog.NewProduct("Crew Neck Tee", "img/crew-neck.png", decimal.NewFromFloat(24.50))
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), product))
	return product
}

func TestGormProductRepository_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := createPersistedProduct(t, repo)

	t.Run("finds by ID with size entries preloaded", func(t *testing.T) {
		found, err := repo.FindByID(ctx, product.ID)

		require.NoError(t, err)
		assert.Equal(t, product.Code, found.Code)
		assert.Equal(t, "Crew Neck Tee", found.Name)
		assert.Len(t, found.Sizes, len(catalog.AllSizes()))
		assert.Equal(t, 0, found.TotalStock())
	})

	t.Run("finds by code", func(t *testing.T) {
		found, err := repo.FindByCode(ctx, product.Code)

		require.NoError(t, err)
		assert.Equal(t, product.ID, found.ID)
	})

	t.Run("returns ErrNotFound for a missing product", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("persists stock changes on save", func(t *testing.T) {
		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)

		require.NoError(t, found.SetStock(catalog.SizeM, 12))
		require.NoError(t, repo.Save(ctx, found))

		reloaded, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		stock, err := reloaded.StockFor(catalog.SizeM)
		require.NoError(t, err)
		assert.Equal(t, 12, stock)
		assert.Equal(t, 12, reloaded.TotalStock())
	})
}

func TestGormProductRepository_FindActive(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	active := createPersistedProduct(t, repo)

	inactive, err := catalog.NewProduct("Retired Hoodie", "", decimal.NewFromInt(40))
	require.NoError(t, err)
	inactive.Deactivate()
	require.NoError(t, repo.Save(ctx, inactive))

	products, err := repo.FindActive(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, active.ID, products[0].ID)

	filter := shared.DefaultFilter()
	filter.Filters["is_active"] = true
	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormProductRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := createPersistedProduct(t, repo)

	require.NoError(t, repo.Delete(ctx, product.ID))

	_, err := repo.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, product.ID), shared.ErrNotFound)
}

// The conditional decrement is driver-agnostic SQL, so the ledger can be
// exercised end to end against SQLite as well
func TestGormStockLedger_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ledger := NewGormStockLedger(db)
	ctx := context.Background()

	product := createPersistedProduct(t, repo)
	require.NoError(t, product.SetStock(catalog.SizeM, 5))
	require.NoError(t, repo.Save(ctx, product))

	t.Run("reserve decrements and release restores", func(t *testing.T) {
		require.NoError(t, ledger.Reserve(ctx, product.ID, catalog.SizeM, 3))

		total, err := ledger.TotalStock(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, total)

		require.NoError(t, ledger.Release(ctx, product.ID, catalog.SizeM, 3))

		total, err = ledger.TotalStock(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, total)
	})

	t.Run("over-reservation fails and leaves stock unchanged", func(t *testing.T) {
		err := ledger.Reserve(ctx, product.ID, catalog.SizeM, 6)

		require.Error(t, err)
		var stockErr *inventory.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 6, stockErr.Requested)
		assert.Equal(t, 5, stockErr.Available)

		total, err := ledger.TotalStock(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, total)
	})
}
