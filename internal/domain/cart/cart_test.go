package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkthread/backend/internal/domain/catalog"
)

func createTestItem(t *testing.T, productID uuid.UUID, size catalog.Size, qty int, price float64) LineItem {
	t.Helper()
	item, err := NewLineItem(productID, size, Color{Name: "Black", Code: "#000000"}, NoCustomization(), qty, decimal.NewFromFloat(price))
	require.NoError(t, err)
	return *item
}

// ============================================
// LineItem Tests
// ============================================

func TestNewLineItem(t *testing.T) {
	productID := uuid.New()

	t.Run("creates item with valid inputs", func(t *testing.T) {
		item, err := NewLineItem(productID, catalog.SizeM, Color{Name: "White", Code: "#FFFFFF"}, NoCustomization(), 2, decimal.NewFromFloat(19.99))
		require.NoError(t, err)
		assert.Equal(t, 2, item.Quantity)
		assert.NotEqual(t, uuid.Nil, item.ID)
	})

	t.Run("clamps quantity above the cap", func(t *testing.T) {
		item, err := NewLineItem(productID, catalog.SizeM, Color{}, NoCustomization(), 25, decimal.NewFromInt(10))
		require.NoError(t, err)
		assert.Equal(t, MaxQuantityPerItem, item.Quantity)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewLineItem(productID, catalog.SizeM, Color{}, NoCustomization(), 0, decimal.NewFromInt(10))
		require.Error(t, err)
	})

	t.Run("rejects nil product", func(t *testing.T) {
		_, err := NewLineItem(uuid.Nil, catalog.SizeM, Color{}, NoCustomization(), 1, decimal.NewFromInt(10))
		require.Error(t, err)
	})

	t.Run("rejects unknown size", func(t *testing.T) {
		_, err := NewLineItem(productID, catalog.Size("GIANT"), Color{}, NoCustomization(), 1, decimal.NewFromInt(10))
		require.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewLineItem(productID, catalog.SizeM, Color{}, NoCustomization(), 1, decimal.NewFromInt(-1))
		require.Error(t, err)
	})
}

func TestLineItem_Fingerprint(t *testing.T) {
	productID := uuid.New()

	t.Run("same configuration yields same fingerprint", func(t *testing.T) {
		a := createTestItem(t, productID, catalog.SizeM, 1, 19.99)
		b := createTestItem(t, productID, catalog.SizeM, 5, 24.99)
		// quantity and captured price are not part of the identity
		assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	})

	t.Run("differs by product", func(t *testing.T) {
		a := createTestItem(t, productID, catalog.SizeM, 1, 19.99)
		b := createTestItem(t, uuid.New(), catalog.SizeM, 1, 19.99)
		assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	})

	t.Run("differs by size", func(t *testing.T) {
		a := createTestItem(t, productID, catalog.SizeM, 1, 19.99)
		b := createTestItem(t, productID, catalog.SizeL, 1, 19.99)
		assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	})

	t.Run("differs by color code", func(t *testing.T) {
		a := createTestItem(t, productID, catalog.SizeM, 1, 19.99)
		b := a
		b.Color = Color{Name: "Black", Code: "#111111"}
		assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	})

	t.Run("differs by customization", func(t *testing.T) {
		a := createTestItem(t, productID, catalog.SizeM, 1, 19.99)
		b := a
		b.Customization = Customization{
			HasCustomization: true,
			Text:             "CREW 2026",
			TextPosition:     TextPositionBack,
		}
		assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	})
}

// ============================================
// Customization Tests
// ============================================

func TestCustomization_Equals(t *testing.T) {
	a := Customization{HasCustomization: true, Text: "Hello", TextColor: "#FF0000", TextPosition: TextPositionFront}
	b := Customization{HasCustomization: true, Text: "Hello", TextColor: "#FF0000", TextPosition: TextPositionFront}
	c := Customization{HasCustomization: true, Text: "Hello", TextColor: "#FF0001", TextPosition: TextPositionFront}

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.True(t, NoCustomization().Equals(Customization{}))
}

func TestCustomization_Validate(t *testing.T) {
	tests := []struct {
		name    string
		c       Customization
		wantErr bool
	}{
		{"empty customization", NoCustomization(), false},
		{"text customization", Customization{HasCustomization: true, Text: "Hi", TextPosition: TextPositionFront}, false},
		{"design only", Customization{HasCustomization: true, SelectedDesignRef: "design-7"}, false},
		{"flag without content", Customization{HasCustomization: true}, true},
		{"content without flag", Customization{Text: "Hi"}, true},
		{"bad text position", Customization{HasCustomization: true, Text: "Hi", TextPosition: "collar"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// ============================================
// Cart Tests
// ============================================

func TestCart_AddItem(t *testing.T) {
	productID := uuid.New()

	t.Run("appends distinct configurations", func(t *testing.T) {
		c := NewCart("user-1")
		c.AddItem(createTestItem(t, productID, catalog.SizeM, 2, 19.99))
		c.AddItem(createTestItem(t, productID, catalog.SizeL, 1, 19.99))

		assert.Len(t, c.Items, 2)
		assert.Equal(t, 3, c.TotalItems)
		assert.True(t, c.TotalPrice.Equal(decimal.NewFromFloat(59.97)))
	})

	t.Run("merges equal fingerprints instead of duplicating", func(t *testing.T) {
		c := NewCart("user-1")
		item := createTestItem(t, productID, catalog.SizeM, 3, 19.99)
		c.AddItem(item)
		c.AddItem(item)

		require.Len(t, c.Items, 1)
		assert.Equal(t, 6, c.Items[0].Quantity)
	})

	t.Run("merge truncates at the quantity cap", func(t *testing.T) {
		c := NewCart("user-1")
		item := createTestItem(t, productID, catalog.SizeM, 8, 19.99)
		c.AddItem(item)
		c.AddItem(item)

		require.Len(t, c.Items, 1)
		assert.Equal(t, MaxQuantityPerItem, c.Items[0].Quantity)
		assert.Equal(t, MaxQuantityPerItem, c.TotalItems)
	})

	t.Run("no two items ever share a fingerprint", func(t *testing.T) {
		c := NewCart("user-1")
		for i := 0; i < 20; i++ {
			c.AddItem(createTestItem(t, productID, catalog.SizeM, 1, 19.99))
			c.AddItem(createTestItem(t, productID, catalog.SizeL, 1, 19.99))
		}

		seen := make(map[string]bool)
		for idx := range c.Items {
			fp := c.Items[idx].Fingerprint()
			require.False(t, seen[fp], "duplicate fingerprint in cart")
			seen[fp] = true
		}
	})

	t.Run("touches last modified", func(t *testing.T) {
		c := NewCart("user-1")
		before := c.LastModified
		c.AddItem(createTestItem(t, productID, catalog.SizeM, 1, 19.99))
		assert.False(t, c.LastModified.Before(before))
	})
}

func TestCart_UpdateQuantity(t *testing.T) {
	productID := uuid.New()

	t.Run("updates in place with clamping", func(t *testing.T) {
		c := NewCart("user-1")
		c.AddItem(createTestItem(t, productID, catalog.SizeM, 2, 10))
		itemID := c.Items[0].ID

		require.NoError(t, c.UpdateQuantity(itemID, 7))
		assert.Equal(t, 7, c.Items[0].Quantity)

		require.NoError(t, c.UpdateQuantity(itemID, 99))
		assert.Equal(t, MaxQuantityPerItem, c.Items[0].Quantity)
	})

	t.Run("zero or negative removes the item", func(t *testing.T) {
		c := NewCart("user-1")
		c.AddItem(createTestItem(t, productID, catalog.SizeM, 2, 10))
		itemID := c.Items[0].ID

		require.NoError(t, c.UpdateQuantity(itemID, 0))
		assert.True(t, c.IsEmpty())
		assert.Equal(t, 0, c.TotalItems)
		assert.True(t, c.TotalPrice.IsZero())
	})

	t.Run("unknown item returns error", func(t *testing.T) {
		c := NewCart("user-1")
		require.Error(t, c.UpdateQuantity(uuid.New(), 3))
	})
}

func TestCart_RemoveAndClear(t *testing.T) {
	productID := uuid.New()
	c := NewCart("user-1")
	c.AddItem(createTestItem(t, productID, catalog.SizeM, 2, 10))
	c.AddItem(createTestItem(t, productID, catalog.SizeL, 1, 10))

	require.NoError(t, c.RemoveItem(c.Items[0].ID))
	assert.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.TotalItems)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.TotalPrice.IsZero())

	require.Error(t, c.RemoveItem(uuid.New()))
}

func TestCart_Clone(t *testing.T) {
	productID := uuid.New()
	c := NewCart("user-1")
	c.AddItem(createTestItem(t, productID, catalog.SizeM, 2, 10))

	clone := c.Clone()
	clone.Items[0].Quantity = 9
	clone.AddItem(createTestItem(t, productID, catalog.SizeL, 1, 10))

	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Len(t, c.Items, 1)
}
