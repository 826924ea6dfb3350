package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("Yerba Mate 1kg", "unidad",
			decimal.NewFromFloat(150), decimal.NewFromInt(21))
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "Yerba Mate 1kg", product.Name)
		assert.Equal(t, "unidad", product.Unit)
		assert.True(t, product.ListPrice.Equal(decimal.NewFromInt(150)))
		assert.True(t, product.VATPercent.Equal(decimal.NewFromInt(21)))
		assert.True(t, product.Stock.IsZero())
		assert.True(t, product.Active)
		assert.NotEmpty(t, product.ID)
	})

	t.Run("trims the name", func(t *testing.T) {
		product, err := NewProduct("  Harina 000  ", "kg",
			decimal.NewFromInt(90), decimal.NewFromInt(21))
		require.NoError(t, err)
		assert.Equal(t, "Harina 000", product.Name)
	})

	t.Run("defaults the unit", func(t *testing.T) {
		product, err := NewProduct("Harina 000", "",
			decimal.NewFromInt(90), decimal.NewFromInt(21))
		require.NoError(t, err)
		assert.Equal(t, "unidad", product.Unit)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("   ", "kg", decimal.NewFromInt(90), decimal.NewFromInt(21))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with negative list price", func(t *testing.T) {
		_, err := NewProduct("Harina 000", "kg", decimal.NewFromInt(-1), decimal.NewFromInt(21))
		require.Error(t, err)
	})

	t.Run("fails with negative VAT", func(t *testing.T) {
		_, err := NewProduct("Harina 000", "kg", decimal.NewFromInt(90), decimal.NewFromInt(-21))
		require.Error(t, err)
	})
}

func TestProductCanFulfill(t *testing.T) {
	product, err := NewProduct("Azúcar 1kg", "unidad", decimal.NewFromInt(80), decimal.NewFromInt(21))
	require.NoError(t, err)
	product.Stock = decimal.NewFromFloat(10.5)

	assert.True(t, product.CanFulfill(decimal.NewFromInt(10)))
	assert.True(t, product.CanFulfill(decimal.NewFromFloat(10.5)))
	assert.False(t, product.CanFulfill(decimal.NewFromFloat(10.501)))
}

func TestProductIsBelowMinimum(t *testing.T) {
	product, err := NewProduct("Azúcar 1kg", "unidad", decimal.NewFromInt(80), decimal.NewFromInt(21))
	require.NoError(t, err)

	t.Run("no threshold configured", func(t *testing.T) {
		product.Stock = decimal.Zero
		product.MinStock = decimal.Zero
		assert.False(t, product.IsBelowMinimum())
	})

	t.Run("stock under threshold", func(t *testing.T) {
		product.MinStock = decimal.NewFromInt(5)
		product.Stock = decimal.NewFromInt(4)
		assert.True(t, product.IsBelowMinimum())
	})

	t.Run("stock at threshold", func(t *testing.T) {
		product.Stock = decimal.NewFromInt(5)
		assert.False(t, product.IsBelowMinimum())
	})
}

func TestProductActivation(t *testing.T) {
	product, err := NewProduct("Azúcar 1kg", "unidad", decimal.NewFromInt(80), decimal.NewFromInt(21))
	require.NoError(t, err)

	product.Deactivate()
	assert.False(t, product.Active)

	product.Activate()
	assert.True(t, product.Active)
}
