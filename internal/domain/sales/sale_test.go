package sales

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/pricing"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/shared"
)

func lineInput(name string, qty, price float64) LineInput {
	return LineInput{
		ProductID:   uuid.New(),
		ProductName: name,
		Unit:        "unidad",
		Quantity:    decimal.NewFromFloat(qty),
		UnitPrice:   decimal.NewFromFloat(price),
		VATPercent:  decimal.NewFromInt(21),
	}
}

func TestNewSale(t *testing.T) {
	customerID := uuid.New()
	sellerID := uuid.New()

	t.Run("computes totals from lines", func(t *testing.T) {
		sale, err := NewSale(customerID, "Almacén Don José", sellerID, pricing.TierMinorista, PaymentEfectivo,
			decimal.Zero, []LineInput{
				lineInput("Yerba Mate 1kg", 2, 150),
				lineInput("Harina 000", 3, 90.50),
			})
		require.NoError(t, err)
		require.NotNil(t, sale)

		assert.True(t, sale.Subtotal.Equal(decimal.NewFromFloat(571.50)), "got %s", sale.Subtotal)
		assert.True(t, sale.DiscountAmount.IsZero())
		assert.True(t, sale.Total.Equal(decimal.NewFromFloat(571.50)))
		require.Len(t, sale.Lines, 2)
		assert.True(t, sale.Lines[0].LineTotal.Equal(decimal.NewFromInt(300)))
		assert.True(t, sale.Lines[1].LineTotal.Equal(decimal.NewFromFloat(271.50)))
		for _, line := range sale.Lines {
			assert.Equal(t, sale.ID, line.SaleID)
		}
	})

	t.Run("applies the discount to the subtotal", func(t *testing.T) {
		sale, err := NewSale(customerID, "Almacén Don José", sellerID, pricing.TierMayorista, PaymentTarjeta,
			decimal.NewFromInt(10), []LineInput{lineInput("Yerba Mate 1kg", 4, 120)})
		require.NoError(t, err)

		assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(480)))
		assert.True(t, sale.DiscountAmount.Equal(decimal.NewFromInt(48)))
		assert.True(t, sale.Total.Equal(decimal.NewFromInt(432)))
	})

	t.Run("rounds line totals to cents", func(t *testing.T) {
		sale, err := NewSale(customerID, "Almacén Don José", sellerID, pricing.TierMinorista, PaymentEfectivo,
			decimal.Zero, []LineInput{lineInput("Queso cremoso", 0.333, 1250.75)})
		require.NoError(t, err)

		// 0.333 * 1250.75 = 416.49975 -> 416.50
		assert.True(t, sale.Lines[0].LineTotal.Equal(decimal.NewFromFloat(416.50)),
			"got %s", sale.Lines[0].LineTotal)
		assert.True(t, sale.Total.Equal(decimal.NewFromFloat(416.50)))
	})

	t.Run("freezes unit price and VAT on the line", func(t *testing.T) {
		in := lineInput("Yerba Mate 1kg", 1, 150)
		sale, err := NewSale(customerID, "Almacén Don José", sellerID, pricing.TierMinorista, PaymentEfectivo,
			decimal.Zero, []LineInput{in})
		require.NoError(t, err)

		line := sale.Lines[0]
		assert.Equal(t, in.ProductName, line.ProductName)
		assert.True(t, line.UnitPrice.Equal(in.UnitPrice))
		assert.True(t, line.VATPercent.Equal(decimal.NewFromInt(21)))
	})

	t.Run("freezes customer name and unit for the receipt", func(t *testing.T) {
		in := lineInput("Queso cremoso", 0.5, 1250)
		in.Unit = "kg"
		sale, err := NewSale(customerID, "Almacén Don José", sellerID, pricing.TierMinorista, PaymentEfectivo,
			decimal.Zero, []LineInput{in})
		require.NoError(t, err)

		assert.Equal(t, "Almacén Don José", sale.CustomerName)
		assert.Equal(t, "kg", sale.Lines[0].Unit)
	})

	t.Run("fails with empty customer name", func(t *testing.T) {
		_, err := NewSale(customerID, "", sellerID, pricing.TierMinorista, PaymentEfectivo,
			decimal.Zero, []LineInput{lineInput("Yerba Mate 1kg", 1, 150)})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_CUSTOMER", domainErr.Code)
	})

	t.Run("fails with no lines", func(t *testing.T) {
		_, err := NewSale(customerID, "Almacén Don José", sellerID, pricing.TierMinorista, PaymentEfectivo,
			decimal.Zero, nil)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "EMPTY_SALE", domainErr.Code)
	})

	t.Run("fails with repeated product", func(t *testing.T) {
		in := lineInput("Yerba Mate 1kg", 1, 150)
		_, err := NewSale(customerID, "Almacén Don José", sellerID, pricing.TierMinorista, PaymentEfectivo,
			decimal.Zero, []LineInput{in, in})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "DUPLICATE_PRODUCT", domainErr.Code)
	})

	t.Run("fails with quantity below minimum", func(t *testing.T) {
		in := lineInput("Queso cremoso", 0.0005, 1250)
		_, err := NewSale(customerID, "Almacén Don José", sellerID, pricing.TierMinorista, PaymentEfectivo,
			decimal.Zero, []LineInput{in})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "0.001")
	})

	t.Run("accepts the minimum quantity", func(t *testing.T) {
		in := lineInput("Queso cremoso", 0.001, 1250)
		_, err := NewSale(customerID, "Almacén Don José", sellerID, pricing.TierMinorista, PaymentEfectivo,
			decimal.Zero, []LineInput{in})
		require.NoError(t, err)
	})

	t.Run("fails with non-positive unit price", func(t *testing.T) {
		in := lineInput("Yerba Mate 1kg", 1, 0)
		_, err := NewSale(customerID, "Almacén Don José", sellerID, pricing.TierMinorista, PaymentEfectivo,
			decimal.Zero, []LineInput{in})
		require.Error(t, err)
	})

	t.Run("fails with discount over 100", func(t *testing.T) {
		_, err := NewSale(customerID, "Almacén Don José", sellerID, pricing.TierMinorista, PaymentEfectivo,
			decimal.NewFromInt(101), []LineInput{lineInput("Yerba Mate 1kg", 1, 150)})
		require.Error(t, err)
	})

	t.Run("fails with negative discount", func(t *testing.T) {
		_, err := NewSale(customerID, "Almacén Don José", sellerID, pricing.TierMinorista, PaymentEfectivo,
			decimal.NewFromInt(-1), []LineInput{lineInput("Yerba Mate 1kg", 1, 150)})
		require.Error(t, err)
	})

	t.Run("fails with unknown payment method", func(t *testing.T) {
		_, err := NewSale(customerID, "Almacén Don José", sellerID, pricing.TierMinorista, PaymentMethod("Cheque"),
			decimal.Zero, []LineInput{lineInput("Yerba Mate 1kg", 1, 150)})
		require.Error(t, err)
	})

	t.Run("fails with unknown tier", func(t *testing.T) {
		_, err := NewSale(customerID, "Almacén Don José", sellerID, pricing.Tier("VIP"), PaymentEfectivo,
			decimal.Zero, []LineInput{lineInput("Yerba Mate 1kg", 1, 150)})
		require.Error(t, err)
	})
}
