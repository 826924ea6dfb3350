package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/pricing"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer with valid inputs", func(t *testing.T) {
		customer, err := NewCustomer("Almacén Don José", pricing.TierMayorista)
		require.NoError(t, err)
		require.NotNil(t, customer)

		assert.Equal(t, "Almacén Don José", customer.Name)
		assert.Equal(t, pricing.TierMayorista, customer.Tier)
		assert.True(t, customer.Active)
		assert.NotEmpty(t, customer.ID)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCustomer("  ", pricing.TierMinorista)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with unknown tier", func(t *testing.T) {
		_, err := NewCustomer("Almacén Don José", pricing.Tier("Preferencial"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Preferencial")
	})
}

func TestCustomerChangeTier(t *testing.T) {
	customer, err := NewCustomer("Almacén Don José", pricing.TierMinorista)
	require.NoError(t, err)

	t.Run("changes to a valid tier", func(t *testing.T) {
		require.NoError(t, customer.ChangeTier(pricing.TierSupermayorista))
		assert.Equal(t, pricing.TierSupermayorista, customer.Tier)
	})

	t.Run("rejects an unknown tier", func(t *testing.T) {
		err := customer.ChangeTier(pricing.Tier("VIP"))
		require.Error(t, err)
		assert.Equal(t, pricing.TierSupermayorista, customer.Tier)
	})
}

func TestCustomerActivation(t *testing.T) {
	customer, err := NewCustomer("Almacén Don José", pricing.TierMinorista)
	require.NoError(t, err)

	customer.Deactivate()
	assert.False(t, customer.Active)

	customer.Activate()
	assert.True(t, customer.Active)
}
