package pricing

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/shared"
)

func TestResolverResolve(t *testing.T) {
	resolver := NewResolver()
	entry, err := NewPriceEntry(uuid.New(), uuid.New(),
		decimal.NewFromInt(150), decimal.NewFromInt(120), decimal.NewFromInt(100))
	require.NoError(t, err)

	t.Run("resolves each tier to its ledger price", func(t *testing.T) {
		tests := []struct {
			tier Tier
			want decimal.Decimal
		}{
			{TierMinorista, decimal.NewFromInt(150)},
			{TierMayorista, decimal.NewFromInt(120)},
			{TierSupermayorista, decimal.NewFromInt(100)},
		}
		for _, tt := range tests {
			price, err := resolver.Resolve("Yerba Mate 1kg", entry, tt.tier)
			require.NoError(t, err)
			assert.True(t, price.Equal(tt.want), "tier %s: got %s", tt.tier, price)
		}
	})

	t.Run("nil entry yields pricing not configured", func(t *testing.T) {
		_, err := resolver.Resolve("Yerba Mate 1kg", nil, TierMinorista)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "PRICING_NOT_CONFIGURED", domainErr.Code)
		assert.Contains(t, domainErr.Message, "Yerba Mate 1kg")
	})

	t.Run("unknown tier is rejected", func(t *testing.T) {
		_, err := resolver.Resolve("Yerba Mate 1kg", entry, Tier("Preferencial"))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_TIER", domainErr.Code)
	})

	t.Run("no fallback between tiers", func(t *testing.T) {
		// Legacy rows can hold a zero tier; resolution must fail rather
		// than silently use another tier's price.
		legacy := &PriceEntry{
			ID:        uuid.New(),
			ProductID: uuid.New(),
			Retail:    decimal.NewFromInt(150),
			Wholesale: decimal.Zero,
		}
		_, err := resolver.Resolve("Harina 000", legacy, TierMayorista)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_PRICE", domainErr.Code)
		assert.Contains(t, domainErr.Message, "Harina 000")
		assert.Contains(t, domainErr.Message, "Mayorista")
	})
}

func TestAdjustScope(t *testing.T) {
	t.Run("todos includes every tier", func(t *testing.T) {
		for _, tier := range []Tier{TierMinorista, TierMayorista, TierSupermayorista} {
			assert.True(t, ScopeTodos.Includes(tier))
		}
	})

	t.Run("single scope includes only its tier", func(t *testing.T) {
		assert.True(t, ScopeMayorista.Includes(TierMayorista))
		assert.False(t, ScopeMayorista.Includes(TierMinorista))
		assert.False(t, ScopeMayorista.Includes(TierSupermayorista))
	})

	t.Run("unknown scope is invalid", func(t *testing.T) {
		assert.False(t, AdjustScope("mayoristas").IsValid())
		assert.True(t, ScopeTodos.IsValid())
	})
}
