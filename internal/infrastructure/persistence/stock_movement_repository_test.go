package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/catalog"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/inventory"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/shared"
)

func TestGormStockMovementRepositoryApply(t *testing.T) {
	ctx := context.Background()

	t.Run("ingreso raises stock and writes the journal row", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormStockMovementRepository(db)
		product := seedProduct(t, db, "Harina 000", decimal.NewFromInt(5))

		movement, err := inventory.NewStockMovement(product.ID, uuid.New(),
			inventory.MovementIngreso, decimal.NewFromInt(20), inventory.ReasonCompra, "Remito 0001-0042")
		require.NoError(t, err)
		require.NoError(t, repo.Apply(ctx, movement))

		var stored catalog.Product
		require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
		assert.True(t, stored.Stock.Equal(decimal.NewFromInt(25)))

		var count int64
		db.Model(&inventory.StockMovement{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("egreso below stock fails and writes nothing", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormStockMovementRepository(db)
		product := seedProduct(t, db, "Harina 000", decimal.NewFromInt(5))

		movement, err := inventory.NewStockMovement(product.ID, uuid.New(),
			inventory.MovementEgreso, decimal.NewFromInt(8), inventory.ReasonAjuste, "")
		require.NoError(t, err)

		err = repo.Apply(ctx, movement)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)

		var stored catalog.Product
		require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
		assert.True(t, stored.Stock.Equal(decimal.NewFromInt(5)))

		var count int64
		db.Model(&inventory.StockMovement{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("unknown product yields not found", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormStockMovementRepository(db)

		movement, err := inventory.NewStockMovement(uuid.New(), uuid.New(),
			inventory.MovementIngreso, decimal.NewFromInt(1), inventory.ReasonCompra, "")
		require.NoError(t, err)

		err = repo.Apply(ctx, movement)
		require.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestGormStockMovementRepositoryFindAll(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormStockMovementRepository(db)
	a := seedProduct(t, db, "Harina 000", decimal.NewFromInt(50))
	b := seedProduct(t, db, "Aceite 1.5L", decimal.NewFromInt(50))

	for _, seed := range []struct {
		productID uuid.UUID
		kind      inventory.MovementKind
		reason    string
	}{
		{a.ID, inventory.MovementIngreso, inventory.ReasonCompra},
		{a.ID, inventory.MovementEgreso, inventory.ReasonVenta},
		{b.ID, inventory.MovementEgreso, inventory.ReasonAjuste},
	} {
		movement, err := inventory.NewStockMovement(seed.productID, uuid.New(),
			seed.kind, decimal.NewFromInt(1), seed.reason, "")
		require.NoError(t, err)
		require.NoError(t, repo.Apply(ctx, movement))
	}

	t.Run("filters by product", func(t *testing.T) {
		movements, err := repo.FindAll(ctx, inventory.MovementFilter{ProductID: &a.ID})
		require.NoError(t, err)
		assert.Len(t, movements, 2)
	})

	t.Run("filters by kind", func(t *testing.T) {
		kind := inventory.MovementEgreso
		movements, err := repo.FindAll(ctx, inventory.MovementFilter{Kind: &kind})
		require.NoError(t, err)
		assert.Len(t, movements, 2)
	})

	t.Run("honors the limit", func(t *testing.T) {
		movements, err := repo.FindAll(ctx, inventory.MovementFilter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, movements, 1)
	})
}
