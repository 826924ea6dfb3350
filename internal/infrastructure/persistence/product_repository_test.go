package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/shared"
)

// newMockProductRepository creates a GormProductRepository on a mocked
// SQL connection, to assert the exact SQL the postgres path emits.
func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormProductRepository(gormDB), mock, mockDB
}

func TestGormProductRepositoryFindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("finds existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "name", "unit", "list_price", "vat_percent", "stock", "min_stock", "active"}).
			AddRow(productID, "Yerba Mate 1kg", "unidad", decimal.NewFromInt(150), decimal.NewFromInt(21),
				decimal.NewFromInt(10), decimal.NewFromInt(2), true)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		product, err := repo.FindByID(ctx, productID)
		require.NoError(t, err)
		assert.Equal(t, productID, product.ID)
		assert.Equal(t, "Yerba Mate 1kg", product.Name)
		assert.True(t, product.Stock.Equal(decimal.NewFromInt(10)))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "products"`).
			WithArgs(productID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByID(ctx, productID)
		require.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestGormProductRepositoryFilters(t *testing.T) {
	ctx := context.Background()

	t.Run("search and category filter", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormProductRepository(db)

		yerba := seedProduct(t, db, "Yerba Mate 1kg", decimal.NewFromInt(10))
		require.NoError(t, db.Model(yerba).Update("category", "almacen").Error)
		harina := seedProduct(t, db, "Harina 000", decimal.NewFromInt(10))
		require.NoError(t, db.Model(harina).Update("category", "panificados").Error)

		filter := shared.DefaultFilter()
		filter.Search = "Yerba"
		products, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, yerba.ID, products[0].ID)

		filter = shared.DefaultFilter()
		filter.Filters["category"] = "panificados"
		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("low stock filter", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormProductRepository(db)

		low := seedProduct(t, db, "Aceite 1.5L", decimal.NewFromInt(1))
		require.NoError(t, db.Model(low).Update("min_stock", decimal.NewFromInt(5)).Error)
		seedProduct(t, db, "Harina 000", decimal.NewFromInt(50))

		filter := shared.DefaultFilter()
		filter.Filters["low_stock"] = true
		products, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, low.ID, products[0].ID)
	})

	t.Run("batch lookup skips missing ids", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormProductRepository(db)

		product := seedProduct(t, db, "Yerba Mate 1kg", decimal.NewFromInt(10))
		found, err := repo.FindByIDs(ctx, []uuid.UUID{product.ID, uuid.New()})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Contains(t, found, product.ID)
	})
}
