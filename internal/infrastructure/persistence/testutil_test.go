package persistence

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/catalog"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/identity"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/inventory"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/partner"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/pricing"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/sales"
)

// newTestDB opens an in-memory SQLite database with the full schema.
// SQLite honors the same guarded-update semantics the production
// Postgres path relies on, so the transactional tests are meaningful.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&catalog.Product{},
		&partner.Customer{},
		&pricing.PriceEntry{},
		&sales.Sale{},
		&sales.SaleLine{},
		&inventory.StockMovement{},
		&identity.User{},
	)
	require.NoError(t, err)

	return db
}

// seedProduct inserts a product with the given stock
func seedProduct(t *testing.T, db *gorm.DB, name string, stock decimal.Decimal) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "unidad", decimal.NewFromInt(100), decimal.NewFromInt(21))
	require.NoError(t, err)
	product.Stock = stock
	require.NoError(t, db.Create(product).Error)
	return product
}

// seedCustomer inserts a customer with the given tier
func seedCustomer(t *testing.T, db *gorm.DB, tier pricing.Tier) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer("Almacén Don José", tier)
	require.NoError(t, err)
	require.NoError(t, db.Create(customer).Error)
	return customer
}

// seedPriceEntry appends a ledger entry for a product
func seedPriceEntry(t *testing.T, db *gorm.DB, productID uuid.UUID, retail, wholesale, super int64) *pricing.PriceEntry {
	t.Helper()
	entry, err := pricing.NewPriceEntry(productID, uuid.New(),
		decimal.NewFromInt(retail), decimal.NewFromInt(wholesale), decimal.NewFromInt(super))
	require.NoError(t, err)
	require.NoError(t, db.Create(entry).Error)
	return entry
}
