package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/shared"
)

// Product represents a sellable article in the catalog.
//
// Stock is the single mutable aggregate of the sales core: it is only
// decremented by the sale commit path, always together with a stock
// movement row in the same transaction. Tier prices live in the price
// ledger, not here; ListPrice is the legacy list price kept for
// reference and reporting only.
type Product struct {
	shared.BaseEntity
	Name        string          `gorm:"type:varchar(200);not null;index"`
	Description string          `gorm:"type:text"`
	Category    string          `gorm:"type:varchar(100);index"`
	Unit        string          `gorm:"type:varchar(20);not null;default:'unidad'"`
	ListPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	VATPercent  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:21"`
	Stock       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinStock    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Active      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product
func NewProduct(name, unit string, listPrice, vatPercent decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if unit == "" {
		unit = "unidad"
	}
	if listPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "List price cannot be negative")
	}
	if vatPercent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VAT", "VAT percent cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Unit:       unit,
		ListPrice:  listPrice,
		VATPercent: vatPercent,
		Active:     true,
	}, nil
}

// CanFulfill reports whether on-hand stock covers the requested quantity
func (p *Product) CanFulfill(quantity decimal.Decimal) bool {
	return p.Stock.GreaterThanOrEqual(quantity)
}

// IsBelowMinimum reports whether stock has fallen below the minimum threshold
func (p *Product) IsBelowMinimum() bool {
	return p.MinStock.GreaterThan(decimal.Zero) && p.Stock.LessThan(p.MinStock)
}

// Deactivate marks the product as no longer sellable
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}

// Activate marks the product as sellable again
func (p *Product) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
}

// ProductRepository is the persistence port for products.
//
// The sales core treats the catalog as read-only master data except for
// the stock column, which is mutated exclusively by the sale repository
// inside the sale transaction.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByIDs returns the products for the given IDs; missing IDs are
	// simply absent from the result map.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, product *Product) error
}
