package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/shared"
)

// PriceEntry is one immutable row of the append-only price ledger.
// The current price of a product is the entry with the latest CreatedAt;
// a price change always inserts a new row, existing rows are never
// updated or deleted.
type PriceEntry struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_price_entries_product_created,priority:1"`
	Retail         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Wholesale      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SuperWholesale decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AuthorID       uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt      time.Time       `gorm:"not null;index:idx_price_entries_product_created,priority:2,sort:desc"`
}

// TableName returns the table name for GORM
func (PriceEntry) TableName() string {
	return "price_entries"
}

// NewPriceEntry creates a new ledger entry for a product.
// All three tier prices must be positive; an entry with a zero or
// negative tier would be unusable at sale time.
func NewPriceEntry(productID, authorID uuid.UUID, retail, wholesale, superWholesale decimal.Decimal) (*PriceEntry, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if authorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Author user ID cannot be empty")
	}
	for _, p := range []struct {
		tier  Tier
		price decimal.Decimal
	}{
		{TierMinorista, retail},
		{TierMayorista, wholesale},
		{TierSupermayorista, superWholesale},
	} {
		if p.price.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainErrorf("INVALID_PRICE", "Price for tier %s must be positive", p.tier)
		}
	}

	return &PriceEntry{
		ID:             uuid.New(),
		ProductID:      productID,
		Retail:         retail,
		Wholesale:      wholesale,
		SuperWholesale: superWholesale,
		AuthorID:       authorID,
		CreatedAt:      time.Now(),
	}, nil
}

// PriceFor returns the price stored for the given tier
func (e *PriceEntry) PriceFor(tier Tier) decimal.Decimal {
	switch tier {
	case TierMayorista:
		return e.Wholesale
	case TierSupermayorista:
		return e.SuperWholesale
	default:
		return e.Retail
	}
}

// IsTierOrdered reports whether retail >= wholesale >= super-wholesale.
// This is a data-quality check, not a hard invariant: historic data
// contains non-monotonic entries, so writes only enforce it when the
// strict mode is enabled in configuration.
func (e *PriceEntry) IsTierOrdered() bool {
	return e.Retail.GreaterThanOrEqual(e.Wholesale) &&
		e.Wholesale.GreaterThanOrEqual(e.SuperWholesale)
}

// Adjusted returns a new entry (for the same product) with the scoped
// tiers multiplied by (1 + percent/100) and out-of-scope tiers carried
// forward unchanged. Entries are whole snapshots, not per-tier deltas.
func (e *PriceEntry) Adjusted(authorID uuid.UUID, percent decimal.Decimal, scope AdjustScope) (*PriceEntry, error) {
	factor := decimal.NewFromInt(1).Add(percent.Div(decimal.NewFromInt(100)))

	retail := e.Retail
	wholesale := e.Wholesale
	superWholesale := e.SuperWholesale

	if scope.Includes(TierMinorista) {
		retail = retail.Mul(factor).Round(4)
	}
	if scope.Includes(TierMayorista) {
		wholesale = wholesale.Mul(factor).Round(4)
	}
	if scope.Includes(TierSupermayorista) {
		superWholesale = superWholesale.Mul(factor).Round(4)
	}

	return NewPriceEntry(e.ProductID, authorID, retail, wholesale, superWholesale)
}
