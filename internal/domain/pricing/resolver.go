package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/shared"
)

// Resolver selects the unit price applicable to a sale tier from the
// current price ledger entry of a product.
//
// There is no fallback between tiers and no fallback to the product's
// legacy list price: a product must have its tiers configured before it
// can be sold. An earlier iteration of the system silently fell back to
// the list price, which made mispriced sales impossible to detect.
type Resolver struct{}

// NewResolver creates a new Resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the unit price for the given tier.
//
// A nil entry means the product has never had prices configured and
// yields PRICING_NOT_CONFIGURED. A configured-but-non-positive tier
// price yields INVALID_PRICE. Both errors carry the product name so the
// caller can surface an actionable message.
func (r *Resolver) Resolve(productName string, entry *PriceEntry, tier Tier) (decimal.Decimal, error) {
	if !tier.IsValid() {
		return decimal.Zero, shared.NewDomainErrorf("INVALID_TIER", "Tipo de venta inválido: %q", string(tier))
	}
	if entry == nil {
		return decimal.Zero, shared.NewDomainErrorf("PRICING_NOT_CONFIGURED",
			"El producto %q no tiene precios configurados", productName)
	}

	price := entry.PriceFor(tier)
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, shared.NewDomainErrorf("INVALID_PRICE",
			"El producto %q no tiene un precio válido para el tipo %s", productName, tier)
	}

	return price, nil
}
