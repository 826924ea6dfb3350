package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/pricing"
)

// UpdatePricesRequest represents a request to set a product's tier prices
type UpdatePricesRequest struct {
	Retail         decimal.Decimal `json:"precio_minorista" binding:"required"`
	Wholesale      decimal.Decimal `json:"precio_mayorista" binding:"required"`
	SuperWholesale decimal.Decimal `json:"precio_supermayorista" binding:"required"`
}

// BulkAdjustRequest represents a percentage adjustment over a set of products
type BulkAdjustRequest struct {
	ProductIDs []uuid.UUID         `json:"producto_ids" binding:"required,min=1"`
	Percent    decimal.Decimal     `json:"porcentaje"`
	Scope      pricing.AdjustScope `json:"tipo" binding:"required"`
}

// HistoryFilter represents filter options for the price history
type HistoryFilter struct {
	From  *time.Time `form:"fechaInicio" time_format:"2006-01-02"`
	To    *time.Time `form:"fechaFin" time_format:"2006-01-02"`
	Limit int        `form:"limite" binding:"omitempty,min=1,max=500"`
}

// PriceEntryResponse represents one ledger entry in API responses
type PriceEntryResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"producto_id"`
	Retail         decimal.Decimal `json:"precio_minorista"`
	Wholesale      decimal.Decimal `json:"precio_mayorista"`
	SuperWholesale decimal.Decimal `json:"precio_supermayorista"`
	AuthorID       uuid.UUID       `json:"usuario_id"`
	CreatedAt      time.Time       `json:"fecha"`
}

// BulkAdjustResponse summarizes a bulk adjustment
type BulkAdjustResponse struct {
	Adjusted int                 `json:"productos_ajustados"`
	Percent  decimal.Decimal     `json:"porcentaje"`
	Scope    pricing.AdjustScope `json:"tipo"`
}

// ToPriceEntryResponse converts a ledger entry to its API representation
func ToPriceEntryResponse(entry *pricing.PriceEntry) PriceEntryResponse {
	return PriceEntryResponse{
		ID:             entry.ID,
		ProductID:      entry.ProductID,
		Retail:         entry.Retail,
		Wholesale:      entry.Wholesale,
		SuperWholesale: entry.SuperWholesale,
		AuthorID:       entry.AuthorID,
		CreatedAt:      entry.CreatedAt,
	}
}
