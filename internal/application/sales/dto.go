package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/pricing"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/sales"
)

// CreateSaleRequest represents a request to register a sale
type CreateSaleRequest struct {
	CustomerID    uuid.UUID             `json:"cliente_id" binding:"required"`
	Tier          pricing.Tier          `json:"tipo_venta" binding:"omitempty,tier"`
	PaymentMethod sales.PaymentMethod   `json:"forma_pago" binding:"required"`
	DiscountPct   decimal.Decimal       `json:"descuento_porcentaje"`
	Lines         []CreateSaleLineInput `json:"items" binding:"required,min=1,dive"`
}

// CreateSaleLineInput represents one requested line of a sale. Clients
// may send a unit price for display purposes but it is never trusted:
// the price charged always comes from the ledger at registration time.
type CreateSaleLineInput struct {
	ProductID uuid.UUID       `json:"producto_id" binding:"required"`
	Quantity  decimal.Decimal `json:"cantidad" binding:"required"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
}

// SaleListFilter represents filter options for the sale list
type SaleListFilter struct {
	CustomerID *uuid.UUID    `form:"cliente_id"`
	SellerID   *uuid.UUID    `form:"vendedor_id"`
	Tier       *pricing.Tier `form:"tipo_venta"`
	StartDate  *time.Time    `form:"desde" time_format:"2006-01-02"`
	EndDate    *time.Time    `form:"hasta" time_format:"2006-01-02"`
	Page       int           `form:"page" binding:"omitempty,min=1"`
	PageSize   int           `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// SaleLineResponse represents one line of a sale in API responses
type SaleLineResponse struct {
	ProductID   uuid.UUID       `json:"producto_id"`
	ProductName string          `json:"producto"`
	Unit        string          `json:"unidad"`
	Quantity    decimal.Decimal `json:"cantidad"`
	UnitPrice   decimal.Decimal `json:"precio_unitario"`
	VATPercent  decimal.Decimal `json:"iva"`
	LineTotal   decimal.Decimal `json:"subtotal"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID             uuid.UUID           `json:"id"`
	Number         int64               `json:"numero"`
	CustomerID     uuid.UUID           `json:"cliente_id"`
	CustomerName   string              `json:"cliente"`
	SellerID       uuid.UUID           `json:"vendedor_id"`
	Tier           pricing.Tier        `json:"tipo_venta"`
	PaymentMethod  sales.PaymentMethod `json:"forma_pago"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	DiscountPct    decimal.Decimal     `json:"descuento_porcentaje"`
	DiscountAmount decimal.Decimal     `json:"monto_descuento"`
	Total          decimal.Decimal     `json:"total"`
	Lines          []SaleLineResponse  `json:"items"`
	CreatedAt      time.Time           `json:"fecha"`
}

// ToSaleResponse converts a sale aggregate to its API representation
func ToSaleResponse(sale *sales.Sale) SaleResponse {
	lines := make([]SaleLineResponse, len(sale.Lines))
	for i, line := range sale.Lines {
		lines[i] = SaleLineResponse{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Unit:        line.Unit,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			VATPercent:  line.VATPercent,
			LineTotal:   line.LineTotal,
		}
	}
	return SaleResponse{
		ID:             sale.ID,
		Number:         sale.Number,
		CustomerID:     sale.CustomerID,
		CustomerName:   sale.CustomerName,
		SellerID:       sale.SellerID,
		Tier:           sale.Tier,
		PaymentMethod:  sale.PaymentMethod,
		Subtotal:       sale.Subtotal,
		DiscountPct:    sale.DiscountPct,
		DiscountAmount: sale.DiscountAmount,
		Total:          sale.Total,
		Lines:          lines,
		CreatedAt:      sale.CreatedAt,
	}
}
