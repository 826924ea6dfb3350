package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/pricing"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/shared"
)

// PaymentMethod is how the sale was paid
type PaymentMethod string

const (
	PaymentEfectivo      PaymentMethod = "Efectivo"
	PaymentTarjeta       PaymentMethod = "Tarjeta"
	PaymentTransferencia PaymentMethod = "Transferencia"
	PaymentCuentaCte     PaymentMethod = "Cuenta Corriente"
)

// IsValid checks if the method is a known PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentEfectivo, PaymentTarjeta, PaymentTransferencia, PaymentCuentaCte:
		return true
	}
	return false
}

// minQuantity is the smallest sellable quantity. Products are sold by
// weight down to the gram.
var minQuantity = decimal.NewFromFloat(0.001)

// SaleLine is one immutable detail row of a sale. UnitPrice, VATPercent
// and the product name and unit are frozen copies taken at sale time:
// later ledger entries or catalog edits never change what a past sale
// says.
type SaleLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Unit        string          `gorm:"type:varchar(20);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	VATPercent  decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (SaleLine) TableName() string {
	return "sale_lines"
}

// LineInput is the validated input for one sale line. The caller (the
// sale service) resolves the unit price from the ledger before building
// the aggregate.
type LineInput struct {
	ProductID   uuid.UUID
	ProductName string
	Unit        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	VATPercent  decimal.Decimal
}

// Sale is the immutable record of a completed sale. There is no draft
// state and no mutation after creation: a sale either commits atomically
// together with its stock effects or it does not exist. The customer
// name is frozen at sale time so a later rename never rewrites what a
// past receipt displays.
type Sale struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number         int64           `gorm:"not null;uniqueIndex"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName   string          `gorm:"type:varchar(200);not null"`
	SellerID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tier           pricing.Tier    `gorm:"type:varchar(20);not null"`
	PaymentMethod  PaymentMethod   `gorm:"type:varchar(30);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DiscountPct    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Total          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Lines          []SaleLine      `gorm:"foreignKey:SaleID"`
	CreatedAt      time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale builds the sale aggregate from priced lines and computes the
// totals:
//
//	line total = quantity * unit price, rounded to cents
//	subtotal   = sum of line totals
//	discount   = subtotal * discount% / 100, rounded to cents
//	total      = subtotal - discount
//
// VAT is already contained in the ledger prices; the per-line VAT
// percent is frozen for tax reporting, it is not added on top.
func NewSale(customerID uuid.UUID, customerName string, sellerID uuid.UUID, tier pricing.Tier, payment PaymentMethod, discountPct decimal.Decimal, inputs []LineInput) (*Sale, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name cannot be empty")
	}
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller user ID cannot be empty")
	}
	if !tier.IsValid() {
		return nil, shared.NewDomainErrorf("INVALID_TIER", "Tipo de venta inválido: %q", string(tier))
	}
	if !payment.IsValid() {
		return nil, shared.NewDomainErrorf("INVALID_PAYMENT", "Método de pago inválido: %q", string(payment))
	}
	if len(inputs) == 0 {
		return nil, shared.NewDomainError("EMPTY_SALE", "La venta debe tener al menos un producto")
	}
	if discountPct.IsNegative() || discountPct.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "El descuento debe estar entre 0 y 100")
	}

	saleID := uuid.New()
	subtotal := decimal.Zero
	lines := make([]SaleLine, 0, len(inputs))
	seen := make(map[uuid.UUID]bool, len(inputs))

	for _, in := range inputs {
		if in.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
		}
		if seen[in.ProductID] {
			return nil, shared.NewDomainErrorf("DUPLICATE_PRODUCT",
				"El producto %q aparece más de una vez en la venta", in.ProductName)
		}
		seen[in.ProductID] = true
		if in.Quantity.LessThan(minQuantity) {
			return nil, shared.NewDomainErrorf("INVALID_QUANTITY",
				"Cantidad inválida para %q: debe ser al menos 0.001", in.ProductName)
		}
		if in.UnitPrice.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainErrorf("INVALID_PRICE",
				"El producto %q no tiene un precio válido para el tipo %s", in.ProductName, tier)
		}

		lineTotal := in.Quantity.Mul(in.UnitPrice).Round(2)
		subtotal = subtotal.Add(lineTotal)

		lines = append(lines, SaleLine{
			ID:          uuid.New(),
			SaleID:      saleID,
			ProductID:   in.ProductID,
			ProductName: in.ProductName,
			Unit:        in.Unit,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			VATPercent:  in.VATPercent,
			LineTotal:   lineTotal,
		})
	}

	discountAmount := subtotal.Mul(discountPct).Div(decimal.NewFromInt(100)).Round(2)

	return &Sale{
		ID:             saleID,
		CustomerID:     customerID,
		CustomerName:   customerName,
		SellerID:       sellerID,
		Tier:           tier,
		PaymentMethod:  payment,
		Subtotal:       subtotal,
		DiscountPct:    discountPct,
		DiscountAmount: discountAmount,
		Total:          subtotal.Sub(discountAmount),
		Lines:          lines,
		CreatedAt:      time.Now(),
	}, nil
}
