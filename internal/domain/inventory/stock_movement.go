package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/shared"
)

// MovementKind is the direction of a stock movement
type MovementKind string

const (
	// MovementEgreso is stock leaving the warehouse (sales, shrinkage)
	MovementEgreso MovementKind = "Egreso"
	// MovementIngreso is stock entering the warehouse (purchases, returns)
	MovementIngreso MovementKind = "Ingreso"
)

// IsValid checks if the kind is a known MovementKind
func (k MovementKind) IsValid() bool {
	return k == MovementEgreso || k == MovementIngreso
}

// Movement reasons. Reasons are free-form in the database but the sales
// core only ever writes these.
const (
	ReasonVenta      = "Venta"
	ReasonCompra     = "Compra"
	ReasonAjuste     = "Ajuste"
	ReasonDevolucion = "Devolución"
)

// StockMovement is one immutable audit row of the stock journal. Every
// change to a product's stock writes exactly one movement in the same
// transaction, so the journal replays to the current stock level.
type StockMovement struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_movements_product_created,priority:1"`
	Kind      MovementKind    `gorm:"type:varchar(10);not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason    string          `gorm:"type:varchar(50);not null"`
	Note      string          `gorm:"type:varchar(200)"`
	AuthorID  uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt time.Time       `gorm:"not null;index:idx_stock_movements_product_created,priority:2,sort:desc"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a new movement row. Quantity is always
// positive; the direction is carried by Kind.
func NewStockMovement(productID, authorID uuid.UUID, kind MovementKind, quantity decimal.Decimal, reason, note string) (*StockMovement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if authorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Author user ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainErrorf("INVALID_MOVEMENT_KIND", "Unknown movement kind %q", string(kind))
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity must be positive")
	}
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Movement reason cannot be empty")
	}

	return &StockMovement{
		ID:        uuid.New(),
		ProductID: productID,
		Kind:      kind,
		Quantity:  quantity,
		Reason:    reason,
		Note:      note,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}, nil
}

// MovementFilter bounds a stock journal query
type MovementFilter struct {
	ProductID *uuid.UUID
	Kind      *MovementKind
	From      *time.Time
	To        *time.Time
	Limit     int
}

// StockMovementRepository is the persistence port for the stock journal.
// The journal is append-only; movements written by the sale transaction
// go through the sale repository, not through Apply.
type StockMovementRepository interface {
	FindAll(ctx context.Context, filter MovementFilter) ([]StockMovement, error)

	// Apply inserts the movement and adjusts the product's stock in one
	// transaction. An Egreso that would drive stock negative fails with
	// INSUFFICIENT_STOCK and writes nothing.
	Apply(ctx context.Context, movement *StockMovement) error
}
