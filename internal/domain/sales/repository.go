package sales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/pricing"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/shared"
)

// SaleFilter bounds a sale listing query
type SaleFilter struct {
	CustomerID *uuid.UUID
	SellerID   *uuid.UUID
	Tier       *pricing.Tier
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}

// SaleRepository is the persistence port for sales.
//
// Create is the transaction engine of the sales core: it inserts the
// sale with its lines, decrements stock for every line with a guard
// against overselling, and writes one stock movement per line, all
// inside a single database transaction. Any failure rolls back the
// whole commit and the sale does not exist.
type SaleRepository interface {
	Create(ctx context.Context, sale *Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindAll(ctx context.Context, filter SaleFilter) (*shared.Paginated[Sale], error)
}
