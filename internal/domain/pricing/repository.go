package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// HistoryFilter bounds a price history query
type HistoryFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// PriceEntryRepository is the persistence port for the price ledger.
// The ledger is append-only: there is no update or delete operation.
type PriceEntryRepository interface {
	// FindCurrentByProduct returns the latest entry for a product, or
	// shared.ErrNotFound when the product has no configured prices.
	FindCurrentByProduct(ctx context.Context, productID uuid.UUID) (*PriceEntry, error)

	// FindCurrentByProducts returns the latest entry per product in a
	// single query so all results come from one statement snapshot.
	// Products without entries are simply absent from the result map.
	FindCurrentByProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*PriceEntry, error)

	// FindHistory returns entries for a product ordered by CreatedAt
	// descending, bounded by the filter.
	FindHistory(ctx context.Context, productID uuid.UUID, filter HistoryFilter) ([]PriceEntry, error)

	// Save appends a single new entry to the ledger.
	Save(ctx context.Context, entry *PriceEntry) error

	// SaveBatch appends all entries in one transaction; either every
	// entry is inserted or none is.
	SaveBatch(ctx context.Context, entries []*PriceEntry) error
}
