package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/pricing"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/shared"
)

// GormPriceEntryRepository implements pricing.PriceEntryRepository
// using GORM. The ledger table only ever sees inserts.
type GormPriceEntryRepository struct {
	db *gorm.DB
}

// NewGormPriceEntryRepository creates a new GormPriceEntryRepository
func NewGormPriceEntryRepository(db *gorm.DB) *GormPriceEntryRepository {
	return &GormPriceEntryRepository{db: db}
}

// FindCurrentByProduct returns the latest entry for a product
func (r *GormPriceEntryRepository) FindCurrentByProduct(ctx context.Context, productID uuid.UUID) (*pricing.PriceEntry, error) {
	var entry pricing.PriceEntry
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindCurrentByProducts returns the latest entry per product in one
// statement, so every returned price comes from the same snapshot.
func (r *GormPriceEntryRepository) FindCurrentByProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*pricing.PriceEntry, error) {
	result := make(map[uuid.UUID]*pricing.PriceEntry, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	var entries []pricing.PriceEntry
	latest := r.db.Model(&pricing.PriceEntry{}).
		Select("product_id, MAX(created_at) AS max_created_at").
		Where("product_id IN ?", productIDs).
		Group("product_id")

	err := r.db.WithContext(ctx).
		Joins("JOIN (?) latest ON price_entries.product_id = latest.product_id AND price_entries.created_at = latest.max_created_at", latest).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	for i := range entries {
		result[entries[i].ProductID] = &entries[i]
	}
	return result, nil
}

// FindHistory returns a product's entries newest first
func (r *GormPriceEntryRepository) FindHistory(ctx context.Context, productID uuid.UUID, filter pricing.HistoryFilter) ([]pricing.PriceEntry, error) {
	query := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC")

	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var entries []pricing.PriceEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Save appends one entry to the ledger
func (r *GormPriceEntryRepository) Save(ctx context.Context, entry *pricing.PriceEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// SaveBatch appends all entries in one transaction
func (r *GormPriceEntryRepository) SaveBatch(ctx context.Context, entries []*pricing.PriceEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(entries, 200).Error
	})
}
