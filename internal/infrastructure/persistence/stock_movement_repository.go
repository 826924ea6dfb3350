package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/catalog"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/inventory"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/shared"
)

// GormStockMovementRepository implements inventory.StockMovementRepository
// using GORM
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// FindAll finds stock movements matching the filter, newest first
func (r *GormStockMovementRepository) FindAll(ctx context.Context, filter inventory.MovementFilter) ([]inventory.StockMovement, error) {
	query := r.db.WithContext(ctx).Model(&inventory.StockMovement{}).Order("created_at DESC")

	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Kind != nil {
		query = query.Where("kind = ?", string(*filter.Kind))
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var movements []inventory.StockMovement
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// Apply inserts the movement and adjusts the product's stock in one
// transaction. Egreso uses the same guarded decrement as the sale
// commit so manual corrections cannot drive stock negative either.
func (r *GormStockMovementRepository) Apply(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		var res *gorm.DB
		if movement.Kind == inventory.MovementEgreso {
			res = tx.Model(&catalog.Product{}).
				Where("id = ? AND stock >= ?", movement.ProductID, movement.Quantity).
				Updates(map[string]interface{}{
					"stock":      gorm.Expr("stock - ?", movement.Quantity),
					"updated_at": now,
				})
		} else {
			res = tx.Model(&catalog.Product{}).
				Where("id = ?", movement.ProductID).
				Updates(map[string]interface{}{
					"stock":      gorm.Expr("stock + ?", movement.Quantity),
					"updated_at": now,
				})
		}
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var product catalog.Product
			if err := tx.First(&product, "id = ?", movement.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return shared.ErrNotFound
				}
				return err
			}
			return shared.NewDomainErrorf("INSUFFICIENT_STOCK",
				"Stock insuficiente para %q. Disponible: %s, Solicitado: %s",
				product.Name, product.Stock, movement.Quantity)
		}

		return tx.Create(movement).Error
	})
}
