package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/catalog"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/inventory"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/sales"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/shared"
)

// GormSaleRepository implements sales.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// Create commits the sale atomically: the sale row with its lines, one
// guarded stock decrement per line and one stock movement per line all
// happen in a single transaction.
//
// The decrement is a conditional UPDATE (stock >= quantity); a
// concurrent sale that drains the stock first makes the condition fail,
// RowsAffected comes back 0 and the whole transaction rolls back. That
// guard, not the service-level pre-check, is what makes overselling
// impossible.
func (r *GormSaleRepository) Create(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Receipt numbers are dense and human-facing. The unique index
		// on number turns a race between two concurrent sales into a
		// constraint error and a rollback instead of a duplicate.
		var maxNumber int64
		if err := tx.Model(&sales.Sale{}).
			Select("COALESCE(MAX(number), 0)").
			Scan(&maxNumber).Error; err != nil {
			return err
		}
		sale.Number = maxNumber + 1

		if err := tx.Create(sale).Error; err != nil {
			// A lost race on the receipt number or a replayed sale ID
			// lands here as a unique violation. The caller resubmits.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.ErrConcurrentModification
			}
			return err
		}

		note := fmt.Sprintf("Venta #%d", sale.Number)
		now := time.Now()

		for _, line := range sale.Lines {
			res := tx.Model(&catalog.Product{}).
				Where("id = ? AND active = ? AND stock >= ?", line.ProductID, true, line.Quantity).
				Updates(map[string]interface{}{
					"stock":      gorm.Expr("stock - ?", line.Quantity),
					"updated_at": now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return r.insufficientStock(tx, line)
			}

			movement, err := inventory.NewStockMovement(
				line.ProductID, sale.SellerID, inventory.MovementEgreso,
				line.Quantity, inventory.ReasonVenta, note)
			if err != nil {
				return err
			}
			if err := tx.Create(movement).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// insufficientStock builds the user-facing error for a failed decrement.
// The product is re-read inside the transaction so the reported stock
// matches what the guard saw.
func (r *GormSaleRepository) insufficientStock(tx *gorm.DB, line sales.SaleLine) error {
	var product catalog.Product
	if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewDomainErrorf("PRODUCT_NOT_FOUND", "Producto no encontrado: %s", line.ProductID)
		}
		return err
	}
	if !product.Active {
		return shared.NewDomainErrorf("PRODUCT_INACTIVE", "El producto %q está inactivo", product.Name)
	}
	return shared.NewDomainErrorf("INSUFFICIENT_STOCK",
		"Stock insuficiente para %q. Disponible: %s, Solicitado: %s",
		product.Name, product.Stock, line.Quantity)
}

// FindByID finds a sale with its lines
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var sale sales.Sale
	err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&sale, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAll finds sales matching the filter, newest first
func (r *GormSaleRepository) FindAll(ctx context.Context, filter sales.SaleFilter) (*shared.Paginated[sales.Sale], error) {
	query := r.db.WithContext(ctx).Model(&sales.Sale{})

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.SellerID != nil {
		query = query.Where("seller_id = ?", *filter.SellerID)
	}
	if filter.Tier != nil {
		query = query.Where("tier = ?", string(*filter.Tier))
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	var result []sales.Sale
	err := query.
		Preload("Lines").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	paginated := shared.NewPaginated(result, total, page, pageSize)
	return &paginated, nil
}
