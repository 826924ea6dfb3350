package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/catalog"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/pricing"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/shared"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name        string           `json:"nombre" binding:"required,min=1,max=200"`
	Description string           `json:"descripcion" binding:"max=1000"`
	Category    string           `json:"categoria" binding:"max=100"`
	Unit        string           `json:"unidad" binding:"max=20"`
	ListPrice   decimal.Decimal  `json:"precio_lista"`
	VATPercent  *decimal.Decimal `json:"iva"`
	MinStock    decimal.Decimal  `json:"stock_minimo"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Name        *string          `json:"nombre" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"descripcion" binding:"omitempty,max=1000"`
	Category    *string          `json:"categoria" binding:"omitempty,max=100"`
	Unit        *string          `json:"unidad" binding:"omitempty,min=1,max=20"`
	MinStock    *decimal.Decimal `json:"stock_minimo"`
	Active      *bool            `json:"activo"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Category string `form:"categoria"`
	Active   *bool  `form:"activo"`
	LowStock bool   `form:"stock_bajo"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Category    string          `json:"categoria"`
	Unit        string          `json:"unidad"`
	ListPrice   decimal.Decimal `json:"precio_lista"`
	VATPercent  decimal.Decimal `json:"iva"`
	Stock       decimal.Decimal `json:"stock_actual"`
	MinStock    decimal.Decimal `json:"stock_minimo"`
	Active      bool            `json:"activo"`
	LowStock    bool            `json:"stock_bajo"`
	CreatedAt   time.Time       `json:"fecha_alta"`
}

// ProductPricesResponse is a product with its current tier prices,
// used by the point-of-sale price list.
type ProductPricesResponse struct {
	ProductResponse
	Retail         *decimal.Decimal `json:"precio_minorista"`
	Wholesale      *decimal.Decimal `json:"precio_mayorista"`
	SuperWholesale *decimal.Decimal `json:"precio_supermayorista"`
}

// ToProductResponse converts a product to its API representation
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Category:    product.Category,
		Unit:        product.Unit,
		ListPrice:   product.ListPrice,
		VATPercent:  product.VATPercent,
		Stock:       product.Stock,
		MinStock:    product.MinStock,
		Active:      product.Active,
		LowStock:    product.IsBelowMinimum(),
		CreatedAt:   product.CreatedAt,
	}
}

// ProductService handles catalog queries and master-data maintenance
type ProductService struct {
	productRepo catalog.ProductRepository
	priceRepo   pricing.PriceEntryRepository
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, priceRepo pricing.PriceEntryRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		priceRepo:   priceRepo,
		logger:      logger,
	}
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	vat := decimal.NewFromInt(21)
	if req.VATPercent != nil {
		vat = *req.VATPercent
	}

	product, err := catalog.NewProduct(req.Name, req.Unit, req.ListPrice, vat)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	product.Category = req.Category
	if req.MinStock.IsNegative() {
		return nil, shared.NewDomainError("INVALID_MIN_STOCK", "El stock mínimo no puede ser negativo")
	}
	product.MinStock = req.MinStock

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))

	response := ToProductResponse(product)
	return &response, nil
}

// Update applies a partial update to a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.MinStock != nil {
		if req.MinStock.IsNegative() {
			return nil, shared.NewDomainError("INVALID_MIN_STOCK", "El stock mínimo no puede ser negativo")
		}
		product.MinStock = *req.MinStock
	}
	if req.Active != nil {
		if *req.Active {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a single product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products matching the filter
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = "name"
	domainFilter.OrderDir = "asc"
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}
	if filter.LowStock {
		domainFilter.Filters["low_stock"] = true
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = ToProductResponse(&products[i])
	}

	paginated := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &paginated, nil
}

// ListWithPrices returns the active catalog joined with current tier
// prices, the listing the point of sale works from. Products without
// configured prices come back with nil prices so the client can flag
// them.
func (s *ProductService) ListWithPrices(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductPricesResponse], error) {
	listed, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(listed.Items))
	for i := range listed.Items {
		ids[i] = listed.Items[i].ID
	}
	entries, err := s.priceRepo.FindCurrentByProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]ProductPricesResponse, len(listed.Items))
	for i := range listed.Items {
		items[i] = ProductPricesResponse{ProductResponse: listed.Items[i]}
		if entry, ok := entries[listed.Items[i].ID]; ok {
			items[i].Retail = &entry.Retail
			items[i].Wholesale = &entry.Wholesale
			items[i].SuperWholesale = &entry.SuperWholesale
		}
	}

	paginated := shared.NewPaginated(items, listed.Total, listed.Page, listed.PageSize)
	return &paginated, nil
}
