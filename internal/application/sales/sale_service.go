package sales

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/catalog"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/partner"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/pricing"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/sales"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/shared"
)

// SaleService handles sale registration and queries.
//
// Create validates the request against a read snapshot (customer,
// products, current prices) and then delegates the atomic commit to the
// sale repository. The stock checks here are advisory: the repository's
// guarded decrement is what actually prevents overselling under
// concurrency.
type SaleService struct {
	saleRepo     sales.SaleRepository
	productRepo  catalog.ProductRepository
	customerRepo partner.CustomerRepository
	priceRepo    pricing.PriceEntryRepository
	resolver     *pricing.Resolver
	renderer     ReceiptRenderer
	logger       *zap.Logger
}

// NewSaleService creates a new SaleService. The renderer may be nil
// when receipt printing is disabled.
func NewSaleService(
	saleRepo sales.SaleRepository,
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
	priceRepo pricing.PriceEntryRepository,
	renderer ReceiptRenderer,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		priceRepo:    priceRepo,
		resolver:     pricing.NewResolver(),
		renderer:     renderer,
		logger:       logger,
	}
}

// Create registers a new sale for the given seller
func (s *SaleService) Create(ctx context.Context, sellerID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Cliente no encontrado")
		}
		return nil, err
	}
	if !customer.Active {
		return nil, shared.NewDomainErrorf("CUSTOMER_INACTIVE", "El cliente %q está inactivo", customer.Name)
	}

	// The sale tier defaults to the customer's classification; an
	// explicit tier on the request overrides it for this sale only.
	tier := customer.Tier
	if req.Tier != "" {
		if !req.Tier.IsValid() {
			return nil, shared.NewDomainErrorf("INVALID_TIER", "Tipo de venta inválido: %q", string(req.Tier))
		}
		tier = req.Tier
	}

	productIDs := make([]uuid.UUID, len(req.Lines))
	for i, line := range req.Lines {
		productIDs[i] = line.ProductID
	}

	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	// One query, one snapshot: every line of this sale prices against
	// the same ledger state.
	entries, err := s.priceRepo.FindCurrentByProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	inputs := make([]sales.LineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, shared.NewDomainErrorf("PRODUCT_NOT_FOUND", "Producto no encontrado: %s", line.ProductID)
		}
		if !product.Active {
			return nil, shared.NewDomainErrorf("PRODUCT_INACTIVE", "El producto %q está inactivo", product.Name)
		}
		if !product.CanFulfill(line.Quantity) {
			return nil, shared.NewDomainErrorf("INSUFFICIENT_STOCK",
				"Stock insuficiente para %q. Disponible: %s, Solicitado: %s",
				product.Name, product.Stock, line.Quantity)
		}

		unitPrice, err := s.resolver.Resolve(product.Name, entries[line.ProductID], tier)
		if err != nil {
			return nil, err
		}

		inputs = append(inputs, sales.LineInput{
			ProductID:   product.ID,
			ProductName: product.Name,
			Unit:        product.Unit,
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
			VATPercent:  product.VATPercent,
		})
	}

	sale, err := sales.NewSale(req.CustomerID, customer.Name, sellerID, tier, req.PaymentMethod, req.DiscountPct, inputs)
	if err != nil {
		return nil, err
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	s.logger.Info("sale registered",
		zap.String("sale_id", sale.ID.String()),
		zap.String("customer_id", sale.CustomerID.String()),
		zap.String("tier", string(sale.Tier)),
		zap.String("total", sale.Total.String()),
		zap.Int("lines", len(sale.Lines)))

	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByID retrieves a sale with its lines
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales matching the filter, newest first
func (s *SaleService) List(ctx context.Context, filter SaleListFilter) (*shared.Paginated[SaleResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := sales.SaleFilter{
		CustomerID: filter.CustomerID,
		SellerID:   filter.SellerID,
		Tier:       filter.Tier,
		From:       filter.StartDate,
		To:         filter.EndDate,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}

	result, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]SaleResponse, len(result.Items))
	for i := range result.Items {
		items[i] = ToSaleResponse(&result.Items[i])
	}

	paginated := shared.NewPaginated(items, result.Total, filter.Page, filter.PageSize)
	return &paginated, nil
}
