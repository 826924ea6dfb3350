package pricing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/catalog"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/pricing"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/shared"
)

var decimalNeg100 = decimal.NewFromInt(-100)

// PriceService handles the append-only price ledger: per-product price
// updates, catalog-wide percentage adjustments and history queries.
type PriceService struct {
	priceRepo   pricing.PriceEntryRepository
	productRepo catalog.ProductRepository
	// strictTierOrder rejects entries where a lower tier undercuts a
	// higher one (retail < wholesale, wholesale < super). Off by
	// default because historic data is not monotonic.
	strictTierOrder bool
	logger          *zap.Logger
}

// NewPriceService creates a new PriceService
func NewPriceService(
	priceRepo pricing.PriceEntryRepository,
	productRepo catalog.ProductRepository,
	strictTierOrder bool,
	logger *zap.Logger,
) *PriceService {
	return &PriceService{
		priceRepo:       priceRepo,
		productRepo:     productRepo,
		strictTierOrder: strictTierOrder,
		logger:          logger,
	}
}

// Update appends a new ledger entry with the given tier prices. The
// previous entry is never touched; sales already made keep their frozen
// prices and the history endpoint shows the full trail.
func (s *PriceService) Update(ctx context.Context, productID, authorID uuid.UUID, req UpdatePricesRequest) (*PriceEntryResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Producto no encontrado")
		}
		return nil, err
	}

	entry, err := pricing.NewPriceEntry(productID, authorID, req.Retail, req.Wholesale, req.SuperWholesale)
	if err != nil {
		return nil, err
	}
	if s.strictTierOrder && !entry.IsTierOrdered() {
		return nil, shared.NewDomainErrorf("TIER_ORDER_VIOLATION",
			"Los precios de %q deben cumplir minorista >= mayorista >= supermayorista", product.Name)
	}

	if err := s.priceRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("price entry appended",
		zap.String("product_id", productID.String()),
		zap.String("author_id", authorID.String()),
		zap.String("retail", entry.Retail.String()))

	response := ToPriceEntryResponse(entry)
	return &response, nil
}

// BulkAdjust applies a percentage to the scoped tiers of the requested
// products, as one all-or-nothing batch of new ledger entries. Every
// product must exist, be active and have configured prices; any failure
// aborts the whole batch before a single entry is written. A zero
// percentage is accepted and appends identical snapshots.
func (s *PriceService) BulkAdjust(ctx context.Context, authorID uuid.UUID, req BulkAdjustRequest) (*BulkAdjustResponse, error) {
	if !req.Scope.IsValid() {
		return nil, shared.NewDomainErrorf("INVALID_SCOPE", "Tipo de ajuste inválido: %q", string(req.Scope))
	}
	if req.Percent.LessThanOrEqual(decimalNeg100) {
		return nil, shared.NewDomainError("INVALID_PERCENT", "El porcentaje debe ser mayor a -100")
	}

	products, err := s.productRepo.FindByIDs(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range req.ProductIDs {
		product, ok := products[id]
		if !ok {
			return nil, shared.NewDomainErrorf("PRODUCT_NOT_FOUND", "Producto no encontrado: %s", id)
		}
		if !product.Active {
			return nil, shared.NewDomainErrorf("PRODUCT_NOT_FOUND", "El producto %q está inactivo", product.Name)
		}
	}

	// One query, one snapshot: every adjustment starts from the same
	// ledger state.
	current, err := s.priceRepo.FindCurrentByProducts(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]*pricing.PriceEntry, 0, len(req.ProductIDs))
	seen := make(map[uuid.UUID]bool, len(req.ProductIDs))
	for _, id := range req.ProductIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		entry, ok := current[id]
		if !ok {
			return nil, shared.NewDomainErrorf("PRICING_NOT_CONFIGURED",
				"El producto %q no tiene precios configurados", products[id].Name)
		}
		adjusted, err := entry.Adjusted(authorID, req.Percent, req.Scope)
		if err != nil {
			return nil, err
		}
		if s.strictTierOrder && !adjusted.IsTierOrdered() {
			return nil, shared.NewDomainErrorf("TIER_ORDER_VIOLATION",
				"El ajuste rompe el orden de precios del producto %q", products[id].Name)
		}
		entries = append(entries, adjusted)
	}

	if err := s.priceRepo.SaveBatch(ctx, entries); err != nil {
		return nil, err
	}

	s.logger.Info("bulk price adjustment applied",
		zap.String("author_id", authorID.String()),
		zap.String("percent", req.Percent.String()),
		zap.String("scope", string(req.Scope)),
		zap.Int("products", len(entries)))

	return &BulkAdjustResponse{
		Adjusted: len(entries),
		Percent:  req.Percent,
		Scope:    req.Scope,
	}, nil
}

// GetCurrent returns the latest ledger entry of a product
func (s *PriceService) GetCurrent(ctx context.Context, productID uuid.UUID) (*PriceEntryResponse, error) {
	entry, err := s.priceRepo.FindCurrentByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToPriceEntryResponse(entry)
	return &response, nil
}

// History returns the price trail of a product, newest first
func (s *PriceService) History(ctx context.Context, productID uuid.UUID, filter HistoryFilter) ([]PriceEntryResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Producto no encontrado")
		}
		return nil, err
	}

	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	entries, err := s.priceRepo.FindHistory(ctx, productID, pricing.HistoryFilter{
		From:  filter.From,
		To:    filter.To,
		Limit: filter.Limit,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]PriceEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToPriceEntryResponse(&entries[i])
	}
	return responses, nil
}
