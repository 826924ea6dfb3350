package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/catalog"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/inventory"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/shared"
)

// AdjustStockRequest represents a manual stock movement (purchase
// receipt, correction, return). Sale movements are written by the sale
// transaction, never through this path.
type AdjustStockRequest struct {
	ProductID uuid.UUID              `json:"producto_id" binding:"required"`
	Kind      inventory.MovementKind `json:"tipo" binding:"required"`
	Quantity  decimal.Decimal        `json:"cantidad" binding:"required"`
	Reason    string                 `json:"motivo" binding:"required,max=50"`
	Note      string                 `json:"nota" binding:"max=200"`
}

// MovementListFilter represents filter options for the stock journal
type MovementListFilter struct {
	ProductID *uuid.UUID              `form:"producto_id"`
	Kind      *inventory.MovementKind `form:"tipo"`
	From      *time.Time              `form:"desde" time_format:"2006-01-02"`
	To        *time.Time              `form:"hasta" time_format:"2006-01-02"`
	Limit     int                     `form:"limit" binding:"omitempty,min=1,max=500"`
}

// MovementResponse represents a stock movement in API responses
type MovementResponse struct {
	ID        uuid.UUID              `json:"id"`
	ProductID uuid.UUID              `json:"producto_id"`
	Kind      inventory.MovementKind `json:"tipo"`
	Quantity  decimal.Decimal        `json:"cantidad"`
	Reason    string                 `json:"motivo"`
	Note      string                 `json:"nota"`
	AuthorID  uuid.UUID              `json:"usuario_id"`
	CreatedAt time.Time              `json:"fecha"`
}

// ToMovementResponse converts a movement to its API representation
func ToMovementResponse(movement *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:        movement.ID,
		ProductID: movement.ProductID,
		Kind:      movement.Kind,
		Quantity:  movement.Quantity,
		Reason:    movement.Reason,
		Note:      movement.Note,
		AuthorID:  movement.AuthorID,
		CreatedAt: movement.CreatedAt,
	}
}

// MovementService handles the stock journal: manual adjustments and
// audit queries.
type MovementService struct {
	movementRepo inventory.StockMovementRepository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewMovementService creates a new MovementService
func NewMovementService(
	movementRepo inventory.StockMovementRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *MovementService {
	return &MovementService{
		movementRepo: movementRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// Adjust applies a manual stock movement
func (s *MovementService) Adjust(ctx context.Context, authorID uuid.UUID, req AdjustStockRequest) (*MovementResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Producto no encontrado")
		}
		return nil, err
	}

	movement, err := inventory.NewStockMovement(product.ID, authorID, req.Kind, req.Quantity, req.Reason, req.Note)
	if err != nil {
		return nil, err
	}

	if err := s.movementRepo.Apply(ctx, movement); err != nil {
		return nil, err
	}

	s.logger.Info("stock adjusted",
		zap.String("product_id", product.ID.String()),
		zap.String("kind", string(movement.Kind)),
		zap.String("quantity", movement.Quantity.String()),
		zap.String("reason", movement.Reason))

	response := ToMovementResponse(movement)
	return &response, nil
}

// List retrieves stock movements matching the filter, newest first
func (s *MovementService) List(ctx context.Context, filter MovementListFilter) ([]MovementResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}

	movements, err := s.movementRepo.FindAll(ctx, inventory.MovementFilter{
		ProductID: filter.ProductID,
		Kind:      filter.Kind,
		From:      filter.From,
		To:        filter.To,
		Limit:     filter.Limit,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]MovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToMovementResponse(&movements[i])
	}
	return responses, nil
}
