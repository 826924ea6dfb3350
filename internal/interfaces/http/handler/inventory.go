package handler

import (
	"github.com/gin-gonic/gin"

	inventoryapp "github.com/matiaspautasso/ERP-LosHermanos/internal/application/inventory"
)

// InventoryHandler handles stock journal API endpoints
type InventoryHandler struct {
	BaseHandler
	movementService *inventoryapp.MovementService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(movementService *inventoryapp.MovementService) *InventoryHandler {
	return &InventoryHandler{movementService: movementService}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock")
	{
		stock.POST("/movimientos", h.Adjust)
		stock.GET("/movimientos", h.List)
	}
}

// Adjust applies a manual stock movement (purchase receipt, correction,
// customer return). Sale egresses are written by the sale transaction.
func (h *InventoryHandler) Adjust(c *gin.Context) {
	authorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Usuario no autenticado")
		return
	}

	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	movement, err := h.movementService.Adjust(c.Request.Context(), authorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, movement)
}

// List returns the stock journal, newest first
func (h *InventoryHandler) List(c *gin.Context) {
	var filter inventoryapp.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	movements, err := h.movementService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, movements)
}
