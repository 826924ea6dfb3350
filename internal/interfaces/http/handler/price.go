package handler

import (
	"github.com/gin-gonic/gin"

	pricingapp "github.com/matiaspautasso/ERP-LosHermanos/internal/application/pricing"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/identity"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/interfaces/http/middleware"
)

// PriceHandler handles price ledger API endpoints
type PriceHandler struct {
	BaseHandler
	priceService *pricingapp.PriceService
}

// NewPriceHandler creates a new PriceHandler
func NewPriceHandler(priceService *pricingapp.PriceService) *PriceHandler {
	return &PriceHandler{priceService: priceService}
}

// RegisterRoutes registers price routes under /productos
func (h *PriceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	productos := rg.Group("/productos")
	{
		productos.GET("/:id/precios", h.GetCurrent)
		productos.GET("/:id/precios/historial", h.History)
		productos.PUT("/:id/precios", h.Update)
		productos.PATCH("/precios/masivo",
			middleware.RequireRole(string(identity.RoleAdmin)), h.BulkAdjust)
	}
}

// Update appends a new ledger entry with the product's three tier prices
func (h *PriceHandler) Update(c *gin.Context) {
	authorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Usuario no autenticado")
		return
	}

	productID, ok := parseID(c)
	if !ok {
		return
	}

	var req pricingapp.UpdatePricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	entry, err := h.priceService.Update(c.Request.Context(), productID, authorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// BulkAdjust applies a percentage adjustment over the requested products
func (h *PriceHandler) BulkAdjust(c *gin.Context) {
	authorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Usuario no autenticado")
		return
	}

	var req pricingapp.BulkAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.priceService.BulkAdjust(c.Request.Context(), authorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetCurrent returns the product's current tier prices
func (h *PriceHandler) GetCurrent(c *gin.Context) {
	productID, ok := parseID(c)
	if !ok {
		return
	}

	entry, err := h.priceService.GetCurrent(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// History returns the product's price ledger, newest first
func (h *PriceHandler) History(c *gin.Context) {
	productID, ok := parseID(c)
	if !ok {
		return
	}

	var filter pricingapp.HistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	entries, err := h.priceService.History(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}
