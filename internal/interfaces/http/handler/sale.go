package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	salesapp "github.com/matiaspautasso/ERP-LosHermanos/internal/application/sales"
)

// SaleHandler handles sale-related API endpoints
type SaleHandler struct {
	BaseHandler
	saleService *salesapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *salesapp.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// RegisterRoutes registers sale routes
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ventas := rg.Group("/ventas")
	{
		ventas.POST("", h.Create)
		ventas.GET("", h.List)
		ventas.GET("/:id", h.GetByID)
		ventas.GET("/:id/comprobante", h.Receipt)
	}
}

// Create registers a sale. The seller is the authenticated user; the
// price of every line is resolved server side from the current ledger.
func (h *SaleHandler) Create(c *gin.Context) {
	sellerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Usuario no autenticado")
		return
	}

	var req salesapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	sale, err := h.saleService.Create(c.Request.Context(), sellerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sale)
}

// GetByID returns a sale with its lines
func (h *SaleHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// Receipt streams the printable ticket of a sale as a PDF
func (h *SaleHandler) Receipt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	doc, err := h.saleService.Receipt(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="venta-%08d.pdf"`, doc.Number))
	c.Data(http.StatusOK, "application/pdf", doc.PDF)
}

// List returns sales filtered by customer, seller, tier or date range
func (h *SaleHandler) List(c *gin.Context) {
	var filter salesapp.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.saleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
