package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/openpos/backend/internal/application/trade"
)

// SaleHandler handles sale API endpoints. Sales are immutable once admitted:
// there is no update route, corrections go through delete and re-create.
type SaleHandler struct {
	BaseHandler
	saleService *tradeapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *tradeapp.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// RegisterRoutes registers sale routes on the API group
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("", h.Create)
		sales.GET("", h.List)
		sales.GET("/invoice/:invoice_no", h.GetByInvoiceNo)
		sales.GET("/:id", h.GetByID)
		sales.DELETE("/:id", h.Delete)
	}
}

// Create admits and persists a new sale. The whole document is rejected
// with INSUFFICIENT_STOCK if any line exceeds the on-hand quantity.
func (h *SaleHandler) Create(c *gin.Context) {
	var req tradeapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	sale, err := h.saleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sale)
}

// GetByID retrieves a sale by ID
func (h *SaleHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// GetByInvoiceNo retrieves a sale by its invoice number
func (h *SaleHandler) GetByInvoiceNo(c *gin.Context) {
	invoiceNo := c.Param("invoice_no")
	if invoiceNo == "" {
		h.BadRequest(c, "Invoice number is required")
		return
	}

	sale, err := h.saleService.GetByInvoiceNo(c.Request.Context(), invoiceNo)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// List retrieves a paginated sale list
func (h *SaleHandler) List(c *gin.Context) {
	var filter tradeapp.DocumentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.saleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Delete deletes a sale, returning its quantities to the derived stock
func (h *SaleHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	if err := h.saleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
