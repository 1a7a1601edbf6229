package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/openpos/backend/internal/application/report"
)

// ReportHandler handles reporting API endpoints
type ReportHandler struct {
	BaseHandler
	stockService *reportapp.StockService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(stockService *reportapp.StockService) *ReportHandler {
	return &ReportHandler{stockService: stockService}
}

// RegisterRoutes registers report routes on the API group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/stock", h.Stock)
	}
}

// Stock returns the derived stock position of every product
func (h *ReportHandler) Stock(c *gin.Context) {
	var filter reportapp.StockReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	report, err := h.stockService.Report(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}
