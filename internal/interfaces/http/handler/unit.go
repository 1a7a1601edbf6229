package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/openpos/backend/internal/application/catalog"
)

// UnitHandler handles measurement unit API endpoints
type UnitHandler struct {
	BaseHandler
	unitService *catalogapp.UnitService
}

// NewUnitHandler creates a new UnitHandler
func NewUnitHandler(unitService *catalogapp.UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

// RegisterRoutes registers unit routes on the API group
func (h *UnitHandler) RegisterRoutes(rg *gin.RouterGroup) {
	units := rg.Group("/units")
	{
		units.POST("", h.Create)
		units.GET("", h.List)
		units.GET("/:id", h.GetByID)
		units.PUT("/:id", h.Update)
		units.DELETE("/:id", h.Delete)
	}
}

// Create creates a new unit
func (h *UnitHandler) Create(c *gin.Context) {
	var req catalogapp.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	unit, err := h.unitService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, unit)
}

// GetByID retrieves a unit by ID
func (h *UnitHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	unit, err := h.unitService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, unit)
}

// List retrieves units
func (h *UnitHandler) List(c *gin.Context) {
	var filter catalogapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	units, err := h.unitService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, units)
}

// Update updates a unit
func (h *UnitHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	var req catalogapp.UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	unit, err := h.unitService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, unit)
}

// Delete deletes a unit
func (h *UnitHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	if err := h.unitService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
