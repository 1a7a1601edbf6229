package catalog

import (
	"time"

	"github.com/openpos/backend/internal/domain/catalog"
	"github.com/openpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to create a new category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=100"`
	Status string `json:"status" binding:"required,oneof=ACTIVE INACTIVE"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUnitRequest represents a request to create a new unit of measure
type CreateUnitRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateUnitRequest represents a request to update a unit of measure
type UpdateUnitRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=100"`
	Status string `json:"status" binding:"required,oneof=ACTIVE INACTIVE"`
}

// UnitResponse represents a unit of measure in API responses
type UnitResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Barcode      string          `json:"barcode" binding:"required,min=1,max=100"`
	Name         string          `json:"name" binding:"required,min=1,max=100"`
	CategoryID   uuid.UUID       `json:"category_id" binding:"required"`
	SupplierID   uuid.UUID       `json:"supplier_id" binding:"required"`
	UnitID       uuid.UUID       `json:"unit_id" binding:"required"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	VATPercent   decimal.Decimal `json:"vat_percent"`
	SerialNumber string          `json:"serial_number" binding:"max=100"`
	Model        string          `json:"model" binding:"max=100"`
	Details      string          `json:"details"`
}

// UpdateProductRequest represents a request to update a product.
// The barcode is the product's identity and cannot change.
type UpdateProductRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=100"`
	CategoryID   uuid.UUID       `json:"category_id" binding:"required"`
	SupplierID   uuid.UUID       `json:"supplier_id" binding:"required"`
	UnitID       uuid.UUID       `json:"unit_id" binding:"required"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	VATPercent   decimal.Decimal `json:"vat_percent"`
	SerialNumber string          `json:"serial_number" binding:"max=100"`
	Model        string          `json:"model" binding:"max=100"`
	Details      string          `json:"details"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Barcode      string          `json:"barcode"`
	Name         string          `json:"name"`
	CategoryID   uuid.UUID       `json:"category_id"`
	SupplierID   uuid.UUID       `json:"supplier_id"`
	UnitID       uuid.UUID       `json:"unit_id"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	VATPercent   decimal.Decimal `json:"vat_percent"`
	SerialNumber string          `json:"serial_number"`
	Model        string          `json:"model"`
	Details      string          `json:"details"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductStockResponse represents a product's derived stock position
type ProductStockResponse struct {
	ProductID    uuid.UUID       `json:"product_id"`
	Barcode      string          `json:"barcode"`
	Name         string          `json:"name"`
	PurchasedQty decimal.Decimal `json:"purchased_qty"`
	SoldQty      decimal.Decimal `json:"sold_qty"`
	OnHand       decimal.Decimal `json:"on_hand"`
	OutOfStock   bool            `json:"out_of_stock"`
}

// ListFilter represents list query options for catalog records
type ListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductListFilter represents list query options for products
type ProductListFilter struct {
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"category_id"`
	SupplierID *uuid.UUID `form:"supplier_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToUnitResponse converts a domain Unit to UnitResponse
func ToUnitResponse(u *catalog.Unit) *UnitResponse {
	return &UnitResponse{
		ID:        u.ID,
		Name:      u.Name,
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:           p.ID,
		Barcode:      p.Barcode,
		Name:         p.Name,
		CategoryID:   p.CategoryID,
		SupplierID:   p.SupplierID,
		UnitID:       p.UnitID,
		CostPrice:    p.CostPrice,
		SalePrice:    p.SalePrice,
		VATPercent:   p.VATPercent,
		SerialNumber: p.SerialNumber,
		Model:        p.Model,
		Details:      p.Details,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func listToDomainFilter(search, status string, page, pageSize int, orderBy, orderDir string) shared.Filter {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = search
	if status != "" {
		domainFilter.Filters["status"] = status
	}
	if page > 0 {
		domainFilter.Page = page
	}
	if pageSize > 0 {
		domainFilter.PageSize = pageSize
	}
	if orderBy != "" {
		domainFilter.OrderBy = orderBy
	}
	if orderDir != "" {
		domainFilter.OrderDir = orderDir
	}
	return domainFilter
}
