package trade

import (
	"time"

	"github.com/openpos/backend/internal/domain/shared"
	"github.com/openpos/backend/internal/domain/shared/valueobject"
	"github.com/openpos/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentItemRequest carries the raw inputs of one document line
type DocumentItemRequest struct {
	ProductID       uuid.UUID       `json:"product_id" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	Rate            decimal.Decimal `json:"rate"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	VATPercent      decimal.Decimal `json:"vat_percent"`
}

// PurchaseItemRequest extends a document line with purchase-only fields
type PurchaseItemRequest struct {
	DocumentItemRequest
	BatchNo    string     `json:"batch_no" binding:"max=50"`
	ExpiryDate *time.Time `json:"expiry_date"`
}

// CreatePurchaseRequest represents a request to record a purchase
type CreatePurchaseRequest struct {
	ChallanNo    string                `json:"challan_no" binding:"required,min=1,max=50"`
	SupplierID   uuid.UUID             `json:"supplier_id" binding:"required"`
	PurchaseDate time.Time             `json:"purchase_date" binding:"required"`
	Details      string                `json:"details"`
	Discount     decimal.Decimal       `json:"discount"`
	PaidAmount   decimal.Decimal       `json:"paid_amount"`
	PaymentType  string                `json:"payment_type" binding:"omitempty,oneof=CASH CREDIT BANK"`
	Items        []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdatePurchaseRequest represents a request to revise a purchase.
// The challan number cannot change; the line set is replaced wholesale.
type UpdatePurchaseRequest struct {
	SupplierID   uuid.UUID             `json:"supplier_id" binding:"required"`
	PurchaseDate time.Time             `json:"purchase_date" binding:"required"`
	Details      string                `json:"details"`
	Discount     decimal.Decimal       `json:"discount"`
	PaidAmount   decimal.Decimal       `json:"paid_amount"`
	PaymentType  string                `json:"payment_type" binding:"omitempty,oneof=CASH CREDIT BANK"`
	Items        []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PurchaseItemResponse represents a purchase line in API responses
type PurchaseItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	ItemName        string          `json:"item_name"`
	BatchNo         string          `json:"batch_no,omitempty"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	Rate            decimal.Decimal `json:"rate"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountValue   decimal.Decimal `json:"discount_value"`
	VATPercent      decimal.Decimal `json:"vat_percent"`
	VATValue        decimal.Decimal `json:"vat_value"`
	Total           decimal.Decimal `json:"total"`
}

// PurchaseResponse represents a purchase document in API responses
type PurchaseResponse struct {
	ID            uuid.UUID              `json:"id"`
	ChallanNo     string                 `json:"challan_no"`
	SupplierID    uuid.UUID              `json:"supplier_id"`
	SupplierName  string                 `json:"supplier_name"`
	PurchaseDate  time.Time              `json:"purchase_date"`
	Details       string                 `json:"details,omitempty"`
	Discount      decimal.Decimal        `json:"discount"`
	TotalDiscount decimal.Decimal        `json:"total_discount"`
	TotalVAT      decimal.Decimal        `json:"total_vat"`
	GrandTotal    decimal.Decimal        `json:"grand_total"`
	PaidAmount    decimal.Decimal        `json:"paid_amount"`
	DueAmount     decimal.Decimal        `json:"due_amount"`
	PaymentType   string                 `json:"payment_type"`
	Items         []PurchaseItemResponse `json:"items"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// CreatePurchaseOrderRequest represents a request to place a purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID  uuid.UUID             `json:"supplier_id" binding:"required"`
	OrderDate   time.Time             `json:"order_date" binding:"required"`
	Details     string                `json:"details"`
	Discount    decimal.Decimal       `json:"discount"`
	PaidAmount  decimal.Decimal       `json:"paid_amount"`
	PaymentType string                `json:"payment_type" binding:"omitempty,oneof=CASH CREDIT BANK"`
	Items       []DocumentItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdatePurchaseOrderRequest represents an update submission for an order.
// The order number is immutable; the line set is replaced wholesale.
type UpdatePurchaseOrderRequest struct {
	SupplierID  uuid.UUID             `json:"supplier_id" binding:"required"`
	OrderDate   time.Time             `json:"order_date" binding:"required"`
	Details     string                `json:"details"`
	Discount    decimal.Decimal       `json:"discount"`
	PaidAmount  decimal.Decimal       `json:"paid_amount"`
	PaymentType string                `json:"payment_type" binding:"omitempty,oneof=CASH CREDIT BANK"`
	Items       []DocumentItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ReceiveItemRequest names a received quantity against an order line
type ReceiveItemRequest struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// ReceivePurchaseOrderRequest represents a goods-receipt submission
type ReceivePurchaseOrderRequest struct {
	Items []ReceiveItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PurchaseOrderItemResponse represents an order line in API responses
type PurchaseOrderItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	OrderedQuantity  decimal.Decimal `json:"ordered_quantity"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	Rate             decimal.Decimal `json:"rate"`
	DiscountPercent  decimal.Decimal `json:"discount_percent"`
	DiscountValue    decimal.Decimal `json:"discount_value"`
	VATPercent       decimal.Decimal `json:"vat_percent"`
	VATValue         decimal.Decimal `json:"vat_value"`
	Total            decimal.Decimal `json:"total"`
	HasDiscrepancy   bool            `json:"has_discrepancy"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID               uuid.UUID                   `json:"id"`
	OrderNo          string                      `json:"order_no"`
	SupplierID       uuid.UUID                   `json:"supplier_id"`
	SupplierName     string                      `json:"supplier_name"`
	OrderDate        time.Time                   `json:"order_date"`
	Details          string                      `json:"details,omitempty"`
	Discount         decimal.Decimal             `json:"discount"`
	TotalDiscount    decimal.Decimal             `json:"total_discount"`
	TotalVAT         decimal.Decimal             `json:"total_vat"`
	GrandTotal       decimal.Decimal             `json:"grand_total"`
	PaidAmount       decimal.Decimal             `json:"paid_amount"`
	DueAmount        decimal.Decimal             `json:"due_amount"`
	PaymentType      string                      `json:"payment_type"`
	DiscrepancyCount int                         `json:"discrepancy_count"`
	FullyReceived    bool                        `json:"fully_received"`
	Items            []PurchaseOrderItemResponse `json:"items"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

// CreateSaleRequest represents a request to record a sale
type CreateSaleRequest struct {
	CustomerID   uuid.UUID             `json:"customer_id" binding:"required"`
	SaleDate     time.Time             `json:"sale_date" binding:"required"`
	Details      string                `json:"details"`
	Discount     decimal.Decimal       `json:"discount"`
	ShippingCost decimal.Decimal       `json:"shipping_cost"`
	PaidAmount   decimal.Decimal       `json:"paid_amount"`
	PaymentType  string                `json:"payment_type" binding:"omitempty,oneof=CASH CREDIT BANK"`
	Items        []DocumentItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SaleItemResponse represents a sold line in API responses
type SaleItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"product_id"`
	Description       string          `json:"description"`
	UnitName          string          `json:"unit_name,omitempty"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	Quantity          decimal.Decimal `json:"quantity"`
	Rate              decimal.Decimal `json:"rate"`
	DiscountPercent   decimal.Decimal `json:"discount_percent"`
	DiscountValue     decimal.Decimal `json:"discount_value"`
	VATPercent        decimal.Decimal `json:"vat_percent"`
	VATValue          decimal.Decimal `json:"vat_value"`
	Total             decimal.Decimal `json:"total"`
}

// SaleResponse represents a sale in API responses. DueAmount is clamped at
// zero for presentation; an overpaid balance shows as zero due.
type SaleResponse struct {
	ID            uuid.UUID          `json:"id"`
	InvoiceNo     string             `json:"invoice_no"`
	CustomerID    uuid.UUID          `json:"customer_id"`
	CustomerName  string             `json:"customer_name"`
	SaleDate      time.Time          `json:"sale_date"`
	Details       string             `json:"details,omitempty"`
	Discount      decimal.Decimal    `json:"discount"`
	ShippingCost  decimal.Decimal    `json:"shipping_cost"`
	TotalDiscount decimal.Decimal    `json:"total_discount"`
	TotalVAT      decimal.Decimal    `json:"total_vat"`
	GrandTotal    decimal.Decimal    `json:"grand_total"`
	NetTotal      decimal.Decimal    `json:"net_total"`
	PaidAmount    decimal.Decimal    `json:"paid_amount"`
	DueAmount     decimal.Decimal    `json:"due_amount"`
	PaymentType   string             `json:"payment_type"`
	Items         []SaleItemResponse `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// DocumentListFilter represents list query options for trade documents
type DocumentListFilter struct {
	Search   string     `form:"search"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToPurchaseResponse converts a domain Purchase to PurchaseResponse
func ToPurchaseResponse(p *trade.Purchase) *PurchaseResponse {
	items := make([]PurchaseItemResponse, len(p.Items))
	for i := range p.Items {
		item := &p.Items[i]
		items[i] = PurchaseItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			ItemName:        item.ItemName,
			BatchNo:         item.BatchNo,
			ExpiryDate:      item.ExpiryDate,
			Quantity:        item.Quantity,
			Rate:            item.Rate,
			DiscountPercent: item.DiscountPercent,
			DiscountValue:   item.DiscountValue,
			VATPercent:      item.VATPercent,
			VATValue:        item.VATValue,
			Total:           item.Total,
		}
	}

	return &PurchaseResponse{
		ID:            p.ID,
		ChallanNo:     p.ChallanNo,
		SupplierID:    p.SupplierID,
		SupplierName:  p.SupplierName,
		PurchaseDate:  p.PurchaseDate,
		Details:       p.Details,
		Discount:      p.Discount,
		TotalDiscount: p.TotalDiscount,
		TotalVAT:      p.TotalVAT,
		GrandTotal:    p.GrandTotal,
		PaidAmount:    p.PaidAmount,
		DueAmount:     clampDue(p.DueAmount),
		PaymentType:   p.PaymentType.String(),
		Items:         items,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToPurchaseOrderResponse converts a domain PurchaseOrder to PurchaseOrderResponse
func ToPurchaseOrderResponse(o *trade.PurchaseOrder) *PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items[i] = PurchaseOrderItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			OrderedQuantity:  item.OrderedQuantity,
			ReceivedQuantity: item.ReceivedQuantity,
			Rate:             item.Rate,
			DiscountPercent:  item.DiscountPercent,
			DiscountValue:    item.DiscountValue,
			VATPercent:       item.VATPercent,
			VATValue:         item.VATValue,
			Total:            item.Total,
			HasDiscrepancy:   item.HasDiscrepancy(),
		}
	}

	return &PurchaseOrderResponse{
		ID:               o.ID,
		OrderNo:          o.OrderNo,
		SupplierID:       o.SupplierID,
		SupplierName:     o.SupplierName,
		OrderDate:        o.OrderDate,
		Details:          o.Details,
		Discount:         o.Discount,
		TotalDiscount:    o.TotalDiscount,
		TotalVAT:         o.TotalVAT,
		GrandTotal:       o.GrandTotal,
		PaidAmount:       o.PaidAmount,
		DueAmount:        clampDue(o.DueAmount),
		PaymentType:      o.PaymentType.String(),
		DiscrepancyCount: o.DiscrepancyCount(),
		FullyReceived:    o.IsFullyReceived(),
		Items:            items,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

// ToSaleResponse converts a domain Sale to SaleResponse
func ToSaleResponse(s *trade.Sale) *SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i := range s.Items {
		item := &s.Items[i]
		items[i] = SaleItemResponse{
			ID:                item.ID,
			ProductID:         item.ProductID,
			Description:       item.Description,
			UnitName:          item.UnitName,
			AvailableQuantity: item.AvailableQuantity,
			Quantity:          item.Quantity,
			Rate:              item.Rate,
			DiscountPercent:   item.DiscountPercent,
			DiscountValue:     item.DiscountValue,
			VATPercent:        item.VATPercent,
			VATValue:          item.VATValue,
			Total:             item.Total,
		}
	}

	return &SaleResponse{
		ID:            s.ID,
		InvoiceNo:     s.InvoiceNo,
		CustomerID:    s.CustomerID,
		CustomerName:  s.CustomerName,
		SaleDate:      s.SaleDate,
		Details:       s.Details,
		Discount:      s.Discount,
		ShippingCost:  s.ShippingCost,
		TotalDiscount: s.TotalDiscount,
		TotalVAT:      s.TotalVAT,
		GrandTotal:    s.GrandTotal,
		NetTotal:      s.NetTotal,
		PaidAmount:    s.PaidAmount,
		DueAmount:     clampDue(s.DueAmount),
		PaymentType:   s.PaymentType.String(),
		Items:         items,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func clampDue(due decimal.Decimal) decimal.Decimal {
	return valueobject.NewMoney(due).ClampZero().Amount()
}

func documentFilter(filter DocumentListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.From != nil {
		domainFilter.Filters["from"] = *filter.From
	}
	if filter.To != nil {
		domainFilter.Filters["to"] = *filter.To
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	return domainFilter
}

func paymentTypeOrDefault(raw string) trade.PaymentType {
	if raw == "" {
		return trade.PaymentTypeCash
	}
	return trade.PaymentType(raw)
}
