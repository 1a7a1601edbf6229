// Package report exposes read-only reporting services over the derived
// stock ledger.
package report

import (
	"context"

	"github.com/openpos/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockRow represents one product's stock position in the report
type StockRow struct {
	ProductID     uuid.UUID       `json:"product_id"`
	Barcode       string          `json:"barcode"`
	ProductName   string          `json:"product_name"`
	CategoryName  string          `json:"category_name"`
	UnitName      string          `json:"unit_name"`
	PurchasedQty  decimal.Decimal `json:"purchased_qty"`
	SoldQty       decimal.Decimal `json:"sold_qty"`
	OnHand        decimal.Decimal `json:"on_hand"`
	PurchaseValue decimal.Decimal `json:"purchase_value"`
	SaleValue     decimal.Decimal `json:"sale_value"`
	OutOfStock    bool            `json:"out_of_stock"`
}

// StockReportResponse represents the full stock report
type StockReportResponse struct {
	Items              []StockRow      `json:"items"`
	TotalPurchaseValue decimal.Decimal `json:"total_purchase_value"`
	TotalSaleValue     decimal.Decimal `json:"total_sale_value"`
	OutOfStockCount    int             `json:"out_of_stock_count"`
}

// StockReportFilter represents query options for the stock report
type StockReportFilter struct {
	Search string `form:"search"`
}

// StockService produces stock reports from the derived ledger
type StockService struct {
	stockRepo inventory.StockRepository
}

// NewStockService creates a new StockService
func NewStockService(stockRepo inventory.StockRepository) *StockService {
	return &StockService{stockRepo: stockRepo}
}

// Report builds the stock report across the catalog
func (s *StockService) Report(ctx context.Context, filter StockReportFilter) (*StockReportResponse, error) {
	report, err := s.stockRepo.Report(ctx, filter.Search)
	if err != nil {
		return nil, err
	}

	rows := make([]StockRow, len(report.Items))
	for i, level := range report.Items {
		rows[i] = StockRow{
			ProductID:     level.ProductID,
			Barcode:       level.Barcode,
			ProductName:   level.ProductName,
			CategoryName:  level.CategoryName,
			UnitName:      level.UnitName,
			PurchasedQty:  level.PurchasedQty,
			SoldQty:       level.SoldQty,
			OnHand:        level.OnHand,
			PurchaseValue: level.PurchaseValue,
			SaleValue:     level.SaleValue,
			OutOfStock:    level.IsOutOfStock(),
		}
	}

	return &StockReportResponse{
		Items:              rows,
		TotalPurchaseValue: report.TotalPurchaseValue,
		TotalSaleValue:     report.TotalSaleValue,
		OutOfStockCount:    report.OutOfStockCount,
	}, nil
}
