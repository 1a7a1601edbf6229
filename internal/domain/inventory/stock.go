// Package inventory exposes the derived stock view. Stock is never stored as
// a counter: the on-hand quantity of a product is always the sum of its
// purchased quantities minus the sum of its sold quantities.
package inventory

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/openpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockLevel is the derived stock position of a single product
type StockLevel struct {
	ProductID     uuid.UUID
	Barcode       string
	ProductName   string
	CategoryName  string
	UnitName      string
	PurchasedQty  decimal.Decimal
	SoldQty       decimal.Decimal
	OnHand        decimal.Decimal
	PurchaseValue decimal.Decimal
	SaleValue     decimal.Decimal
}

// IsOutOfStock reports whether nothing is left on hand
func (s StockLevel) IsOutOfStock() bool {
	return !s.OnHand.IsPositive()
}

// StockReport aggregates stock levels across the catalog
type StockReport struct {
	Items              []StockLevel
	TotalPurchaseValue decimal.Decimal
	TotalSaleValue     decimal.Decimal
	OutOfStockCount    int
}

// BuildReport assembles the report summary rows from individual levels
func BuildReport(levels []StockLevel) StockReport {
	report := StockReport{
		Items:              levels,
		TotalPurchaseValue: decimal.Zero,
		TotalSaleValue:     decimal.Zero,
	}
	for _, level := range levels {
		report.TotalPurchaseValue = report.TotalPurchaseValue.Add(level.PurchaseValue)
		report.TotalSaleValue = report.TotalSaleValue.Add(level.SaleValue)
		if level.IsOutOfStock() {
			report.OutOfStockCount++
		}
	}
	return report
}

// Shortfall names a product whose demand exceeded its on-hand quantity
type Shortfall struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   decimal.Decimal
	Available   decimal.Decimal
}

// InsufficientStockError is returned when a sale's demand cannot be met.
// It lists every short product so the caller can report all of them at once.
type InsufficientStockError struct {
	Shortfalls []Shortfall
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	parts := make([]string, len(e.Shortfalls))
	for idx, s := range e.Shortfalls {
		parts[idx] = fmt.Sprintf("%s (requested %s, available %s)",
			s.ProductName, s.Requested.String(), s.Available.String())
	}
	return "insufficient stock: " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match the shared sentinel
func (e *InsufficientStockError) Unwrap() error {
	return shared.ErrInsufficientStock
}

// CheckAvailability compares demand against on-hand quantities and returns an
// InsufficientStockError listing every short product, or nil when all demand
// can be met. Products absent from onHand count as zero stock.
func CheckAvailability(demand map[uuid.UUID]decimal.Decimal, onHand map[uuid.UUID]decimal.Decimal, names map[uuid.UUID]string) error {
	var shortfalls []Shortfall
	for productID, requested := range demand {
		available := onHand[productID]
		if requested.GreaterThan(available) {
			shortfalls = append(shortfalls, Shortfall{
				ProductID:   productID,
				ProductName: names[productID],
				Requested:   requested,
				Available:   available,
			})
		}
	}
	if len(shortfalls) == 0 {
		return nil
	}
	// Map iteration order is random; sort so the same rejection always
	// reports its shortfalls in the same sequence.
	sort.Slice(shortfalls, func(i, j int) bool {
		return bytes.Compare(shortfalls[i].ProductID[:], shortfalls[j].ProductID[:]) < 0
	})
	return &InsufficientStockError{Shortfalls: shortfalls}
}
