// Package pricing implements the calculation core shared by every trade
// document: per-line discount/VAT/total computation and document-level
// aggregation. All functions are pure and operate on shopspring decimals;
// monetary results are rounded half-up to two decimal places.
package pricing

import (
	"github.com/openpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineInput holds the raw per-line values entered for a document line.
type LineInput struct {
	Quantity        decimal.Decimal
	Rate            decimal.Decimal
	DiscountPercent decimal.Decimal
	VATPercent      decimal.Decimal
}

// LineResult holds the derived values for a document line. All three values
// are rounded to two decimal places and non-negative.
type LineResult struct {
	DiscountValue decimal.Decimal
	VATValue      decimal.Decimal
	Total         decimal.Decimal
}

// ComputeLine derives discount value, VAT value and line total from the raw
// line inputs:
//
//	discount_value = round(quantity × rate × discount% / 100, 2)
//	vat_value      = round((quantity × rate − discount_value) × vat% / 100, 2)
//	total          = round(quantity × rate − discount_value + vat_value, 2)
//
// It rejects non-positive quantities, negative rates and percentages outside
// [0, 100] with a validation error naming the offending field.
func ComputeLine(in LineInput) (LineResult, error) {
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return LineResult{}, shared.NewValidationError("quantity", "Quantity must be positive")
	}
	if in.Rate.IsNegative() {
		return LineResult{}, shared.NewValidationError("rate", "Rate cannot be negative")
	}
	if in.DiscountPercent.IsNegative() || in.DiscountPercent.GreaterThan(hundred) {
		return LineResult{}, shared.NewValidationError("discount_percent", "Discount percent must be between 0 and 100")
	}
	if in.VATPercent.IsNegative() || in.VATPercent.GreaterThan(hundred) {
		return LineResult{}, shared.NewValidationError("vat_percent", "VAT percent must be between 0 and 100")
	}

	gross := in.Quantity.Mul(in.Rate)
	discountValue := gross.Mul(in.DiscountPercent).Div(hundred).Round(2)
	vatValue := gross.Sub(discountValue).Mul(in.VATPercent).Div(hundred).Round(2)
	total := gross.Sub(discountValue).Add(vatValue).Round(2)

	return LineResult{
		DiscountValue: discountValue,
		VATValue:      vatValue,
		Total:         total,
	}, nil
}
