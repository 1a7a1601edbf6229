package pricing

import (
	"github.com/openpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DocumentInput holds the document-level values combined with the computed
// line results to produce the summary fields.
type DocumentInput struct {
	Discount     decimal.Decimal
	ShippingCost decimal.Decimal
	PaidAmount   decimal.Decimal
	Lines        []LineResult
}

// DocumentTotals holds the derived summary fields of a document.
//
//	total_discount = Σ line.discount_value + document discount
//	total_vat      = Σ line.vat_value
//	grand_total    = Σ line.total − document discount
//	net_total      = grand_total + shipping cost
//	due_amount     = net_total − paid amount
//
// DueAmount may be negative when the document is overpaid; presentation
// clamps it at zero.
type DocumentTotals struct {
	TotalDiscount decimal.Decimal
	TotalVAT      decimal.Decimal
	GrandTotal    decimal.Decimal
	NetTotal      decimal.Decimal
	DueAmount     decimal.Decimal
}

// SummarizeDocument aggregates the computed line results with the document
// discount, shipping cost and paid amount. Line components are summed at full
// precision and each summary field is rounded exactly once, so recomputation
// from the same inputs always yields the same outputs and line order never
// matters.
//
// A document with no lines is invalid and yields an EMPTY_DOCUMENT error.
func SummarizeDocument(in DocumentInput) (DocumentTotals, error) {
	if len(in.Lines) == 0 {
		return DocumentTotals{}, shared.ErrEmptyDocument
	}
	if in.Discount.IsNegative() {
		return DocumentTotals{}, shared.NewValidationError("discount", "Document discount cannot be negative")
	}
	if in.ShippingCost.IsNegative() {
		return DocumentTotals{}, shared.NewValidationError("shipping_cost", "Shipping cost cannot be negative")
	}
	if in.PaidAmount.IsNegative() {
		return DocumentTotals{}, shared.NewValidationError("paid_amount", "Paid amount cannot be negative")
	}

	sumDiscount := decimal.Zero
	sumVAT := decimal.Zero
	sumTotal := decimal.Zero
	for _, line := range in.Lines {
		sumDiscount = sumDiscount.Add(line.DiscountValue)
		sumVAT = sumVAT.Add(line.VATValue)
		sumTotal = sumTotal.Add(line.Total)
	}

	grandTotal := sumTotal.Sub(in.Discount)
	netTotal := grandTotal.Add(in.ShippingCost)

	return DocumentTotals{
		TotalDiscount: sumDiscount.Add(in.Discount).Round(2),
		TotalVAT:      sumVAT.Round(2),
		GrandTotal:    grandTotal.Round(2),
		NetTotal:      netTotal.Round(2),
		DueAmount:     netTotal.Sub(in.PaidAmount).Round(2),
	}, nil
}
