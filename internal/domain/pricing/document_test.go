package pricing

import (
	"testing"

	"github.com/openpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func computeLines(t *testing.T, inputs ...LineInput) []LineResult {
	t.Helper()
	lines := make([]LineResult, 0, len(inputs))
	for _, in := range inputs {
		result, err := ComputeLine(in)
		require.NoError(t, err)
		lines = append(lines, result)
	}
	return lines
}

func TestSummarizeDocument_ReferenceScenario(t *testing.T) {
	// Two lines of (3 × 100.00, 10% discount, 5% VAT) with a 20.00 document
	// discount.
	lines := computeLines(t,
		lineInput(3, 100.00, 10, 5),
		lineInput(3, 100.00, 10, 5),
	)

	totals, err := SummarizeDocument(DocumentInput{
		Discount: decimal.NewFromFloat(20.00),
		Lines:    lines,
	})
	require.NoError(t, err)

	assert.Equal(t, "80.00", totals.TotalDiscount.StringFixed(2))
	assert.Equal(t, "27.00", totals.TotalVAT.StringFixed(2))
	assert.Equal(t, "547.00", totals.GrandTotal.StringFixed(2))
	assert.Equal(t, "547.00", totals.NetTotal.StringFixed(2))
	assert.Equal(t, "547.00", totals.DueAmount.StringFixed(2))
}

func TestSummarizeDocument_ShippingAndPaid(t *testing.T) {
	lines := computeLines(t, lineInput(3, 100.00, 10, 5))

	totals, err := SummarizeDocument(DocumentInput{
		Discount:     decimal.NewFromFloat(10.00),
		ShippingCost: decimal.NewFromFloat(25.00),
		PaidAmount:   decimal.NewFromFloat(200.00),
		Lines:        lines,
	})
	require.NoError(t, err)

	assert.Equal(t, "40.00", totals.TotalDiscount.StringFixed(2))
	assert.Equal(t, "13.50", totals.TotalVAT.StringFixed(2))
	assert.Equal(t, "273.50", totals.GrandTotal.StringFixed(2))
	assert.Equal(t, "298.50", totals.NetTotal.StringFixed(2))
	assert.Equal(t, "98.50", totals.DueAmount.StringFixed(2))
}

func TestSummarizeDocument_Overpaid(t *testing.T) {
	lines := computeLines(t, lineInput(1, 50.00, 0, 0))

	totals, err := SummarizeDocument(DocumentInput{
		PaidAmount: decimal.NewFromFloat(80.00),
		Lines:      lines,
	})
	require.NoError(t, err)

	// Stored due amount carries the sign; presentation clamps at zero.
	assert.Equal(t, "-30.00", totals.DueAmount.StringFixed(2))
}

func TestSummarizeDocument_EmptyDocument(t *testing.T) {
	_, err := SummarizeDocument(DocumentInput{})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeEmptyDocument, domainErr.Code)
}

func TestSummarizeDocument_Validation(t *testing.T) {
	lines := computeLines(t, lineInput(1, 10.00, 0, 0))

	tests := []struct {
		name  string
		input DocumentInput
		field string
	}{
		{"negative discount", DocumentInput{Discount: decimal.NewFromFloat(-1), Lines: lines}, "discount"},
		{"negative shipping", DocumentInput{ShippingCost: decimal.NewFromFloat(-1), Lines: lines}, "shipping_cost"},
		{"negative paid", DocumentInput{PaidAmount: decimal.NewFromFloat(-1), Lines: lines}, "paid_amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SummarizeDocument(tt.input)
			require.Error(t, err)

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, shared.CodeValidation, domainErr.Code)
			assert.Equal(t, tt.field, domainErr.Field)
		})
	}
}

func TestSummarizeDocument_OrderIndependent(t *testing.T) {
	a := computeLines(t,
		lineInput(3, 9.99, 7.5, 12.5),
		lineInput(1, 250.00, 0, 15),
		lineInput(12, 1.05, 50, 0),
	)
	b := []LineResult{a[2], a[0], a[1]}
	c := []LineResult{a[1], a[2], a[0]}

	input := func(lines []LineResult) DocumentInput {
		return DocumentInput{
			Discount:   decimal.NewFromFloat(5.00),
			PaidAmount: decimal.NewFromFloat(100.00),
			Lines:      lines,
		}
	}

	first, err := SummarizeDocument(input(a))
	require.NoError(t, err)
	second, err := SummarizeDocument(input(b))
	require.NoError(t, err)
	third, err := SummarizeDocument(input(c))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
}

func TestSummarizeDocument_Idempotent(t *testing.T) {
	lines := computeLines(t,
		lineInput(4, 33.33, 11.11, 9.99),
		lineInput(2, 0.05, 0, 100),
	)
	input := DocumentInput{
		Discount:     decimal.NewFromFloat(1.23),
		ShippingCost: decimal.NewFromFloat(4.56),
		PaidAmount:   decimal.NewFromFloat(7.89),
		Lines:        lines,
	}

	first, err := SummarizeDocument(input)
	require.NoError(t, err)
	second, err := SummarizeDocument(input)
	require.NoError(t, err)

	assert.True(t, first.TotalDiscount.Equal(second.TotalDiscount))
	assert.True(t, first.TotalVAT.Equal(second.TotalVAT))
	assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
	assert.True(t, first.NetTotal.Equal(second.NetTotal))
	assert.True(t, first.DueAmount.Equal(second.DueAmount))
}
