package trade

import (
	"errors"
	"testing"
	"time"

	"github.com/openpos/backend/internal/domain/pricing"
	"github.com/openpos/backend/internal/domain/shared"
	"github.com/openpos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSale(t *testing.T) *Sale {
	t.Helper()
	sale, err := NewSale(uuid.New(), "Jane Roe", time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return sale
}

func TestNewSale(t *testing.T) {
	tests := []struct {
		name         string
		customerID   uuid.UUID
		customerName string
		date         time.Time
		errField     string
	}{
		{
			name:       "missing customer",
			customerID: uuid.Nil, customerName: "Jane Roe",
			date:     time.Now(),
			errField: "customer_id",
		},
		{
			name:       "missing customer name",
			customerID: uuid.New(),
			date:       time.Now(),
			errField:   "customer_name",
		},
		{
			name:       "zero sale date",
			customerID: uuid.New(), customerName: "Jane Roe",
			errField: "sale_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSale(tt.customerID, tt.customerName, tt.date)
			require.Error(t, err)
			var domainErr *shared.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, tt.errField, domainErr.Field)
		})
	}

	sale := newTestSale(t)
	assert.Empty(t, sale.InvoiceNo)
	assert.Empty(t, sale.Items)
	assert.ErrorIs(t, sale.Validate(), shared.ErrEmptyDocument)
}

func TestSaleTotalsWithShipping(t *testing.T) {
	sale := newTestSale(t)

	// reference document: one line 3 x 100, 10% discount, 5% VAT;
	// document discount 10, shipping 25, paid 175
	_, err := sale.AddItem(uuid.New(), "Widget", "pcs", pricing.LineInput{
		Quantity:        decimal.NewFromInt(3),
		Rate:            decimal.NewFromInt(100),
		DiscountPercent: decimal.NewFromInt(10),
		VATPercent:      decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	require.NoError(t, sale.SetDiscount(valueobject.NewMoney(decimal.NewFromInt(10))))
	require.NoError(t, sale.SetShippingCost(valueobject.NewMoney(decimal.NewFromInt(25))))
	require.NoError(t, sale.SetPayment(PaymentTypeCash, valueobject.NewMoney(decimal.NewFromInt(175))))

	assert.Equal(t, "40", sale.TotalDiscount.String())
	assert.Equal(t, "13.5", sale.TotalVAT.String())
	assert.Equal(t, "273.5", sale.GrandTotal.String())
	assert.Equal(t, "298.5", sale.NetTotal.String())
	assert.Equal(t, "123.5", sale.DueAmount.String())
}

func TestSaleOverpaymentKeepsSignedDue(t *testing.T) {
	sale := newTestSale(t)
	_, err := sale.AddItem(uuid.New(), "Widget", "pcs", pricing.LineInput{
		Quantity: decimal.NewFromInt(1),
		Rate:     decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.NoError(t, sale.SetPayment(PaymentTypeCash, valueobject.NewMoney(decimal.NewFromInt(130))))

	assert.Equal(t, "-30", sale.DueAmount.String())
}

func TestSaleQuantityByProduct(t *testing.T) {
	sale := newTestSale(t)
	productID := uuid.New()
	otherID := uuid.New()

	for _, q := range []int64{2, 3} {
		_, err := sale.AddItem(productID, "Widget", "pcs", pricing.LineInput{
			Quantity: decimal.NewFromInt(q),
			Rate:     decimal.NewFromInt(10),
		})
		require.NoError(t, err)
	}
	_, err := sale.AddItem(otherID, "Gadget", "pcs", pricing.LineInput{
		Quantity: decimal.NewFromInt(4),
		Rate:     decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	demand := sale.QuantityByProduct()
	require.Len(t, demand, 2)
	assert.Equal(t, "5", demand[productID].String())
	assert.Equal(t, "4", demand[otherID].String())
}

func TestSaleItemAvailabilitySnapshot(t *testing.T) {
	sale := newTestSale(t)
	item, err := sale.AddItem(uuid.New(), "Widget", "pcs", pricing.LineInput{
		Quantity: decimal.NewFromInt(2),
		Rate:     decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	item.RecordAvailability(decimal.NewFromInt(17))
	assert.Equal(t, "17", sale.Items[0].AvailableQuantity.String())
}

func TestSaleRemoveItem(t *testing.T) {
	sale := newTestSale(t)
	first, err := sale.AddItem(uuid.New(), "Widget", "pcs", pricing.LineInput{
		Quantity: decimal.NewFromInt(1),
		Rate:     decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	firstID := first.ID
	second, err := sale.AddItem(uuid.New(), "Gadget", "pcs", pricing.LineInput{
		Quantity: decimal.NewFromInt(1),
		Rate:     decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	require.NoError(t, sale.RemoveItem(firstID))
	assert.Equal(t, "20", sale.GrandTotal.String())

	assert.ErrorIs(t, sale.RemoveItem(second.ID), shared.ErrEmptyDocument)
}
