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

func newTestOrder(t *testing.T) *PurchaseOrder {
	t.Helper()
	order, err := NewPurchaseOrder(uuid.New(), "Acme Traders", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return order
}

func TestNewPurchaseOrder(t *testing.T) {
	order := newTestOrder(t)
	assert.Empty(t, order.OrderNo)
	assert.Equal(t, PaymentTypeCash, order.PaymentType)
	assert.ErrorIs(t, order.Validate(), shared.ErrEmptyDocument)

	_, err := NewPurchaseOrder(uuid.Nil, "Acme Traders", time.Now())
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "supplier_id", domainErr.Field)
}

func TestPurchaseOrderTotals(t *testing.T) {
	order := newTestOrder(t)

	_, err := order.AddItem(uuid.New(), "Widget", pricing.LineInput{
		Quantity:        decimal.NewFromInt(3),
		Rate:            decimal.NewFromInt(100),
		DiscountPercent: decimal.NewFromInt(10),
		VATPercent:      decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	require.NoError(t, order.SetDiscount(valueobject.NewMoney(decimal.NewFromInt(10))))
	require.NoError(t, order.SetPayment(PaymentTypeCredit, valueobject.NewMoney(decimal.NewFromInt(100))))

	assert.Equal(t, "40", order.TotalDiscount.String())
	assert.Equal(t, "13.5", order.TotalVAT.String())
	assert.Equal(t, "273.5", order.GrandTotal.String())
	assert.Equal(t, "173.5", order.DueAmount.String())
}

func TestPurchaseOrderReceive(t *testing.T) {
	order := newTestOrder(t)

	item, err := order.AddItem(uuid.New(), "Widget", pricing.LineInput{
		Quantity: decimal.NewFromInt(10),
		Rate:     decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	itemID := item.ID

	require.NoError(t, order.Receive([]ReceiptLine{{ItemID: itemID, Quantity: decimal.NewFromInt(4)}}))
	assert.Equal(t, "4", order.Items[0].ReceivedQuantity.String())
	assert.Equal(t, "6", order.Items[0].Outstanding().String())
	assert.Equal(t, 1, order.DiscrepancyCount())
	assert.False(t, order.IsFullyReceived())

	// receipts accumulate up to the ordered quantity
	require.NoError(t, order.Receive([]ReceiptLine{{ItemID: itemID, Quantity: decimal.NewFromInt(6)}}))
	assert.Equal(t, 0, order.DiscrepancyCount())
	assert.True(t, order.IsFullyReceived())

	err = order.Receive([]ReceiptLine{{ItemID: itemID, Quantity: decimal.NewFromInt(1)}})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeInvalidState, domainErr.Code)
}

func TestPurchaseOrderReceiveValidation(t *testing.T) {
	order := newTestOrder(t)
	item, err := order.AddItem(uuid.New(), "Widget", pricing.LineInput{
		Quantity: decimal.NewFromInt(10),
		Rate:     decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		receipts []ReceiptLine
		wantCode string
	}{
		{
			name:     "no receipt lines",
			receipts: nil,
			wantCode: shared.CodeValidation,
		},
		{
			name:     "unknown item",
			receipts: []ReceiptLine{{ItemID: uuid.New(), Quantity: decimal.NewFromInt(1)}},
			wantCode: shared.CodeNotFound,
		},
		{
			name:     "zero quantity",
			receipts: []ReceiptLine{{ItemID: item.ID, Quantity: decimal.Zero}},
			wantCode: shared.CodeValidation,
		},
		{
			name:     "negative quantity",
			receipts: []ReceiptLine{{ItemID: item.ID, Quantity: decimal.NewFromInt(-2)}},
			wantCode: shared.CodeValidation,
		},
		{
			name:     "over-receipt",
			receipts: []ReceiptLine{{ItemID: item.ID, Quantity: decimal.NewFromInt(11)}},
			wantCode: shared.CodeInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := order.Receive(tt.receipts)
			require.Error(t, err)
			var domainErr *shared.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, tt.wantCode, domainErr.Code)
			// failed receipts leave the line untouched
			assert.True(t, order.Items[0].ReceivedQuantity.IsZero())
		})
	}
}

func TestPurchaseOrderRemoveItem(t *testing.T) {
	order := newTestOrder(t)

	first, err := order.AddItem(uuid.New(), "Widget", pricing.LineInput{
		Quantity: decimal.NewFromInt(2),
		Rate:     decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), "Gadget", pricing.LineInput{
		Quantity: decimal.NewFromInt(1),
		Rate:     decimal.NewFromInt(45),
	})
	require.NoError(t, err)

	require.NoError(t, order.Receive([]ReceiptLine{{ItemID: first.ID, Quantity: decimal.NewFromInt(1)}}))

	// a line with receipts cannot be removed
	err = order.RemoveItem(first.ID)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeInvalidState, domainErr.Code)

	require.NoError(t, order.RemoveItem(order.Items[1].ID))
	assert.Equal(t, 1, order.ItemCount())
	assert.Equal(t, "60", order.GrandTotal.String())
}
