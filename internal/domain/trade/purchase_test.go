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

func newTestPurchase(t *testing.T) *Purchase {
	t.Helper()
	purchase, err := NewPurchase("CH-1001", uuid.New(), "Acme Traders", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return purchase
}

func TestNewPurchase(t *testing.T) {
	tests := []struct {
		name         string
		challanNo    string
		supplierID   uuid.UUID
		supplierName string
		date         time.Time
		wantErr      bool
		errField     string
	}{
		{
			name:         "valid purchase",
			challanNo:    "CH-1001",
			supplierID:   uuid.New(),
			supplierName: "Acme Traders",
			date:         time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			wantErr:      false,
		},
		{
			name:         "empty challan number",
			challanNo:    "  ",
			supplierID:   uuid.New(),
			supplierName: "Acme Traders",
			date:         time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			wantErr:      true,
			errField:     "challan_no",
		},
		{
			name:         "missing supplier",
			challanNo:    "CH-1001",
			supplierID:   uuid.Nil,
			supplierName: "Acme Traders",
			date:         time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			wantErr:      true,
			errField:     "supplier_id",
		},
		{
			name:         "zero purchase date",
			challanNo:    "CH-1001",
			supplierID:   uuid.New(),
			supplierName: "Acme Traders",
			wantErr:      true,
			errField:     "purchase_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			purchase, err := NewPurchase(tt.challanNo, tt.supplierID, tt.supplierName, tt.date)
			if tt.wantErr {
				require.Error(t, err)
				var domainErr *shared.DomainError
				require.True(t, errors.As(err, &domainErr))
				assert.Equal(t, shared.CodeValidation, domainErr.Code)
				assert.Equal(t, tt.errField, domainErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "CH-1001", purchase.ChallanNo)
			assert.Equal(t, PaymentTypeCash, purchase.PaymentType)
			assert.Empty(t, purchase.Items)
			assert.True(t, purchase.GrandTotal.IsZero())
		})
	}
}

func TestPurchaseAddItemRecalculatesTotals(t *testing.T) {
	purchase := newTestPurchase(t)

	// 3 x 100, 10% discount, 5% VAT: discount 30.00, VAT 13.50, total 283.50
	_, err := purchase.AddItem(uuid.New(), "Widget", pricing.LineInput{
		Quantity:        decimal.NewFromInt(3),
		Rate:            decimal.NewFromInt(100),
		DiscountPercent: decimal.NewFromInt(10),
		VATPercent:      decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	assert.Equal(t, "30", purchase.TotalDiscount.String())
	assert.Equal(t, "13.5", purchase.TotalVAT.String())
	assert.Equal(t, "283.5", purchase.GrandTotal.String())
	assert.Equal(t, "283.5", purchase.DueAmount.String())

	// second identical line doubles the sums
	_, err = purchase.AddItem(uuid.New(), "Widget", pricing.LineInput{
		Quantity:        decimal.NewFromInt(3),
		Rate:            decimal.NewFromInt(100),
		DiscountPercent: decimal.NewFromInt(10),
		VATPercent:      decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	assert.Equal(t, "60", purchase.TotalDiscount.String())
	assert.Equal(t, "27", purchase.TotalVAT.String())
	assert.Equal(t, "567", purchase.GrandTotal.String())
}

func TestPurchaseDocumentDiscountAndPayment(t *testing.T) {
	purchase := newTestPurchase(t)

	for i := 0; i < 2; i++ {
		_, err := purchase.AddItem(uuid.New(), "Widget", pricing.LineInput{
			Quantity:        decimal.NewFromInt(3),
			Rate:            decimal.NewFromInt(100),
			DiscountPercent: decimal.NewFromInt(10),
			VATPercent:      decimal.NewFromInt(5),
		})
		require.NoError(t, err)
	}

	require.NoError(t, purchase.SetDiscount(valueobject.NewMoney(decimal.NewFromInt(20))))
	assert.Equal(t, "80", purchase.TotalDiscount.String())
	assert.Equal(t, "547", purchase.GrandTotal.String())

	require.NoError(t, purchase.SetPayment(PaymentTypeBank, valueobject.NewMoney(decimal.NewFromInt(500))))
	assert.Equal(t, PaymentTypeBank, purchase.PaymentType)
	assert.Equal(t, "47", purchase.DueAmount.String())

	err := purchase.SetPayment(PaymentType("CHEQUE"), valueobject.ZeroMoney())
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeValidation, domainErr.Code)
}

func TestPurchaseRemoveItem(t *testing.T) {
	purchase := newTestPurchase(t)

	first, err := purchase.AddItem(uuid.New(), "Widget", pricing.LineInput{
		Quantity: decimal.NewFromInt(1),
		Rate:     decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	firstID := first.ID

	second, err := purchase.AddItem(uuid.New(), "Gadget", pricing.LineInput{
		Quantity: decimal.NewFromInt(2),
		Rate:     decimal.NewFromInt(25),
	})
	require.NoError(t, err)

	require.NoError(t, purchase.RemoveItem(firstID))
	assert.Equal(t, 1, purchase.ItemCount())
	assert.Equal(t, "50", purchase.GrandTotal.String())

	// last line cannot be removed
	err = purchase.RemoveItem(second.ID)
	assert.ErrorIs(t, err, shared.ErrEmptyDocument)

	err = purchase.RemoveItem(uuid.New())
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeNotFound, domainErr.Code)
}

func TestPurchaseValidateRequiresItems(t *testing.T) {
	purchase := newTestPurchase(t)
	assert.ErrorIs(t, purchase.Validate(), shared.ErrEmptyDocument)

	_, err := purchase.AddItem(uuid.New(), "Widget", pricing.LineInput{
		Quantity: decimal.NewFromInt(1),
		Rate:     decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.NoError(t, purchase.Validate())
}

func TestPurchaseItemBatch(t *testing.T) {
	purchase := newTestPurchase(t)
	item, err := purchase.AddItem(uuid.New(), "Syrup", pricing.LineInput{
		Quantity: decimal.NewFromInt(10),
		Rate:     decimal.NewFromInt(12),
	})
	require.NoError(t, err)

	expiry := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, item.SetBatch("B-2025-06", &expiry))
	assert.Equal(t, "B-2025-06", item.BatchNo)
	require.NotNil(t, item.ExpiryDate)
	assert.True(t, expiry.Equal(*item.ExpiryDate))
}

func TestPurchaseTotalQuantity(t *testing.T) {
	purchase := newTestPurchase(t)
	quantities := []int64{3, 7, 2}
	for _, q := range quantities {
		_, err := purchase.AddItem(uuid.New(), "Widget", pricing.LineInput{
			Quantity: decimal.NewFromInt(q),
			Rate:     decimal.NewFromInt(10),
		})
		require.NoError(t, err)
	}
	assert.Equal(t, "12", purchase.TotalQuantity().String())
}
