package inventory

import (
	"bytes"
	"errors"
	"testing"

	"github.com/openpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport(t *testing.T) {
	levels := []StockLevel{
		{
			ProductName:   "Widget",
			OnHand:        decimal.NewFromInt(5),
			PurchaseValue: decimal.NewFromInt(500),
			SaleValue:     decimal.NewFromInt(650),
		},
		{
			ProductName:   "Gadget",
			OnHand:        decimal.Zero,
			PurchaseValue: decimal.NewFromInt(120),
			SaleValue:     decimal.NewFromInt(120),
		},
		{
			ProductName:   "Returned part",
			OnHand:        decimal.NewFromInt(-1),
			PurchaseValue: decimal.Zero,
			SaleValue:     decimal.NewFromInt(30),
		},
	}

	report := BuildReport(levels)

	assert.Equal(t, "620", report.TotalPurchaseValue.String())
	assert.Equal(t, "800", report.TotalSaleValue.String())
	assert.Equal(t, 2, report.OutOfStockCount)
	assert.Len(t, report.Items, 3)
}

func TestBuildReportEmpty(t *testing.T) {
	report := BuildReport(nil)
	assert.True(t, report.TotalPurchaseValue.IsZero())
	assert.True(t, report.TotalSaleValue.IsZero())
	assert.Zero(t, report.OutOfStockCount)
}

func TestCheckAvailability(t *testing.T) {
	widgetID := uuid.New()
	gadgetID := uuid.New()
	names := map[uuid.UUID]string{widgetID: "Widget", gadgetID: "Gadget"}

	t.Run("all demand met", func(t *testing.T) {
		err := CheckAvailability(
			map[uuid.UUID]decimal.Decimal{widgetID: decimal.NewFromInt(3)},
			map[uuid.UUID]decimal.Decimal{widgetID: decimal.NewFromInt(3)},
			names,
		)
		assert.NoError(t, err)
	})

	t.Run("single shortfall", func(t *testing.T) {
		err := CheckAvailability(
			map[uuid.UUID]decimal.Decimal{widgetID: decimal.NewFromInt(5)},
			map[uuid.UUID]decimal.Decimal{widgetID: decimal.NewFromInt(2)},
			names,
		)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))

		var stockErr *InsufficientStockError
		require.True(t, errors.As(err, &stockErr))
		require.Len(t, stockErr.Shortfalls, 1)
		assert.Equal(t, "Widget", stockErr.Shortfalls[0].ProductName)
		assert.Equal(t, "5", stockErr.Shortfalls[0].Requested.String())
		assert.Equal(t, "2", stockErr.Shortfalls[0].Available.String())
	})

	t.Run("unknown product counts as zero stock", func(t *testing.T) {
		err := CheckAvailability(
			map[uuid.UUID]decimal.Decimal{gadgetID: decimal.NewFromInt(1)},
			map[uuid.UUID]decimal.Decimal{},
			names,
		)
		require.Error(t, err)
		var stockErr *InsufficientStockError
		require.True(t, errors.As(err, &stockErr))
		assert.True(t, stockErr.Shortfalls[0].Available.IsZero())
	})

	t.Run("reports every short product", func(t *testing.T) {
		err := CheckAvailability(
			map[uuid.UUID]decimal.Decimal{
				widgetID: decimal.NewFromInt(5),
				gadgetID: decimal.NewFromInt(2),
			},
			map[uuid.UUID]decimal.Decimal{
				widgetID: decimal.NewFromInt(1),
				gadgetID: decimal.NewFromInt(1),
			},
			names,
		)
		require.Error(t, err)
		var stockErr *InsufficientStockError
		require.True(t, errors.As(err, &stockErr))
		assert.Len(t, stockErr.Shortfalls, 2)
		assert.Contains(t, err.Error(), "insufficient stock")
	})

	t.Run("shortfall order is stable across calls", func(t *testing.T) {
		demand := map[uuid.UUID]decimal.Decimal{
			widgetID: decimal.NewFromInt(5),
			gadgetID: decimal.NewFromInt(5),
		}
		onHand := map[uuid.UUID]decimal.Decimal{}

		first := CheckAvailability(demand, onHand, names)
		require.Error(t, first)

		for i := 0; i < 10; i++ {
			err := CheckAvailability(demand, onHand, names)
			require.Error(t, err)
			assert.Equal(t, first.Error(), err.Error())
		}

		var stockErr *InsufficientStockError
		require.True(t, errors.As(first, &stockErr))
		require.Len(t, stockErr.Shortfalls, 2)
		assert.Less(t, bytes.Compare(stockErr.Shortfalls[0].ProductID[:], stockErr.Shortfalls[1].ProductID[:]), 0)
	})
}
