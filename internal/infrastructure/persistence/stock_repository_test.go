package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormStockRepository_Report(t *testing.T) {
	t.Run("derives on-hand and valuations from ledger sums", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormStockRepository(db)

		productID := uuid.New()
		soldOutID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"product_id", "barcode", "product_name", "category_name", "unit_name",
			"cost_price", "sale_price", "purchased_qty", "sold_qty",
		}).
			AddRow(productID, "890100", "Keyboard", "Electronics", "pcs", "80", "100", "10", "4").
			AddRow(soldOutID, "890101", "Mouse", "Electronics", "pcs", "20", "30", "5", "5")

		mock.ExpectQuery(`SELECT p.id AS product_id,`).WillReturnRows(rows)

		report, err := repo.Report(context.Background(), "")

		require.NoError(t, err)
		require.Len(t, report.Items, 2)

		keyboard := report.Items[0]
		assert.Equal(t, "6", keyboard.OnHand.String())
		assert.Equal(t, "480", keyboard.PurchaseValue.String())
		assert.Equal(t, "600", keyboard.SaleValue.String())
		assert.False(t, keyboard.IsOutOfStock())

		mouse := report.Items[1]
		assert.True(t, mouse.OnHand.IsZero())
		assert.True(t, mouse.IsOutOfStock())

		assert.Equal(t, 1, report.OutOfStockCount)
		assert.Equal(t, "480", report.TotalPurchaseValue.String())
		assert.Equal(t, "600", report.TotalSaleValue.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty catalog yields empty report", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormStockRepository(db)

		rows := sqlmock.NewRows([]string{
			"product_id", "barcode", "product_name", "category_name", "unit_name",
			"cost_price", "sale_price", "purchased_qty", "sold_qty",
		})
		mock.ExpectQuery(`SELECT p.id AS product_id,`).WillReturnRows(rows)

		report, err := repo.Report(context.Background(), "")

		require.NoError(t, err)
		assert.Empty(t, report.Items)
		assert.Equal(t, 0, report.OutOfStockCount)
		assert.True(t, report.TotalPurchaseValue.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockRepository_OnHandForProducts(t *testing.T) {
	t.Run("products without movements default to zero", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormStockRepository(db)

		movedID := uuid.New()
		idleID := uuid.New()

		purchaseRows := sqlmock.NewRows([]string{"product_id", "qty"}).
			AddRow(movedID, "12")
		mock.ExpectQuery(`SELECT product_id, COALESCE\(SUM\(quantity\), 0\) AS qty FROM "purchase_items"`).
			WillReturnRows(purchaseRows)

		saleRows := sqlmock.NewRows([]string{"product_id", "qty"}).
			AddRow(movedID, "7")
		mock.ExpectQuery(`SELECT product_id, COALESCE\(SUM\(quantity\), 0\) AS qty FROM "sale_items"`).
			WillReturnRows(saleRows)

		onHand, err := repo.OnHandForProducts(context.Background(), []uuid.UUID{movedID, idleID})

		require.NoError(t, err)
		assert.Equal(t, "5", onHand[movedID].String())
		assert.True(t, onHand[idleID].IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
