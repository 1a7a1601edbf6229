package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/openpos/backend/internal/domain/catalog"
	"github.com/openpos/backend/internal/domain/inventory"
	"github.com/openpos/backend/internal/domain/pricing"
	"github.com/openpos/backend/internal/domain/shared"
	"github.com/openpos/backend/internal/domain/shared/valueobject"
	"github.com/openpos/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSaleTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&catalog.Product{},
		&trade.Purchase{}, &trade.PurchaseItem{},
		&trade.Sale{}, &trade.SaleItem{},
	)
	require.NoError(t, err)

	return db
}

func seedProduct(t *testing.T, db *gorm.DB, barcode, name string) *catalog.Product {
	vat, err := valueobject.NewPercentFromFloat(0)
	require.NoError(t, err)
	product, err := catalog.NewProduct(barcode, name, uuid.New(), uuid.New(), uuid.New(),
		valueobject.NewMoneyFromFloat(80), valueobject.NewMoneyFromFloat(100), vat)
	require.NoError(t, err)
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedPurchase(t *testing.T, db *gorm.DB, challanNo string, product *catalog.Product, quantity int64) {
	purchase, err := trade.NewPurchase(challanNo, uuid.New(), "Northwind Supplies",
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = purchase.AddItem(product.ID, product.Name, pricing.LineInput{
		Quantity: decimal.NewFromInt(quantity),
		Rate:     decimal.NewFromInt(80),
	})
	require.NoError(t, err)
	require.NoError(t, NewGormPurchaseRepository(db).Save(context.Background(), purchase))
}

func newTestSale(t *testing.T, invoiceNo string, product *catalog.Product, quantity int64) *trade.Sale {
	sale, err := trade.NewSale(uuid.New(), "Acme Traders", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	sale.InvoiceNo = invoiceNo
	_, err = sale.AddItem(product.ID, product.Name, "pcs", pricing.LineInput{
		Quantity: decimal.NewFromInt(quantity),
		Rate:     decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	return sale
}

func TestGormSaleRepository_SaveAdmitted(t *testing.T) {
	ctx := context.Background()

	t.Run("admits a sale covered by stock and snapshots availability", func(t *testing.T) {
		db := setupSaleTestDB(t)
		repo := NewGormSaleRepository(db)
		product := seedProduct(t, db, "1000001", "Widget")
		seedPurchase(t, db, "CH-5001", product, 20)

		sale := newTestSale(t, "INV-20260901-001", product, 10)
		require.NoError(t, repo.SaveAdmitted(ctx, sale))

		found, err := repo.FindByID(ctx, sale.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 1)
		assert.True(t, found.Items[0].AvailableQuantity.Equal(decimal.NewFromInt(20)))
	})

	t.Run("rejects a sale exceeding on-hand and persists nothing", func(t *testing.T) {
		db := setupSaleTestDB(t)
		repo := NewGormSaleRepository(db)
		product := seedProduct(t, db, "1000002", "Widget")
		seedPurchase(t, db, "CH-5002", product, 5)

		sale := newTestSale(t, "INV-20260901-002", product, 10)
		err := repo.SaveAdmitted(ctx, sale)

		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
		var stockErr *inventory.InsufficientStockError
		require.True(t, errors.As(err, &stockErr))
		require.Len(t, stockErr.Shortfalls, 1)
		assert.True(t, stockErr.Shortfalls[0].Available.Equal(decimal.NewFromInt(5)))

		var saleCount, itemCount int64
		require.NoError(t, db.Model(&trade.Sale{}).Count(&saleCount).Error)
		require.NoError(t, db.Model(&trade.SaleItem{}).Count(&itemCount).Error)
		assert.Zero(t, saleCount)
		assert.Zero(t, itemCount)
	})

	t.Run("counts earlier sales against on-hand", func(t *testing.T) {
		db := setupSaleTestDB(t)
		repo := NewGormSaleRepository(db)
		product := seedProduct(t, db, "1000003", "Widget")
		seedPurchase(t, db, "CH-5003", product, 20)

		first := newTestSale(t, "INV-20260901-003", product, 15)
		require.NoError(t, repo.SaveAdmitted(ctx, first))

		second := newTestSale(t, "INV-20260901-004", product, 10)
		err := repo.SaveAdmitted(ctx, second)

		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))

		var saleCount int64
		require.NoError(t, db.Model(&trade.Sale{}).Count(&saleCount).Error)
		assert.Equal(t, int64(1), saleCount)
	})

	t.Run("rejects a sale referencing an unknown product", func(t *testing.T) {
		db := setupSaleTestDB(t)
		repo := NewGormSaleRepository(db)
		product := seedProduct(t, db, "1000004", "Widget")
		seedPurchase(t, db, "CH-5004", product, 20)

		ghost := *product
		ghost.ID = uuid.New()
		sale := newTestSale(t, "INV-20260901-005", &ghost, 1)
		err := repo.SaveAdmitted(ctx, sale)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeValidation, domainErr.Code)
	})
}
