package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/openpos/backend/internal/domain/pricing"
	"github.com/openpos/backend/internal/domain/shared"
	"github.com/openpos/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTradeTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&trade.Purchase{}, &trade.PurchaseItem{})
	require.NoError(t, err)

	return db
}

func newTestPurchase(t *testing.T, challanNo string) *trade.Purchase {
	purchase, err := trade.NewPurchase(challanNo, uuid.New(), "Northwind Supplies", time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	_, err = purchase.AddItem(uuid.New(), "Widget", pricing.LineInput{
		Quantity: decimal.NewFromInt(10),
		Rate:     decimal.NewFromInt(25),
	})
	require.NoError(t, err)

	return purchase
}

func TestGormPurchaseRepository_Save(t *testing.T) {
	db := setupTradeTestDB(t)
	repo := NewGormPurchaseRepository(db)
	ctx := context.Background()

	t.Run("round-trips a purchase with its items", func(t *testing.T) {
		purchase := newTestPurchase(t, "CH-1001")
		_, err := purchase.AddItem(uuid.New(), "Gadget", pricing.LineInput{
			Quantity: decimal.NewFromInt(4),
			Rate:     decimal.NewFromInt(50),
		})
		require.NoError(t, err)

		require.NoError(t, repo.Save(ctx, purchase))

		found, err := repo.FindByID(ctx, purchase.ID)
		require.NoError(t, err)
		assert.Equal(t, "CH-1001", found.ChallanNo)
		assert.Len(t, found.Items, 2)
		assert.True(t, found.GrandTotal.Equal(decimal.NewFromInt(450)))
	})

	t.Run("re-saving drops removed items", func(t *testing.T) {
		purchase := newTestPurchase(t, "CH-1002")
		item, err := purchase.AddItem(uuid.New(), "Gadget", pricing.LineInput{
			Quantity: decimal.NewFromInt(4),
			Rate:     decimal.NewFromInt(50),
		})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, purchase))

		require.NoError(t, purchase.RemoveItem(item.ID))
		require.NoError(t, repo.Save(ctx, purchase))

		found, err := repo.FindByID(ctx, purchase.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 1)
		assert.Equal(t, "Widget", found.Items[0].ItemName)
	})
}

func TestGormPurchaseRepository_FindByID(t *testing.T) {
	db := setupTradeTestDB(t)
	repo := NewGormPurchaseRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormPurchaseRepository_ExistsByChallanNo(t *testing.T) {
	db := setupTradeTestDB(t)
	repo := NewGormPurchaseRepository(db)
	ctx := context.Background()

	purchase := newTestPurchase(t, "CH-2001")
	require.NoError(t, repo.Save(ctx, purchase))

	exists, err := repo.ExistsByChallanNo(ctx, "CH-2001")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByChallanNo(ctx, "CH-9999")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormPurchaseRepository_Delete(t *testing.T) {
	db := setupTradeTestDB(t)
	repo := NewGormPurchaseRepository(db)
	ctx := context.Background()

	purchase := newTestPurchase(t, "CH-3001")
	require.NoError(t, repo.Save(ctx, purchase))

	require.NoError(t, repo.Delete(ctx, purchase.ID))

	_, err := repo.FindByID(ctx, purchase.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&trade.PurchaseItem{}).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, repo.Delete(ctx, purchase.ID), shared.ErrNotFound)
}
