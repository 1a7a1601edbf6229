package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openpos/backend/internal/domain/shared"
	"github.com/openpos/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order by its ID
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	var order trade.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

// FindByOrderNo finds a purchase order by its order number
func (r *GormPurchaseOrderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*trade.PurchaseOrder, error) {
	var order trade.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "order_no = ?", orderNo).Error; err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

// FindAll finds all purchase orders matching the filter
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*trade.PurchaseOrder, error) {
	var orders []*trade.PurchaseOrder
	query := applyDocumentFilter(
		r.db.WithContext(ctx).Model(&trade.PurchaseOrder{}).Preload("Items"),
		filter, "order_date", "order_no ILIKE ? OR supplier_name ILIKE ?",
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts purchase orders matching the filter
func (r *GormPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyDocumentConditions(
		r.db.WithContext(ctx).Model(&trade.PurchaseOrder{}),
		filter, "order_date", "order_no ILIKE ? OR supplier_name ILIKE ?",
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextOrderNo issues the next sequential order number for the given date.
// Format: PO-YYYYMMDD-NNN (e.g., PO-20260901-001).
func (r *GormPurchaseOrderRepository) NextOrderNo(ctx context.Context, date time.Time) (string, error) {
	return nextDocumentNo(ctx, r.db, &trade.PurchaseOrder{}, "order_no", "PO", date)
}

// Save creates or updates a purchase order together with its items
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *trade.PurchaseOrder) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(order).Error; err != nil {
			return err
		}
		return saveDocumentItems(tx, "purchase_order_id", order.ID, &trade.PurchaseOrderItem{}, len(order.Items), func(i int) any {
			order.Items[i].PurchaseOrderID = order.ID
			return &order.Items[i]
		}, func(i int) uuid.UUID {
			return order.Items[i].ID
		})
	})
	return translateError(err)
}

// Delete deletes a purchase order and its items
func (r *GormPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_order_id = ?", id).Delete(&trade.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.PurchaseOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// nextDocumentNo generates the next sequential document number for a day.
// Format: <prefix>-YYYYMMDD-NNN. The suffix grows past three digits once a
// day exceeds 999 documents, so ordering by length first keeps the highest
// suffix on top where a plain string sort would rank 999 above 1000.
func nextDocumentNo(ctx context.Context, db *gorm.DB, model any, column, prefix string, date time.Time) (string, error) {
	dayPrefix := fmt.Sprintf("%s-%s-", prefix, date.Format("20060102"))

	var lastNo string
	err := db.WithContext(ctx).
		Model(model).
		Select(column).
		Where(column+" LIKE ?", dayPrefix+"%").
		Order(fmt.Sprintf("LENGTH(%s) DESC, %s DESC", column, column)).
		Limit(1).
		Scan(&lastNo).Error
	if err != nil {
		return "", err
	}

	nextNum := 1
	if lastNo != "" {
		parts := strings.Split(lastNo, "-")
		if len(parts) == 3 {
			var num int
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%03d", dayPrefix, nextNum), nil
}
