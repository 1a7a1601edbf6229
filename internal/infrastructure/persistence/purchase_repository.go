package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/openpos/backend/internal/domain/shared"
	"github.com/openpos/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&purchase, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &purchase, nil
}

// FindByChallanNo finds a purchase by its challan number
func (r *GormPurchaseRepository) FindByChallanNo(ctx context.Context, challanNo string) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&purchase, "challan_no = ?", challanNo).Error; err != nil {
		return nil, translateError(err)
	}
	return &purchase, nil
}

// FindAll finds all purchases matching the filter
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*trade.Purchase, error) {
	var purchases []*trade.Purchase
	query := applyDocumentFilter(
		r.db.WithContext(ctx).Model(&trade.Purchase{}).Preload("Items"),
		filter, "purchase_date", "challan_no ILIKE ? OR supplier_name ILIKE ?",
	)
	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// Count counts purchases matching the filter
func (r *GormPurchaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyDocumentConditions(
		r.db.WithContext(ctx).Model(&trade.Purchase{}),
		filter, "purchase_date", "challan_no ILIKE ? OR supplier_name ILIKE ?",
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByChallanNo checks whether a challan number is already recorded
func (r *GormPurchaseRepository) ExistsByChallanNo(ctx context.Context, challanNo string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.Purchase{}).
		Where("challan_no = ?", challanNo).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a purchase together with its items
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(purchase).Error; err != nil {
			return err
		}
		return saveDocumentItems(tx, "purchase_id", purchase.ID, &trade.PurchaseItem{}, len(purchase.Items), func(i int) any {
			purchase.Items[i].PurchaseID = purchase.ID
			return &purchase.Items[i]
		}, func(i int) uuid.UUID {
			return purchase.Items[i].ID
		})
	})
	return translateError(err)
}

// Delete deletes a purchase and its items
func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_id = ?", id).Delete(&trade.PurchaseItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.Purchase{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// saveDocumentItems reconciles the stored line items of a document with the
// aggregate's current items: rows absent from the aggregate are deleted, the
// rest are upserted.
func saveDocumentItems(tx *gorm.DB, fkColumn string, documentID uuid.UUID, itemModel any, count int, itemAt func(int) any, idAt func(int) uuid.UUID) error {
	currentIDs := make([]uuid.UUID, count)
	for i := 0; i < count; i++ {
		currentIDs[i] = idAt(i)
	}

	if len(currentIDs) > 0 {
		if err := tx.Where(fkColumn+" = ? AND id NOT IN ?", documentID, currentIDs).
			Delete(itemModel).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where(fkColumn+" = ?", documentID).Delete(itemModel).Error; err != nil {
			return err
		}
	}

	for i := 0; i < count; i++ {
		if err := tx.Save(itemAt(i)).Error; err != nil {
			return err
		}
	}
	return nil
}

// applyDocumentConditions applies search and date-range conditions shared by
// all trade document repositories.
func applyDocumentConditions(query *gorm.DB, filter shared.Filter, dateColumn, searchClause string) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(searchClause, pattern, pattern)
	}
	if from, ok := filter.Filters["from"]; ok {
		query = query.Where(dateColumn+" >= ?", from)
	}
	if to, ok := filter.Filters["to"]; ok {
		query = query.Where(dateColumn+" <= ?", to)
	}
	return query
}

func applyDocumentFilter(query *gorm.DB, filter shared.Filter, dateColumn, searchClause string) *gorm.DB {
	query = applyDocumentConditions(query, filter, dateColumn, searchClause)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order(dateColumn + " DESC, created_at DESC")
	}

	return query
}
