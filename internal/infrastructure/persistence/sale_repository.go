package persistence

import (
	"bytes"
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/openpos/backend/internal/domain/catalog"
	"github.com/openpos/backend/internal/domain/inventory"
	"github.com/openpos/backend/internal/domain/shared"
	"github.com/openpos/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	var sale trade.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&sale, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &sale, nil
}

// FindByInvoiceNo finds a sale by its invoice number
func (r *GormSaleRepository) FindByInvoiceNo(ctx context.Context, invoiceNo string) (*trade.Sale, error) {
	var sale trade.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&sale, "invoice_no = ?", invoiceNo).Error; err != nil {
		return nil, translateError(err)
	}
	return &sale, nil
}

// FindAll finds all sales matching the filter
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*trade.Sale, error) {
	var sales []*trade.Sale
	query := applyDocumentFilter(
		r.db.WithContext(ctx).Model(&trade.Sale{}).Preload("Items"),
		filter, "sale_date", "invoice_no ILIKE ? OR customer_name ILIKE ?",
	)
	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// Count counts sales matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyDocumentConditions(
		r.db.WithContext(ctx).Model(&trade.Sale{}),
		filter, "sale_date", "invoice_no ILIKE ? OR customer_name ILIKE ?",
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextInvoiceNo issues the next sequential invoice number for the given date.
// Format: INV-YYYYMMDD-NNN (e.g., INV-20260901-001).
func (r *GormSaleRepository) NextInvoiceNo(ctx context.Context, date time.Time) (string, error) {
	return nextDocumentNo(ctx, r.db, &trade.Sale{}, "invoice_no", "INV", date)
}

// Save creates or updates a sale together with its items, without any
// stock admission check. Used for edits of documents already admitted.
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveInTx(tx, sale)
	})
	return translateError(err)
}

// SaveAdmitted persists a sale only if every requested quantity is covered
// by derived stock. Product rows are locked for the duration of the
// transaction so concurrent sales of the same products serialize, and the
// on-hand derivation cannot race with a competing insert.
func (r *GormSaleRepository) SaveAdmitted(ctx context.Context, sale *trade.Sale) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		demand := sale.QuantityByProduct()
		productIDs := sortedProductIDs(demand)

		var products []catalog.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", productIDs).
			Find(&products).Error; err != nil {
			return err
		}
		names := make(map[uuid.UUID]string, len(products))
		for _, p := range products {
			names[p.ID] = p.Name
		}
		for _, id := range productIDs {
			if _, ok := names[id]; !ok {
				return shared.NewValidationError("product_id", "Product not found: "+id.String())
			}
		}

		onHand, err := sumOnHand(tx, productIDs)
		if err != nil {
			return err
		}

		if err := inventory.CheckAvailability(demand, onHand, names); err != nil {
			return err
		}

		for i := range sale.Items {
			sale.Items[i].RecordAvailability(onHand[sale.Items[i].ProductID])
		}

		return r.saveInTx(tx, sale)
	})
	return translateError(err)
}

// Delete deletes a sale and its items
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&trade.SaleItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.Sale{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormSaleRepository) saveInTx(tx *gorm.DB, sale *trade.Sale) error {
	if err := tx.Omit("Items").Save(sale).Error; err != nil {
		return err
	}
	return saveDocumentItems(tx, "sale_id", sale.ID, &trade.SaleItem{}, len(sale.Items), func(i int) any {
		sale.Items[i].SaleID = sale.ID
		return &sale.Items[i]
	}, func(i int) uuid.UUID {
		return sale.Items[i].ID
	})
}

// sortedProductIDs returns the product IDs in a stable order so that
// concurrent admissions always lock product rows in the same sequence.
func sortedProductIDs(demand map[uuid.UUID]decimal.Decimal) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(demand))
	for id := range demand {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
	return ids
}
