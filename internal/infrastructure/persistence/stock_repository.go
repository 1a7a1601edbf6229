package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/openpos/backend/internal/domain/inventory"
	"github.com/openpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormStockRepository derives stock positions from the purchase and sale
// line ledgers. Nothing here writes; stock is never stored as a counter.
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// stockRow is the scan target for the stock aggregation query
type stockRow struct {
	ProductID    uuid.UUID       `gorm:"column:product_id"`
	Barcode      string          `gorm:"column:barcode"`
	ProductName  string          `gorm:"column:product_name"`
	CategoryName string          `gorm:"column:category_name"`
	UnitName     string          `gorm:"column:unit_name"`
	CostPrice    decimal.Decimal `gorm:"column:cost_price"`
	SalePrice    decimal.Decimal `gorm:"column:sale_price"`
	PurchasedQty decimal.Decimal `gorm:"column:purchased_qty"`
	SoldQty      decimal.Decimal `gorm:"column:sold_qty"`
}

const stockQuery = `
SELECT p.id AS product_id,
       p.barcode,
       p.name AS product_name,
       COALESCE(c.name, '') AS category_name,
       COALESCE(u.name, '') AS unit_name,
       p.cost_price,
       p.sale_price,
       COALESCE(pi.qty, 0) AS purchased_qty,
       COALESCE(si.qty, 0) AS sold_qty
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
LEFT JOIN units u ON u.id = p.unit_id
LEFT JOIN (SELECT product_id, SUM(quantity) AS qty FROM purchase_items GROUP BY product_id) pi ON pi.product_id = p.id
LEFT JOIN (SELECT product_id, SUM(quantity) AS qty FROM sale_items GROUP BY product_id) si ON si.product_id = p.id`

// OnHand returns the derived stock level for a single product
func (r *GormStockRepository) OnHand(ctx context.Context, productID uuid.UUID) (*inventory.StockLevel, error) {
	var rows []stockRow
	if err := r.db.WithContext(ctx).
		Raw(stockQuery+" WHERE p.id = ?", productID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		// The query selects FROM products, so an empty result means the
		// product itself is unknown.
		return nil, shared.ErrNotFound
	}
	level := rows[0].toLevel()
	return &level, nil
}

// OnHandForProducts returns the derived on-hand quantity per product.
// Products with no movements are present with a zero quantity.
func (r *GormStockRepository) OnHandForProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	if len(productIDs) == 0 {
		return map[uuid.UUID]decimal.Decimal{}, nil
	}
	return sumOnHand(r.db.WithContext(ctx), productIDs)
}

// Report returns the stock position of every product, optionally narrowed by
// a search term against barcode or product name
func (r *GormStockRepository) Report(ctx context.Context, search string) (inventory.StockReport, error) {
	query := stockQuery
	args := []any{}
	if search != "" {
		query += " WHERE p.name ILIKE ? OR p.barcode ILIKE ?"
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	query += " ORDER BY p.name ASC"

	var rows []stockRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return inventory.StockReport{}, err
	}

	levels := make([]inventory.StockLevel, len(rows))
	for i, row := range rows {
		levels[i] = row.toLevel()
	}
	return inventory.BuildReport(levels), nil
}

func (row stockRow) toLevel() inventory.StockLevel {
	onHand := row.PurchasedQty.Sub(row.SoldQty)
	if onHand.IsNegative() {
		onHand = decimal.Zero
	}
	return inventory.StockLevel{
		ProductID:     row.ProductID,
		Barcode:       row.Barcode,
		ProductName:   row.ProductName,
		CategoryName:  row.CategoryName,
		UnitName:      row.UnitName,
		PurchasedQty:  row.PurchasedQty,
		SoldQty:       row.SoldQty,
		OnHand:        onHand,
		PurchaseValue: onHand.Mul(row.CostPrice).Round(2),
		SaleValue:     onHand.Mul(row.SalePrice).Round(2),
	}
}

// sumOnHand derives on-hand quantities for the given products from the two
// line ledgers, clamped at zero. Runs inside whatever transaction db carries,
// so callers holding product row locks see a consistent view.
func sumOnHand(db *gorm.DB, productIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	purchased, err := sumQuantities(db, "purchase_items", productIDs)
	if err != nil {
		return nil, err
	}
	sold, err := sumQuantities(db, "sale_items", productIDs)
	if err != nil {
		return nil, err
	}

	onHand := make(map[uuid.UUID]decimal.Decimal, len(productIDs))
	for _, id := range productIDs {
		qty := purchased[id].Sub(sold[id])
		if qty.IsNegative() {
			qty = decimal.Zero
		}
		onHand[id] = qty
	}
	return onHand, nil
}

func sumQuantities(db *gorm.DB, table string, productIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	type quantityRow struct {
		ProductID uuid.UUID       `gorm:"column:product_id"`
		Qty       decimal.Decimal `gorm:"column:qty"`
	}
	var rows []quantityRow
	if err := db.Table(table).
		Select("product_id, COALESCE(SUM(quantity), 0) AS qty").
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	sums := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		sums[row.ProductID] = row.Qty
	}
	return sums, nil
}
