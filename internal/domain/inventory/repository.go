package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockRepository derives stock positions from the purchase and sale ledgers
type StockRepository interface {
	// OnHand returns the derived stock level for a single product
	OnHand(ctx context.Context, productID uuid.UUID) (*StockLevel, error)
	// OnHandForProducts returns the derived on-hand quantity per product.
	// Products with no movements are present with a zero quantity.
	OnHandForProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
	// Report returns the stock position of every product, optionally
	// narrowed by a search term against barcode or product name
	Report(ctx context.Context, search string) (StockReport, error)
}
