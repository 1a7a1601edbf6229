package trade

import (
	"context"
	"time"

	"github.com/openpos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseRepository defines persistence operations for purchase documents
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindByChallanNo(ctx context.Context, challanNo string) (*Purchase, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Purchase, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByChallanNo(ctx context.Context, challanNo string) (bool, error)
	Save(ctx context.Context, purchase *Purchase) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PurchaseOrderRepository defines persistence operations for purchase orders.
// NextOrderNo issues the next sequential order number for the given date.
type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	FindByOrderNo(ctx context.Context, orderNo string) (*PurchaseOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*PurchaseOrder, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	NextOrderNo(ctx context.Context, date time.Time) (string, error)
	Save(ctx context.Context, order *PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SaleRepository defines persistence operations for sales. SaveAdmitted
// persists a sale and deducts nothing itself; stock safety comes from the
// admission check the implementation performs inside the same transaction.
// NextInvoiceNo issues the next sequential invoice number for the given date.
type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindByInvoiceNo(ctx context.Context, invoiceNo string) (*Sale, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Sale, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	NextInvoiceNo(ctx context.Context, date time.Time) (string, error)
	Save(ctx context.Context, sale *Sale) error
	SaveAdmitted(ctx context.Context, sale *Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
}
