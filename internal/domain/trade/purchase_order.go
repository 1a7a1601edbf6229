package trade

import (
	"strings"
	"time"

	"github.com/openpos/backend/internal/domain/pricing"
	"github.com/openpos/backend/internal/domain/shared"
	"github.com/openpos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderItem represents an ordered line on a purchase order. The
// ordered quantity drives the line pricing; the received quantity only
// tracks fulfilment and never affects stock.
type PurchaseOrderItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	PurchaseOrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName      string          `gorm:"type:varchar(255);not null"`
	OrderedQuantity  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Rate             decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DiscountPercent  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	DiscountValue    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	VATPercent       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	VATValue         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Total            decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// NewPurchaseOrderItem creates an ordered line with its derived values computed
func NewPurchaseOrderItem(orderID, productID uuid.UUID, productName string, line pricing.LineInput) (*PurchaseOrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("product_id", "Product is required")
	}
	if strings.TrimSpace(productName) == "" {
		return nil, shared.NewValidationError("product_name", "Product name is required")
	}

	result, err := pricing.ComputeLine(line)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &PurchaseOrderItem{
		ID:               uuid.New(),
		PurchaseOrderID:  orderID,
		ProductID:        productID,
		ProductName:      strings.TrimSpace(productName),
		OrderedQuantity:  line.Quantity,
		ReceivedQuantity: decimal.Zero,
		Rate:             line.Rate,
		DiscountPercent:  line.DiscountPercent,
		DiscountValue:    result.DiscountValue,
		VATPercent:       line.VATPercent,
		VATValue:         result.VATValue,
		Total:            result.Total,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// HasDiscrepancy reports whether the line received less than was ordered
func (i *PurchaseOrderItem) HasDiscrepancy() bool {
	return i.ReceivedQuantity.LessThan(i.OrderedQuantity)
}

// Outstanding returns the quantity still to be received
func (i *PurchaseOrderItem) Outstanding() decimal.Decimal {
	return i.OrderedQuantity.Sub(i.ReceivedQuantity)
}

func (i *PurchaseOrderItem) lineResult() pricing.LineResult {
	return pricing.LineResult{
		DiscountValue: i.DiscountValue,
		VATValue:      i.VATValue,
		Total:         i.Total,
	}
}

// ReceiptLine names a quantity received against an order line
type ReceiptLine struct {
	ItemID   uuid.UUID
	Quantity decimal.Decimal
}

// PurchaseOrder represents an order placed with a supplier. Its number is
// generated at persistence time. Receiving quantities against an order only
// records fulfilment; stock moves when a purchase document is booked.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNo       string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	SupplierName  string              `gorm:"type:varchar(100);not null"`
	OrderDate     time.Time           `gorm:"type:date;not null"`
	Details       string              `gorm:"type:text"`
	Discount      decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	TotalDiscount decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	TotalVAT      decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	GrandTotal    decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	PaidAmount    decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	DueAmount     decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentType   PaymentType         `gorm:"type:varchar(20);not null;default:'CASH'"`
	Items         []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new purchase order without lines. The caller
// assigns the order number before the order is saved.
func NewPurchaseOrder(supplierID uuid.UUID, supplierName string, orderDate time.Time) (*PurchaseOrder, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewValidationError("supplier_id", "Supplier is required")
	}
	if supplierName == "" {
		return nil, shared.NewValidationError("supplier_name", "Supplier name is required")
	}
	if orderDate.IsZero() {
		return nil, shared.NewValidationError("order_date", "Order date is required")
	}

	return &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		OrderDate:         orderDate,
		Discount:          decimal.Zero,
		TotalDiscount:     decimal.Zero,
		TotalVAT:          decimal.Zero,
		GrandTotal:        decimal.Zero,
		PaidAmount:        decimal.Zero,
		DueAmount:         decimal.Zero,
		PaymentType:       PaymentTypeCash,
		Items:             make([]PurchaseOrderItem, 0),
	}, nil
}

// AddItem adds an ordered line and recomputes the summary fields
func (o *PurchaseOrder) AddItem(productID uuid.UUID, productName string, line pricing.LineInput) (*PurchaseOrderItem, error) {
	item, err := NewPurchaseOrderItem(o.ID, productID, productName, line)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	if err := o.recalculateTotals(); err != nil {
		return nil, err
	}
	o.UpdatedAt = time.Now()

	return &o.Items[len(o.Items)-1], nil
}

// RemoveItem removes an ordered line. The last remaining line cannot be
// removed, and a line with receipts recorded against it cannot be removed.
func (o *PurchaseOrder) RemoveItem(itemID uuid.UUID) error {
	if len(o.Items) == 1 && o.Items[0].ID == itemID {
		return shared.ErrEmptyDocument
	}
	for idx, item := range o.Items {
		if item.ID != itemID {
			continue
		}
		if item.ReceivedQuantity.IsPositive() {
			return shared.NewDomainError(shared.CodeInvalidState, "Cannot remove an order line that has received quantity")
		}
		o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
		if err := o.recalculateTotals(); err != nil {
			return err
		}
		o.UpdatedAt = time.Now()
		return nil
	}
	return shared.NewDomainError(shared.CodeNotFound, "Purchase order item not found")
}

// HasReceipts reports whether any line has received quantity recorded
func (o *PurchaseOrder) HasReceipts() bool {
	for idx := range o.Items {
		if o.Items[idx].ReceivedQuantity.IsPositive() {
			return true
		}
	}
	return false
}

// ReplaceItems swaps the full line set, as an update submission does.
// Orders with receipts recorded are locked against line replacement.
func (o *PurchaseOrder) ReplaceItems(items []PurchaseOrderItem) error {
	if len(items) == 0 {
		return shared.ErrEmptyDocument
	}
	if o.HasReceipts() {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot replace lines of an order with recorded receipts")
	}
	for idx := range items {
		items[idx].PurchaseOrderID = o.ID
	}
	o.Items = items
	if err := o.recalculateTotals(); err != nil {
		return err
	}
	o.UpdatedAt = time.Now()
	return nil
}

// SetDiscount sets the document-level discount and recomputes totals
func (o *PurchaseOrder) SetDiscount(discount valueobject.Money) error {
	if discount.IsNegative() {
		return shared.NewValidationError("discount", "Discount cannot be negative")
	}
	o.Discount = discount.Amount()
	if err := o.recalculateTotals(); err != nil {
		return err
	}
	o.UpdatedAt = time.Now()
	return nil
}

// SetPayment sets payment type and paid amount, recomputing the due amount
func (o *PurchaseOrder) SetPayment(paymentType PaymentType, paidAmount valueobject.Money) error {
	if !paymentType.IsValid() {
		return shared.NewValidationError("payment_type", "Payment type must be CASH, CREDIT or BANK")
	}
	if paidAmount.IsNegative() {
		return shared.NewValidationError("paid_amount", "Paid amount cannot be negative")
	}
	o.PaymentType = paymentType
	o.PaidAmount = paidAmount.Amount()
	if err := o.recalculateTotals(); err != nil {
		return err
	}
	o.UpdatedAt = time.Now()
	return nil
}

// SetDetails sets the free-form details text
func (o *PurchaseOrder) SetDetails(details string) {
	o.Details = details
	o.UpdatedAt = time.Now()
}

// Receive records received quantities against order lines. Each receipt adds
// to the line's received quantity; the cumulative total cannot exceed the
// ordered quantity and a receipt quantity must be positive.
func (o *PurchaseOrder) Receive(receipts []ReceiptLine) error {
	if len(receipts) == 0 {
		return shared.NewValidationError("items", "At least one receipt line is required")
	}

	byID := make(map[uuid.UUID]*PurchaseOrderItem, len(o.Items))
	for idx := range o.Items {
		byID[o.Items[idx].ID] = &o.Items[idx]
	}

	for _, receipt := range receipts {
		item, ok := byID[receipt.ItemID]
		if !ok {
			return shared.NewDomainError(shared.CodeNotFound, "Purchase order item not found")
		}
		if !receipt.Quantity.IsPositive() {
			return shared.NewValidationError("quantity", "Received quantity must be positive")
		}
		updated := item.ReceivedQuantity.Add(receipt.Quantity)
		if updated.GreaterThan(item.OrderedQuantity) {
			return shared.NewDomainError(shared.CodeInvalidState, "Received quantity cannot exceed ordered quantity")
		}
		item.ReceivedQuantity = updated
		item.UpdatedAt = time.Now()
	}
	o.UpdatedAt = time.Now()
	return nil
}

// DiscrepancyCount returns the number of lines received short of their order
func (o *PurchaseOrder) DiscrepancyCount() int {
	count := 0
	for idx := range o.Items {
		if o.Items[idx].HasDiscrepancy() {
			count++
		}
	}
	return count
}

// IsFullyReceived reports whether every line has been received in full
func (o *PurchaseOrder) IsFullyReceived() bool {
	return len(o.Items) > 0 && o.DiscrepancyCount() == 0
}

// Validate checks that the document can be persisted
func (o *PurchaseOrder) Validate() error {
	if len(o.Items) == 0 {
		return shared.ErrEmptyDocument
	}
	return nil
}

// ItemCount returns the number of lines on the document
func (o *PurchaseOrder) ItemCount() int {
	return len(o.Items)
}

func (o *PurchaseOrder) recalculateTotals() error {
	if len(o.Items) == 0 {
		o.TotalDiscount = o.Discount
		o.TotalVAT = decimal.Zero
		o.GrandTotal = decimal.Zero.Sub(o.Discount)
		o.DueAmount = o.GrandTotal.Sub(o.PaidAmount)
		return nil
	}

	lines := make([]pricing.LineResult, len(o.Items))
	for idx := range o.Items {
		lines[idx] = o.Items[idx].lineResult()
	}

	totals, err := pricing.SummarizeDocument(pricing.DocumentInput{
		Discount:   o.Discount,
		PaidAmount: o.PaidAmount,
		Lines:      lines,
	})
	if err != nil {
		return err
	}

	o.TotalDiscount = totals.TotalDiscount
	o.TotalVAT = totals.TotalVAT
	o.GrandTotal = totals.GrandTotal
	o.DueAmount = totals.DueAmount
	return nil
}
