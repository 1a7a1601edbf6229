// Package trade holds the document aggregates: Purchase, PurchaseOrder and
// Sale. Each document owns an ordered collection of line items whose derived
// values come from the pricing package; document summary fields are
// recomputed through pricing.SummarizeDocument on every mutation.
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

// PaymentType represents how a document is settled
type PaymentType string

const (
	PaymentTypeCash   PaymentType = "CASH"
	PaymentTypeCredit PaymentType = "CREDIT"
	PaymentTypeBank   PaymentType = "BANK"
)

// IsValid checks if the payment type is valid
func (p PaymentType) IsValid() bool {
	switch p {
	case PaymentTypeCash, PaymentTypeCredit, PaymentTypeBank:
		return true
	}
	return false
}

// String returns the string representation of PaymentType
func (p PaymentType) String() string {
	return string(p)
}

// PurchaseItem represents a received line on a purchase document.
// Purchase item quantities are what feed the stock aggregator's in side.
type PurchaseItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	PurchaseID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemName        string          `gorm:"type:varchar(255);not null"`
	BatchNo         string          `gorm:"type:varchar(50)"`
	ExpiryDate      *time.Time
	Quantity        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Rate            decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	DiscountValue   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	VATPercent      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	VATValue        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Total           decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// NewPurchaseItem creates a purchase line with its derived values computed
func NewPurchaseItem(purchaseID, productID uuid.UUID, itemName string, line pricing.LineInput) (*PurchaseItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("product_id", "Product is required")
	}
	if strings.TrimSpace(itemName) == "" {
		return nil, shared.NewValidationError("item_name", "Item name is required")
	}

	result, err := pricing.ComputeLine(line)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &PurchaseItem{
		ID:              uuid.New(),
		PurchaseID:      purchaseID,
		ProductID:       productID,
		ItemName:        strings.TrimSpace(itemName),
		Quantity:        line.Quantity,
		Rate:            line.Rate,
		DiscountPercent: line.DiscountPercent,
		DiscountValue:   result.DiscountValue,
		VATPercent:      line.VATPercent,
		VATValue:        result.VATValue,
		Total:           result.Total,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// SetBatch sets the optional batch number and expiry date
func (i *PurchaseItem) SetBatch(batchNo string, expiryDate *time.Time) error {
	if len(batchNo) > 50 {
		return shared.NewValidationError("batch_no", "Batch number cannot exceed 50 characters")
	}
	i.BatchNo = batchNo
	i.ExpiryDate = expiryDate
	i.UpdatedAt = time.Now()
	return nil
}

// Recompute rederives the line values from new raw inputs
func (i *PurchaseItem) Recompute(line pricing.LineInput) error {
	result, err := pricing.ComputeLine(line)
	if err != nil {
		return err
	}
	i.Quantity = line.Quantity
	i.Rate = line.Rate
	i.DiscountPercent = line.DiscountPercent
	i.DiscountValue = result.DiscountValue
	i.VATPercent = line.VATPercent
	i.VATValue = result.VATValue
	i.Total = result.Total
	i.UpdatedAt = time.Now()
	return nil
}

func (i *PurchaseItem) lineResult() pricing.LineResult {
	return pricing.LineResult{
		DiscountValue: i.DiscountValue,
		VATValue:      i.VATValue,
		Total:         i.Total,
	}
}

// Purchase represents goods received from a supplier under a challan number.
// The challan number is the document's identity and immutable once assigned.
type Purchase struct {
	shared.BaseAggregateRoot
	ChallanNo     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierName  string          `gorm:"type:varchar(100);not null"`
	PurchaseDate  time.Time       `gorm:"type:date;not null"`
	Details       string          `gorm:"type:text"`
	Discount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalDiscount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalVAT      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DueAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentType   PaymentType     `gorm:"type:varchar(20);not null;default:'CASH'"`
	Items         []PurchaseItem  `gorm:"foreignKey:PurchaseID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a new purchase document without lines. At least one
// line must be added before the document is valid for persistence.
func NewPurchase(challanNo string, supplierID uuid.UUID, supplierName string, purchaseDate time.Time) (*Purchase, error) {
	challanNo = strings.TrimSpace(challanNo)
	if challanNo == "" {
		return nil, shared.NewValidationError("challan_no", "Challan number is required")
	}
	if len(challanNo) > 50 {
		return nil, shared.NewValidationError("challan_no", "Challan number cannot exceed 50 characters")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewValidationError("supplier_id", "Supplier is required")
	}
	if supplierName == "" {
		return nil, shared.NewValidationError("supplier_name", "Supplier name is required")
	}
	if purchaseDate.IsZero() {
		return nil, shared.NewValidationError("purchase_date", "Purchase date is required")
	}

	return &Purchase{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ChallanNo:         challanNo,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		PurchaseDate:      purchaseDate,
		Discount:          decimal.Zero,
		TotalDiscount:     decimal.Zero,
		TotalVAT:          decimal.Zero,
		GrandTotal:        decimal.Zero,
		PaidAmount:        decimal.Zero,
		DueAmount:         decimal.Zero,
		PaymentType:       PaymentTypeCash,
		Items:             make([]PurchaseItem, 0),
	}, nil
}

// AddItem adds a line to the purchase and recomputes the summary fields
func (p *Purchase) AddItem(productID uuid.UUID, itemName string, line pricing.LineInput) (*PurchaseItem, error) {
	item, err := NewPurchaseItem(p.ID, productID, itemName, line)
	if err != nil {
		return nil, err
	}

	p.Items = append(p.Items, *item)
	if err := p.recalculateTotals(); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()

	return &p.Items[len(p.Items)-1], nil
}

// RemoveItem removes a line. The last remaining line cannot be removed.
func (p *Purchase) RemoveItem(itemID uuid.UUID) error {
	if len(p.Items) == 1 && p.Items[0].ID == itemID {
		return shared.ErrEmptyDocument
	}
	for idx, item := range p.Items {
		if item.ID == itemID {
			p.Items = append(p.Items[:idx], p.Items[idx+1:]...)
			if err := p.recalculateTotals(); err != nil {
				return err
			}
			p.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError(shared.CodeNotFound, "Purchase item not found")
}

// ReplaceItems swaps the full line set, as an update submission does
func (p *Purchase) ReplaceItems(items []PurchaseItem) error {
	if len(items) == 0 {
		return shared.ErrEmptyDocument
	}
	for idx := range items {
		items[idx].PurchaseID = p.ID
	}
	p.Items = items
	if err := p.recalculateTotals(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now()
	return nil
}

// SetDiscount sets the document-level discount and recomputes totals
func (p *Purchase) SetDiscount(discount valueobject.Money) error {
	if discount.IsNegative() {
		return shared.NewValidationError("discount", "Discount cannot be negative")
	}
	p.Discount = discount.Amount()
	if err := p.recalculateTotals(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now()
	return nil
}

// SetPayment sets payment type and paid amount, recomputing the due amount
func (p *Purchase) SetPayment(paymentType PaymentType, paidAmount valueobject.Money) error {
	if !paymentType.IsValid() {
		return shared.NewValidationError("payment_type", "Payment type must be CASH, CREDIT or BANK")
	}
	if paidAmount.IsNegative() {
		return shared.NewValidationError("paid_amount", "Paid amount cannot be negative")
	}
	p.PaymentType = paymentType
	p.PaidAmount = paidAmount.Amount()
	if err := p.recalculateTotals(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now()
	return nil
}

// SetDetails sets the free-form details text
func (p *Purchase) SetDetails(details string) {
	p.Details = details
	p.UpdatedAt = time.Now()
}

// Validate checks that the document can be persisted
func (p *Purchase) Validate() error {
	if len(p.Items) == 0 {
		return shared.ErrEmptyDocument
	}
	return nil
}

// ItemCount returns the number of lines on the document
func (p *Purchase) ItemCount() int {
	return len(p.Items)
}

// TotalQuantity returns the summed quantity across all lines
func (p *Purchase) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.Quantity)
	}
	return total
}

// recalculateTotals rederives the summary fields from the current lines.
// An empty document keeps zero totals; Validate rejects it at save time.
func (p *Purchase) recalculateTotals() error {
	if len(p.Items) == 0 {
		p.TotalDiscount = p.Discount
		p.TotalVAT = decimal.Zero
		p.GrandTotal = decimal.Zero.Sub(p.Discount)
		p.DueAmount = p.GrandTotal.Sub(p.PaidAmount)
		return nil
	}

	lines := make([]pricing.LineResult, len(p.Items))
	for idx, item := range p.Items {
		lines[idx] = item.lineResult()
	}

	totals, err := pricing.SummarizeDocument(pricing.DocumentInput{
		Discount:   p.Discount,
		PaidAmount: p.PaidAmount,
		Lines:      lines,
	})
	if err != nil {
		return err
	}

	p.TotalDiscount = totals.TotalDiscount
	p.TotalVAT = totals.TotalVAT
	p.GrandTotal = totals.GrandTotal
	p.DueAmount = totals.DueAmount
	return nil
}
