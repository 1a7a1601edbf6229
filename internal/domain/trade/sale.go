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

// SaleItem represents a sold line on an invoice. AvailableQuantity records
// the on-hand quantity observed when the sale was admitted, for audit.
type SaleItem struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	SaleID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description       string          `gorm:"type:varchar(255);not null"`
	UnitName          string          `gorm:"type:varchar(50)"`
	AvailableQuantity decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Quantity          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Rate              decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DiscountPercent   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	DiscountValue     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	VATPercent        decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	VATValue          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Total             decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// NewSaleItem creates a sold line with its derived values computed
func NewSaleItem(saleID, productID uuid.UUID, description, unitName string, line pricing.LineInput) (*SaleItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("product_id", "Product is required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewValidationError("description", "Item description is required")
	}

	result, err := pricing.ComputeLine(line)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &SaleItem{
		ID:              uuid.New(),
		SaleID:          saleID,
		ProductID:       productID,
		Description:     strings.TrimSpace(description),
		UnitName:        unitName,
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

// RecordAvailability snapshots the on-hand quantity observed at admission
func (i *SaleItem) RecordAvailability(onHand decimal.Decimal) {
	i.AvailableQuantity = onHand
	i.UpdatedAt = time.Now()
}

func (i *SaleItem) lineResult() pricing.LineResult {
	return pricing.LineResult{
		DiscountValue: i.DiscountValue,
		VATValue:      i.VATValue,
		Total:         i.Total,
	}
}

// Sale represents an invoice issued to a customer. The invoice number is
// generated at persistence time. A sale is only persisted when every line
// passed the stock admission check inside one transaction.
type Sale struct {
	shared.BaseAggregateRoot
	InvoiceNo     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName  string          `gorm:"type:varchar(100);not null"`
	SaleDate      time.Time       `gorm:"type:date;not null"`
	Details       string          `gorm:"type:text"`
	Discount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ShippingCost  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalDiscount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalVAT      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	NetTotal      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DueAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentType   PaymentType     `gorm:"type:varchar(20);not null;default:'CASH'"`
	Items         []SaleItem      `gorm:"foreignKey:SaleID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a new sale document without lines. The caller assigns the
// invoice number before the sale is saved.
func NewSale(customerID uuid.UUID, customerName string, saleDate time.Time) (*Sale, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("customer_id", "Customer is required")
	}
	if customerName == "" {
		return nil, shared.NewValidationError("customer_name", "Customer name is required")
	}
	if saleDate.IsZero() {
		return nil, shared.NewValidationError("sale_date", "Sale date is required")
	}

	return &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		CustomerName:      customerName,
		SaleDate:          saleDate,
		Discount:          decimal.Zero,
		ShippingCost:      decimal.Zero,
		TotalDiscount:     decimal.Zero,
		TotalVAT:          decimal.Zero,
		GrandTotal:        decimal.Zero,
		NetTotal:          decimal.Zero,
		PaidAmount:        decimal.Zero,
		DueAmount:         decimal.Zero,
		PaymentType:       PaymentTypeCash,
		Items:             make([]SaleItem, 0),
	}, nil
}

// AddItem adds a sold line and recomputes the summary fields
func (s *Sale) AddItem(productID uuid.UUID, description, unitName string, line pricing.LineInput) (*SaleItem, error) {
	item, err := NewSaleItem(s.ID, productID, description, unitName, line)
	if err != nil {
		return nil, err
	}

	s.Items = append(s.Items, *item)
	if err := s.recalculateTotals(); err != nil {
		return nil, err
	}
	s.UpdatedAt = time.Now()

	return &s.Items[len(s.Items)-1], nil
}

// RemoveItem removes a sold line. The last remaining line cannot be removed.
func (s *Sale) RemoveItem(itemID uuid.UUID) error {
	if len(s.Items) == 1 && s.Items[0].ID == itemID {
		return shared.ErrEmptyDocument
	}
	for idx, item := range s.Items {
		if item.ID == itemID {
			s.Items = append(s.Items[:idx], s.Items[idx+1:]...)
			if err := s.recalculateTotals(); err != nil {
				return err
			}
			s.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError(shared.CodeNotFound, "Sale item not found")
}

// SetDiscount sets the document-level discount and recomputes totals
func (s *Sale) SetDiscount(discount valueobject.Money) error {
	if discount.IsNegative() {
		return shared.NewValidationError("discount", "Discount cannot be negative")
	}
	s.Discount = discount.Amount()
	if err := s.recalculateTotals(); err != nil {
		return err
	}
	s.UpdatedAt = time.Now()
	return nil
}

// SetShippingCost sets the shipping cost and recomputes the net total
func (s *Sale) SetShippingCost(cost valueobject.Money) error {
	if cost.IsNegative() {
		return shared.NewValidationError("shipping_cost", "Shipping cost cannot be negative")
	}
	s.ShippingCost = cost.Amount()
	if err := s.recalculateTotals(); err != nil {
		return err
	}
	s.UpdatedAt = time.Now()
	return nil
}

// SetPayment sets payment type and paid amount, recomputing the due amount
func (s *Sale) SetPayment(paymentType PaymentType, paidAmount valueobject.Money) error {
	if !paymentType.IsValid() {
		return shared.NewValidationError("payment_type", "Payment type must be CASH, CREDIT or BANK")
	}
	if paidAmount.IsNegative() {
		return shared.NewValidationError("paid_amount", "Paid amount cannot be negative")
	}
	s.PaymentType = paymentType
	s.PaidAmount = paidAmount.Amount()
	if err := s.recalculateTotals(); err != nil {
		return err
	}
	s.UpdatedAt = time.Now()
	return nil
}

// SetDetails sets the free-form details text
func (s *Sale) SetDetails(details string) {
	s.Details = details
	s.UpdatedAt = time.Now()
}

// Validate checks that the document can be persisted
func (s *Sale) Validate() error {
	if len(s.Items) == 0 {
		return shared.ErrEmptyDocument
	}
	return nil
}

// ItemCount returns the number of lines on the document
func (s *Sale) ItemCount() int {
	return len(s.Items)
}

// QuantityByProduct returns the summed sold quantity per product, so the
// admission check evaluates a product once even when it appears on several
// lines of the same invoice.
func (s *Sale) QuantityByProduct() map[uuid.UUID]decimal.Decimal {
	demand := make(map[uuid.UUID]decimal.Decimal, len(s.Items))
	for idx := range s.Items {
		item := &s.Items[idx]
		demand[item.ProductID] = demand[item.ProductID].Add(item.Quantity)
	}
	return demand
}

func (s *Sale) recalculateTotals() error {
	if len(s.Items) == 0 {
		s.TotalDiscount = s.Discount
		s.TotalVAT = decimal.Zero
		s.GrandTotal = decimal.Zero.Sub(s.Discount)
		s.NetTotal = s.GrandTotal.Add(s.ShippingCost)
		s.DueAmount = s.NetTotal.Sub(s.PaidAmount)
		return nil
	}

	lines := make([]pricing.LineResult, len(s.Items))
	for idx := range s.Items {
		lines[idx] = s.Items[idx].lineResult()
	}

	totals, err := pricing.SummarizeDocument(pricing.DocumentInput{
		Discount:     s.Discount,
		ShippingCost: s.ShippingCost,
		PaidAmount:   s.PaidAmount,
		Lines:        lines,
	})
	if err != nil {
		return err
	}

	s.TotalDiscount = totals.TotalDiscount
	s.TotalVAT = totals.TotalVAT
	s.GrandTotal = totals.GrandTotal
	s.NetTotal = totals.NetTotal
	s.DueAmount = totals.DueAmount
	return nil
}
