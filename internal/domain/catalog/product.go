package catalog

import (
	"strings"
	"time"

	"github.com/openpos/backend/internal/domain/shared"
	"github.com/openpos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable item identified by a unique barcode. On-hand stock
// is derived from purchase and sale history, never stored on the product.
type Product struct {
	shared.BaseEntity
	Barcode       string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name          string          `gorm:"type:varchar(100);not null;index"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	UnitID        uuid.UUID       `gorm:"type:uuid;not null"`
	CostPrice     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	SalePrice     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	VATPercent    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	SerialNumber  string          `gorm:"type:varchar(100)"`
	Model         string          `gorm:"type:varchar(100)"`
	Details       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(barcode, name string, categoryID, supplierID, unitID uuid.UUID, costPrice, salePrice valueobject.Money, vatPercent valueobject.Percent) (*Product, error) {
	if err := validateBarcode(barcode); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewValidationError("category_id", "Category is required")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewValidationError("supplier_id", "Supplier is required")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewValidationError("unit_id", "Unit is required")
	}
	if costPrice.IsNegative() {
		return nil, shared.NewValidationError("cost_price", "Cost price cannot be negative")
	}
	if salePrice.IsNegative() {
		return nil, shared.NewValidationError("sale_price", "Sale price cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Barcode:    strings.TrimSpace(barcode),
		Name:       strings.TrimSpace(name),
		CategoryID: categoryID,
		SupplierID: supplierID,
		UnitID:     unitID,
		CostPrice:  costPrice.Amount(),
		SalePrice:  salePrice.Amount(),
		VATPercent: vatPercent.Value(),
	}, nil
}

// Update replaces the product's descriptive fields. The barcode is the
// product's identity and cannot be changed here.
func (p *Product) Update(name string, categoryID, supplierID, unitID uuid.UUID, costPrice, salePrice valueobject.Money, vatPercent valueobject.Percent) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if categoryID == uuid.Nil {
		return shared.NewValidationError("category_id", "Category is required")
	}
	if supplierID == uuid.Nil {
		return shared.NewValidationError("supplier_id", "Supplier is required")
	}
	if unitID == uuid.Nil {
		return shared.NewValidationError("unit_id", "Unit is required")
	}
	if costPrice.IsNegative() {
		return shared.NewValidationError("cost_price", "Cost price cannot be negative")
	}
	if salePrice.IsNegative() {
		return shared.NewValidationError("sale_price", "Sale price cannot be negative")
	}

	p.Name = strings.TrimSpace(name)
	p.CategoryID = categoryID
	p.SupplierID = supplierID
	p.UnitID = unitID
	p.CostPrice = costPrice.Amount()
	p.SalePrice = salePrice.Amount()
	p.VATPercent = vatPercent.Value()
	p.UpdatedAt = time.Now()

	return nil
}

// SetItemDetails sets the optional serial number, model and free-form details
func (p *Product) SetItemDetails(serialNumber, model, details string) error {
	if len(serialNumber) > 100 {
		return shared.NewValidationError("serial_number", "Serial number cannot exceed 100 characters")
	}
	if len(model) > 100 {
		return shared.NewValidationError("model", "Model cannot exceed 100 characters")
	}
	p.SerialNumber = serialNumber
	p.Model = model
	p.Details = details
	p.UpdatedAt = time.Now()
	return nil
}

func validateBarcode(barcode string) error {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return shared.NewValidationError("barcode", "Barcode is required")
	}
	if len(barcode) > 100 {
		return shared.NewValidationError("barcode", "Barcode cannot exceed 100 characters")
	}
	return nil
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("name", "Product name is required")
	}
	if len(name) > 100 {
		return shared.NewValidationError("name", "Product name cannot exceed 100 characters")
	}
	return nil
}
