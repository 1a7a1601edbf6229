package partner

import (
	"strings"
	"time"

	"github.com/openpos/backend/internal/domain/shared"
	"github.com/openpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Supplier represents a vendor that products are purchased from
type Supplier struct {
	shared.BaseEntity
	Name     string          `gorm:"type:varchar(100);not null;index"`
	Email    string          `gorm:"type:varchar(200)"`
	Phone    string          `gorm:"type:varchar(20)"`
	Mobile   string          `gorm:"type:varchar(20)"`
	Fax      string          `gorm:"type:varchar(20)"`
	Address1 string          `gorm:"type:varchar(255)"`
	Address2 string          `gorm:"type:varchar(255)"`
	City     string          `gorm:"type:varchar(100)"`
	State    string          `gorm:"type:varchar(100)"`
	Country  string          `gorm:"type:varchar(100)"`
	ZipCode  string          `gorm:"type:varchar(20)"`
	VATNo    string          `gorm:"type:varchar(50)"`
	Balance  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier with required fields
func NewSupplier(name string, details ContactDetails) (*Supplier, error) {
	if err := validateSupplierName(name); err != nil {
		return nil, err
	}
	if err := validateContactDetails(details); err != nil {
		return nil, err
	}

	return &Supplier{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Email:      details.Email,
		Phone:      details.Phone,
		Mobile:     details.Mobile,
		Fax:        details.Fax,
		Address1:   details.Address1,
		Address2:   details.Address2,
		City:       details.City,
		State:      details.State,
		Country:    details.Country,
		ZipCode:    details.ZipCode,
		Balance:    decimal.Zero,
	}, nil
}

// Update replaces the supplier's details
func (s *Supplier) Update(name string, details ContactDetails) error {
	if err := validateSupplierName(name); err != nil {
		return err
	}
	if err := validateContactDetails(details); err != nil {
		return err
	}

	s.Name = strings.TrimSpace(name)
	s.Email = details.Email
	s.Phone = details.Phone
	s.Mobile = details.Mobile
	s.Fax = details.Fax
	s.Address1 = details.Address1
	s.Address2 = details.Address2
	s.City = details.City
	s.State = details.State
	s.Country = details.Country
	s.ZipCode = details.ZipCode
	s.UpdatedAt = time.Now()

	return nil
}

// SetVATNo sets the supplier's VAT registration number
func (s *Supplier) SetVATNo(vatNo string) error {
	if len(vatNo) > 50 {
		return shared.NewValidationError("vat_no", "VAT number cannot exceed 50 characters")
	}
	s.VATNo = vatNo
	s.UpdatedAt = time.Now()
	return nil
}

// SetOpeningBalance sets the supplier's opening balance
func (s *Supplier) SetOpeningBalance(balance valueobject.Money) error {
	if balance.IsNegative() {
		return shared.NewValidationError("balance", "Balance cannot be negative")
	}
	s.Balance = balance.Amount()
	s.UpdatedAt = time.Now()
	return nil
}

func validateSupplierName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("name", "Supplier name is required")
	}
	if len(name) > 100 {
		return shared.NewValidationError("name", "Supplier name cannot exceed 100 characters")
	}
	return nil
}
