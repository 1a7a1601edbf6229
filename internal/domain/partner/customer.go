package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/openpos/backend/internal/domain/shared"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ContactDetails groups the optional contact and address fields shared by
// customers and suppliers.
type ContactDetails struct {
	Email    string
	Phone    string
	Mobile   string
	Fax      string
	Address1 string
	Address2 string
	City     string
	State    string
	Country  string
	ZipCode  string
}

func validateContactDetails(d ContactDetails) error {
	if d.Email != "" && !emailPattern.MatchString(d.Email) {
		return shared.NewValidationError("email", "Invalid email address")
	}
	if len(d.Phone) > 20 {
		return shared.NewValidationError("phone", "Phone cannot exceed 20 characters")
	}
	if len(d.Mobile) > 20 {
		return shared.NewValidationError("mobile", "Mobile cannot exceed 20 characters")
	}
	return nil
}

// Customer represents a customer who buys through sales documents
type Customer struct {
	shared.BaseEntity
	Name     string `gorm:"type:varchar(100);not null;index"`
	Email    string `gorm:"type:varchar(200)"`
	Phone    string `gorm:"type:varchar(20)"`
	Mobile   string `gorm:"type:varchar(20)"`
	Fax      string `gorm:"type:varchar(20)"`
	Address1 string `gorm:"type:varchar(255)"`
	Address2 string `gorm:"type:varchar(255)"`
	City     string `gorm:"type:varchar(100)"`
	State    string `gorm:"type:varchar(100)"`
	Country  string `gorm:"type:varchar(100)"`
	ZipCode  string `gorm:"type:varchar(20)"`
	VATNo    string `gorm:"type:varchar(50)"`
	CRNo     string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields
func NewCustomer(name string, details ContactDetails) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if err := validateContactDetails(details); err != nil {
		return nil, err
	}

	return &Customer{
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
	}, nil
}

// Update replaces the customer's details
func (c *Customer) Update(name string, details ContactDetails) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}
	if err := validateContactDetails(details); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.Email = details.Email
	c.Phone = details.Phone
	c.Mobile = details.Mobile
	c.Fax = details.Fax
	c.Address1 = details.Address1
	c.Address2 = details.Address2
	c.City = details.City
	c.State = details.State
	c.Country = details.Country
	c.ZipCode = details.ZipCode
	c.UpdatedAt = time.Now()

	return nil
}

// SetTaxIdentifiers sets the VAT and commercial registration numbers
func (c *Customer) SetTaxIdentifiers(vatNo, crNo string) error {
	if len(vatNo) > 50 {
		return shared.NewValidationError("vat_no", "VAT number cannot exceed 50 characters")
	}
	if len(crNo) > 50 {
		return shared.NewValidationError("cr_no", "CR number cannot exceed 50 characters")
	}

	c.VATNo = vatNo
	c.CRNo = crNo
	c.UpdatedAt = time.Now()

	return nil
}

func validateCustomerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("name", "Customer name is required")
	}
	if len(name) > 100 {
		return shared.NewValidationError("name", "Customer name cannot exceed 100 characters")
	}
	return nil
}
