package partner

import (
	"time"

	"github.com/openpos/backend/internal/domain/partner"
	"github.com/openpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContactRequest carries the shared contact and address fields
type ContactRequest struct {
	Email    string `json:"email" binding:"omitempty,email,max=200"`
	Phone    string `json:"phone" binding:"max=20"`
	Mobile   string `json:"mobile" binding:"max=20"`
	Fax      string `json:"fax" binding:"max=20"`
	Address1 string `json:"address_1" binding:"max=255"`
	Address2 string `json:"address_2" binding:"max=255"`
	City     string `json:"city" binding:"max=100"`
	State    string `json:"state" binding:"max=100"`
	Country  string `json:"country" binding:"max=100"`
	ZipCode  string `json:"zip_code" binding:"max=20"`
}

func (r ContactRequest) toDetails() partner.ContactDetails {
	return partner.ContactDetails{
		Email:    r.Email,
		Phone:    r.Phone,
		Mobile:   r.Mobile,
		Fax:      r.Fax,
		Address1: r.Address1,
		Address2: r.Address2,
		City:     r.City,
		State:    r.State,
		Country:  r.Country,
		ZipCode:  r.ZipCode,
	}
}

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	ContactRequest
	VATNo string `json:"vat_no" binding:"max=50"`
	CRNo  string `json:"cr_no" binding:"max=50"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	ContactRequest
	VATNo string `json:"vat_no" binding:"max=50"`
	CRNo  string `json:"cr_no" binding:"max=50"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Mobile    string    `json:"mobile"`
	Fax       string    `json:"fax"`
	Address1  string    `json:"address_1"`
	Address2  string    `json:"address_2"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Country   string    `json:"country"`
	ZipCode   string    `json:"zip_code"`
	VATNo     string    `json:"vat_no"`
	CRNo      string    `json:"cr_no"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateSupplierRequest represents a request to create a new supplier
type CreateSupplierRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	ContactRequest
	VATNo          string           `json:"vat_no" binding:"max=50"`
	OpeningBalance *decimal.Decimal `json:"opening_balance"`
}

// UpdateSupplierRequest represents a request to update a supplier
type UpdateSupplierRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	ContactRequest
	VATNo string `json:"vat_no" binding:"max=50"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Mobile    string          `json:"mobile"`
	Fax       string          `json:"fax"`
	Address1  string          `json:"address_1"`
	Address2  string          `json:"address_2"`
	City      string          `json:"city"`
	State     string          `json:"state"`
	Country   string          `json:"country"`
	ZipCode   string          `json:"zip_code"`
	VATNo     string          `json:"vat_no"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ListFilter represents list query options for customers and suppliers
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Mobile:    c.Mobile,
		Fax:       c.Fax,
		Address1:  c.Address1,
		Address2:  c.Address2,
		City:      c.City,
		State:     c.State,
		Country:   c.Country,
		ZipCode:   c.ZipCode,
		VATNo:     c.VATNo,
		CRNo:      c.CRNo,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToSupplierResponse converts a domain Supplier to SupplierResponse
func ToSupplierResponse(s *partner.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Mobile:    s.Mobile,
		Fax:       s.Fax,
		Address1:  s.Address1,
		Address2:  s.Address2,
		City:      s.City,
		State:     s.State,
		Country:   s.Country,
		ZipCode:   s.ZipCode,
		VATNo:     s.VATNo,
		Balance:   s.Balance,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toDomainFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	return domainFilter
}
