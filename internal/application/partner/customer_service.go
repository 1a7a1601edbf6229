package partner

import (
	"context"

	"github.com/openpos/backend/internal/domain/partner"
	"github.com/openpos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.toDetails())
	if err != nil {
		return nil, err
	}

	if req.VATNo != "" || req.CRNo != "" {
		if err := customer.SetTaxIdentifiers(req.VATNo, req.CRNo); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	return ToCustomerResponse(customer), nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToCustomerResponse(customer), nil
}

// List retrieves customers matching the filter with pagination
func (s *CustomerService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[CustomerResponse], error) {
	domainFilter := toDomainFilter(filter)

	customers, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.customerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = *ToCustomerResponse(&customers[i])
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.Limit())
	return &result, nil
}

// Update updates an existing customer
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := customer.Update(req.Name, req.toDetails()); err != nil {
		return nil, err
	}
	if err := customer.SetTaxIdentifiers(req.VATNo, req.CRNo); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	return ToCustomerResponse(customer), nil
}

// Delete deletes a customer
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.customerRepo.Delete(ctx, id)
}
