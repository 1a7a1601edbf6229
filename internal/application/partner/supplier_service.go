package partner

import (
	"context"

	"github.com/openpos/backend/internal/domain/partner"
	"github.com/openpos/backend/internal/domain/shared"
	"github.com/openpos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// SupplierService handles supplier-related business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(req.Name, req.toDetails())
	if err != nil {
		return nil, err
	}

	if req.VATNo != "" {
		if err := supplier.SetVATNo(req.VATNo); err != nil {
			return nil, err
		}
	}
	if req.OpeningBalance != nil {
		if err := supplier.SetOpeningBalance(valueobject.NewMoney(*req.OpeningBalance)); err != nil {
			return nil, err
		}
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	return ToSupplierResponse(supplier), nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToSupplierResponse(supplier), nil
}

// List retrieves suppliers matching the filter with pagination
func (s *SupplierService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[SupplierResponse], error) {
	domainFilter := toDomainFilter(filter)

	suppliers, err := s.supplierRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.supplierRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = *ToSupplierResponse(&suppliers[i])
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.Limit())
	return &result, nil
}

// Update updates an existing supplier
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := supplier.Update(req.Name, req.toDetails()); err != nil {
		return nil, err
	}
	if err := supplier.SetVATNo(req.VATNo); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	return ToSupplierResponse(supplier), nil
}

// Delete deletes a supplier
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.supplierRepo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.supplierRepo.Delete(ctx, id)
}
