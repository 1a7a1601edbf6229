package catalog

import (
	"context"

	"github.com/openpos/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// UnitService handles unit-of-measure operations
type UnitService struct {
	unitRepo catalog.UnitRepository
}

// NewUnitService creates a new UnitService
func NewUnitService(unitRepo catalog.UnitRepository) *UnitService {
	return &UnitService{unitRepo: unitRepo}
}

// Create creates a new unit
func (s *UnitService) Create(ctx context.Context, req CreateUnitRequest) (*UnitResponse, error) {
	unit, err := catalog.NewUnit(req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}

	return ToUnitResponse(unit), nil
}

// GetByID retrieves a unit by ID
func (s *UnitService) GetByID(ctx context.Context, id uuid.UUID) (*UnitResponse, error) {
	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToUnitResponse(unit), nil
}

// List retrieves units matching the filter
func (s *UnitService) List(ctx context.Context, filter ListFilter) ([]UnitResponse, error) {
	domainFilter := listToDomainFilter(filter.Search, filter.Status, filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)

	units, err := s.unitRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]UnitResponse, len(units))
	for i := range units {
		responses[i] = *ToUnitResponse(&units[i])
	}

	return responses, nil
}

// Update updates an existing unit
func (s *UnitService) Update(ctx context.Context, id uuid.UUID, req UpdateUnitRequest) (*UnitResponse, error) {
	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := unit.Update(req.Name, catalog.Status(req.Status)); err != nil {
		return nil, err
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}

	return ToUnitResponse(unit), nil
}

// Delete deletes a unit
func (s *UnitService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.unitRepo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.unitRepo.Delete(ctx, id)
}
