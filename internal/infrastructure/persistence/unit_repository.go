package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/openpos/backend/internal/domain/catalog"
	"github.com/openpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormUnitRepository implements UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// FindByID finds a unit by its ID
func (r *GormUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Unit, error) {
	var unit catalog.Unit
	if err := r.db.WithContext(ctx).First(&unit, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &unit, nil
}

// FindAll finds all units matching the filter
func (r *GormUnitRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Unit, error) {
	var units []catalog.Unit
	query := r.db.WithContext(ctx).Model(&catalog.Unit{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("name ASC").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// Save creates or updates a unit
func (r *GormUnitRepository) Save(ctx context.Context, unit *catalog.Unit) error {
	return translateError(r.db.WithContext(ctx).Save(unit).Error)
}

// Delete deletes a unit
func (r *GormUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Unit{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
