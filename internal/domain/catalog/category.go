package catalog

import (
	"strings"
	"time"

	"github.com/openpos/backend/internal/domain/shared"
)

// Status marks a catalog record as usable for new documents or retired
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// Category groups products for reporting and navigation
type Category struct {
	shared.BaseEntity
	Name   string `gorm:"type:varchar(100);not null"`
	Status Status `gorm:"type:varchar(10);not null;default:'ACTIVE'"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new active category
func NewCategory(name string) (*Category, error) {
	if err := validateCatalogName(name); err != nil {
		return nil, err
	}
	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Status:     StatusActive,
	}, nil
}

// Update renames the category and sets its status
func (c *Category) Update(name string, status Status) error {
	if err := validateCatalogName(name); err != nil {
		return err
	}
	if !status.IsValid() {
		return shared.NewValidationError("status", "Status must be ACTIVE or INACTIVE")
	}
	c.Name = strings.TrimSpace(name)
	c.Status = status
	c.UpdatedAt = time.Now()
	return nil
}

// Unit is a unit of measure for product quantities
type Unit struct {
	shared.BaseEntity
	Name   string `gorm:"type:varchar(100);not null"`
	Status Status `gorm:"type:varchar(10);not null;default:'ACTIVE'"`
}

// TableName returns the table name for GORM
func (Unit) TableName() string {
	return "units"
}

// NewUnit creates a new active unit of measure
func NewUnit(name string) (*Unit, error) {
	if err := validateCatalogName(name); err != nil {
		return nil, err
	}
	return &Unit{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Status:     StatusActive,
	}, nil
}

// Update renames the unit and sets its status
func (u *Unit) Update(name string, status Status) error {
	if err := validateCatalogName(name); err != nil {
		return err
	}
	if !status.IsValid() {
		return shared.NewValidationError("status", "Status must be ACTIVE or INACTIVE")
	}
	u.Name = strings.TrimSpace(name)
	u.Status = status
	u.UpdatedAt = time.Now()
	return nil
}

func validateCatalogName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("name", "Name is required")
	}
	if len(name) > 100 {
		return shared.NewValidationError("name", "Name cannot exceed 100 characters")
	}
	return nil
}
