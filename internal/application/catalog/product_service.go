package catalog

import (
	"context"
	"errors"

	"github.com/openpos/backend/internal/domain/catalog"
	"github.com/openpos/backend/internal/domain/inventory"
	"github.com/openpos/backend/internal/domain/partner"
	"github.com/openpos/backend/internal/domain/shared"
	"github.com/openpos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	unitRepo     catalog.UnitRepository
	supplierRepo partner.SupplierRepository
	stockRepo    inventory.StockRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	unitRepo catalog.UnitRepository,
	supplierRepo partner.SupplierRepository,
	stockRepo inventory.StockRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
		supplierRepo: supplierRepo,
		stockRepo:    stockRepo,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsByBarcode(ctx, req.Barcode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeDuplicateIdentifier, "A product with this barcode already exists")
	}

	if err := s.checkReferences(ctx, req.CategoryID, req.SupplierID, req.UnitID); err != nil {
		return nil, err
	}

	vatPercent, err := valueobject.NewPercent(req.VATPercent)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(
		req.Barcode,
		req.Name,
		req.CategoryID,
		req.SupplierID,
		req.UnitID,
		valueobject.NewMoney(req.CostPrice),
		valueobject.NewMoney(req.SalePrice),
		vatPercent,
	)
	if err != nil {
		return nil, err
	}

	if req.SerialNumber != "" || req.Model != "" || req.Details != "" {
		if err := product.SetItemDetails(req.SerialNumber, req.Model, req.Details); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// GetByBarcode retrieves a product by its barcode
func (s *ProductService) GetByBarcode(ctx context.Context, barcode string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// GetStock retrieves the derived stock position of a product
func (s *ProductService) GetStock(ctx context.Context, id uuid.UUID) (*ProductStockResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	level, err := s.stockRepo.OnHand(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ProductStockResponse{
		ProductID:    level.ProductID,
		Barcode:      level.Barcode,
		Name:         level.ProductName,
		PurchasedQty: level.PurchasedQty,
		SoldQty:      level.SoldQty,
		OnHand:       level.OnHand,
		OutOfStock:   level.IsOutOfStock(),
	}, nil
}

// List retrieves products matching the filter with pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	domainFilter := listToDomainFilter(filter.Search, "", filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = *ToProductResponse(&products[i])
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.Limit())
	return &result, nil
}

// Update updates an existing product. The barcode cannot change.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, req.CategoryID, req.SupplierID, req.UnitID); err != nil {
		return nil, err
	}

	vatPercent, err := valueobject.NewPercent(req.VATPercent)
	if err != nil {
		return nil, err
	}

	if err := product.Update(
		req.Name,
		req.CategoryID,
		req.SupplierID,
		req.UnitID,
		valueobject.NewMoney(req.CostPrice),
		valueobject.NewMoney(req.SalePrice),
		vatPercent,
	); err != nil {
		return nil, err
	}

	if err := product.SetItemDetails(req.SerialNumber, req.Model, req.Details); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.productRepo.Delete(ctx, id)
}

// checkReferences verifies that the referenced category, supplier and unit
// exist, mapping a missing reference to a field-level validation error.
func (s *ProductService) checkReferences(ctx context.Context, categoryID, supplierID, unitID uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewValidationError("category_id", "Category not found")
		}
		return err
	}
	if _, err := s.supplierRepo.FindByID(ctx, supplierID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewValidationError("supplier_id", "Supplier not found")
		}
		return err
	}
	if _, err := s.unitRepo.FindByID(ctx, unitID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewValidationError("unit_id", "Unit not found")
		}
		return err
	}
	return nil
}
