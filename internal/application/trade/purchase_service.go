package trade

import (
	"context"

	"github.com/openpos/backend/internal/domain/catalog"
	"github.com/openpos/backend/internal/domain/partner"
	"github.com/openpos/backend/internal/domain/pricing"
	"github.com/openpos/backend/internal/domain/shared"
	"github.com/openpos/backend/internal/domain/shared/valueobject"
	"github.com/openpos/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// PurchaseService handles purchase document operations. Booked purchase
// lines are the inflow side of the derived stock ledger.
type PurchaseService struct {
	purchaseRepo trade.PurchaseRepository
	supplierRepo partner.SupplierRepository
	productRepo  catalog.ProductRepository
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	purchaseRepo trade.PurchaseRepository,
	supplierRepo partner.SupplierRepository,
	productRepo catalog.ProductRepository,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
	}
}

// Create records a new purchase under a caller-supplied challan number
func (s *PurchaseService) Create(ctx context.Context, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	exists, err := s.purchaseRepo.ExistsByChallanNo(ctx, req.ChallanNo)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeDuplicateIdentifier, "A purchase with this challan number already exists")
	}

	supplier, err := s.supplierRepo.FindByID(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}

	purchase, err := trade.NewPurchase(req.ChallanNo, supplier.ID, supplier.Name, req.PurchaseDate)
	if err != nil {
		return nil, err
	}
	purchase.SetDetails(req.Details)

	products, err := resolveProducts(ctx, s.productRepo, purchaseProductIDs(req.Items))
	if err != nil {
		return nil, err
	}

	for _, line := range req.Items {
		product := products[line.ProductID]
		item, err := purchase.AddItem(product.ID, product.Name, pricing.LineInput{
			Quantity:        line.Quantity,
			Rate:            line.Rate,
			DiscountPercent: line.DiscountPercent,
			VATPercent:      line.VATPercent,
		})
		if err != nil {
			return nil, err
		}
		if line.BatchNo != "" || line.ExpiryDate != nil {
			if err := item.SetBatch(line.BatchNo, line.ExpiryDate); err != nil {
				return nil, err
			}
		}
	}

	if err := purchase.SetDiscount(valueobject.NewMoney(req.Discount)); err != nil {
		return nil, err
	}
	if err := purchase.SetPayment(paymentTypeOrDefault(req.PaymentType), valueobject.NewMoney(req.PaidAmount)); err != nil {
		return nil, err
	}
	if err := purchase.Validate(); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}

	return ToPurchaseResponse(purchase), nil
}

// GetByID retrieves a purchase by ID
func (s *PurchaseService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToPurchaseResponse(purchase), nil
}

// List retrieves purchases matching the filter with pagination
func (s *PurchaseService) List(ctx context.Context, filter DocumentListFilter) (*shared.Paginated[PurchaseResponse], error) {
	domainFilter := documentFilter(filter)

	purchases, err := s.purchaseRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.purchaseRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]PurchaseResponse, len(purchases))
	for i, purchase := range purchases {
		responses[i] = *ToPurchaseResponse(purchase)
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.Limit())
	return &result, nil
}

// Update revises a purchase, replacing its line set wholesale
func (s *PurchaseService) Update(ctx context.Context, id uuid.UUID, req UpdatePurchaseRequest) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	supplier, err := s.supplierRepo.FindByID(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}
	purchase.SupplierID = supplier.ID
	purchase.SupplierName = supplier.Name
	purchase.PurchaseDate = req.PurchaseDate
	purchase.SetDetails(req.Details)

	products, err := resolveProducts(ctx, s.productRepo, purchaseProductIDs(req.Items))
	if err != nil {
		return nil, err
	}

	items := make([]trade.PurchaseItem, 0, len(req.Items))
	for _, line := range req.Items {
		product := products[line.ProductID]
		item, err := trade.NewPurchaseItem(purchase.ID, product.ID, product.Name, pricing.LineInput{
			Quantity:        line.Quantity,
			Rate:            line.Rate,
			DiscountPercent: line.DiscountPercent,
			VATPercent:      line.VATPercent,
		})
		if err != nil {
			return nil, err
		}
		if line.BatchNo != "" || line.ExpiryDate != nil {
			if err := item.SetBatch(line.BatchNo, line.ExpiryDate); err != nil {
				return nil, err
			}
		}
		items = append(items, *item)
	}
	if err := purchase.ReplaceItems(items); err != nil {
		return nil, err
	}

	if err := purchase.SetDiscount(valueobject.NewMoney(req.Discount)); err != nil {
		return nil, err
	}
	if err := purchase.SetPayment(paymentTypeOrDefault(req.PaymentType), valueobject.NewMoney(req.PaidAmount)); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}

	return ToPurchaseResponse(purchase), nil
}

// Delete deletes a purchase. Its lines drop out of the stock ledger.
func (s *PurchaseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.purchaseRepo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.purchaseRepo.Delete(ctx, id)
}

func purchaseProductIDs(items []PurchaseItemRequest) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

// resolveProducts loads products by ID into a lookup map. A missing product
// is a field-level validation error, not a bare not-found.
func resolveProducts(ctx context.Context, repo catalog.ProductRepository, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	products, err := repo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for _, id := range unique {
		if _, ok := byID[id]; !ok {
			return nil, shared.NewValidationError("product_id", "Product not found: "+id.String())
		}
	}
	return byID, nil
}
