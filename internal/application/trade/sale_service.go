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

// SaleService handles sale operations. A sale is only ever persisted through
// the repository's admitted save, which checks every line's demand against
// derived on-hand stock inside one transaction: either the whole invoice is
// admitted or nothing is written.
type SaleService struct {
	saleRepo     trade.SaleRepository
	customerRepo partner.CustomerRepository
	productRepo  catalog.ProductRepository
	unitRepo     catalog.UnitRepository
}

// NewSaleService creates a new SaleService
func NewSaleService(
	saleRepo trade.SaleRepository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
	unitRepo catalog.UnitRepository,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		unitRepo:     unitRepo,
	}
}

// Create records a new sale. Line rate and VAT default to the product's
// sale price and VAT percent when the request leaves them zero.
func (s *SaleService) Create(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	sale, err := trade.NewSale(customer.ID, customer.Name, req.SaleDate)
	if err != nil {
		return nil, err
	}
	sale.SetDetails(req.Details)

	products, err := resolveProducts(ctx, s.productRepo, documentProductIDs(req.Items))
	if err != nil {
		return nil, err
	}
	unitNames := s.unitNamesFor(ctx, products)

	for _, line := range req.Items {
		product := products[line.ProductID]
		rate := line.Rate
		if rate.IsZero() {
			rate = product.SalePrice
		}
		vatPercent := line.VATPercent
		if vatPercent.IsZero() {
			vatPercent = product.VATPercent
		}
		if _, err := sale.AddItem(product.ID, product.Name, unitNames[product.UnitID], pricing.LineInput{
			Quantity:        line.Quantity,
			Rate:            rate,
			DiscountPercent: line.DiscountPercent,
			VATPercent:      vatPercent,
		}); err != nil {
			return nil, err
		}
	}

	if err := sale.SetDiscount(valueobject.NewMoney(req.Discount)); err != nil {
		return nil, err
	}
	if err := sale.SetShippingCost(valueobject.NewMoney(req.ShippingCost)); err != nil {
		return nil, err
	}
	if err := sale.SetPayment(paymentTypeOrDefault(req.PaymentType), valueobject.NewMoney(req.PaidAmount)); err != nil {
		return nil, err
	}
	if err := sale.Validate(); err != nil {
		return nil, err
	}

	invoiceNo, err := s.saleRepo.NextInvoiceNo(ctx, sale.SaleDate)
	if err != nil {
		return nil, err
	}
	sale.InvoiceNo = invoiceNo

	if err := s.saleRepo.SaveAdmitted(ctx, sale); err != nil {
		return nil, err
	}

	return ToSaleResponse(sale), nil
}

// GetByID retrieves a sale by ID
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToSaleResponse(sale), nil
}

// GetByInvoiceNo retrieves a sale by its invoice number
func (s *SaleService) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}

	return ToSaleResponse(sale), nil
}

// List retrieves sales matching the filter with pagination
func (s *SaleService) List(ctx context.Context, filter DocumentListFilter) (*shared.Paginated[SaleResponse], error) {
	domainFilter := documentFilter(filter)

	sales, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.saleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]SaleResponse, len(sales))
	for i, sale := range sales {
		responses[i] = *ToSaleResponse(sale)
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.Limit())
	return &result, nil
}

// Delete deletes a sale. Its lines drop out of the stock ledger, returning
// the sold quantities to the derived on-hand totals.
func (s *SaleService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.saleRepo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.saleRepo.Delete(ctx, id)
}

// unitNamesFor resolves the unit names referenced by the given products.
// A lookup miss leaves the unit name blank rather than failing the sale.
func (s *SaleService) unitNamesFor(ctx context.Context, products map[uuid.UUID]*catalog.Product) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string)
	for _, product := range products {
		if _, ok := names[product.UnitID]; ok {
			continue
		}
		unit, err := s.unitRepo.FindByID(ctx, product.UnitID)
		if err != nil {
			names[product.UnitID] = ""
			continue
		}
		names[product.UnitID] = unit.Name
	}
	return names
}
