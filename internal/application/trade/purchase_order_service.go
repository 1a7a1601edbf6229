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

// PurchaseOrderService handles purchase order operations. Orders track what
// was asked of a supplier; receiving against them never moves stock.
type PurchaseOrderService struct {
	orderRepo    trade.PurchaseOrderRepository
	supplierRepo partner.SupplierRepository
	productRepo  catalog.ProductRepository
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	orderRepo trade.PurchaseOrderRepository,
	supplierRepo partner.SupplierRepository,
	productRepo catalog.ProductRepository,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
	}
}

// Create places a new purchase order under the next day-scoped order number.
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewPurchaseOrder(supplier.ID, supplier.Name, req.OrderDate)
	if err != nil {
		return nil, err
	}
	order.SetDetails(req.Details)

	products, err := resolveProducts(ctx, s.productRepo, documentProductIDs(req.Items))
	if err != nil {
		return nil, err
	}

	for _, line := range req.Items {
		product := products[line.ProductID]
		rate := line.Rate
		if rate.IsZero() {
			rate = product.CostPrice
		}
		if _, err := order.AddItem(product.ID, product.Name, pricing.LineInput{
			Quantity:        line.Quantity,
			Rate:            rate,
			DiscountPercent: line.DiscountPercent,
			VATPercent:      line.VATPercent,
		}); err != nil {
			return nil, err
		}
	}

	if err := order.SetDiscount(valueobject.NewMoney(req.Discount)); err != nil {
		return nil, err
	}
	if err := order.SetPayment(paymentTypeOrDefault(req.PaymentType), valueobject.NewMoney(req.PaidAmount)); err != nil {
		return nil, err
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	orderNo, err := s.orderRepo.NextOrderNo(ctx, order.OrderDate)
	if err != nil {
		return nil, err
	}
	order.OrderNo = orderNo

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	return ToPurchaseOrderResponse(order), nil
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToPurchaseOrderResponse(order), nil
}

// List retrieves purchase orders matching the filter with pagination
func (s *PurchaseOrderService) List(ctx context.Context, filter DocumentListFilter) (*shared.Paginated[PurchaseOrderResponse], error) {
	domainFilter := documentFilter(filter)

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]PurchaseOrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = *ToPurchaseOrderResponse(order)
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.Limit())
	return &result, nil
}

// Update replaces an order's lines and summary fields. Orders with receipts
// recorded against any line reject line replacement.
func (s *PurchaseOrderService) Update(ctx context.Context, id uuid.UUID, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	supplier, err := s.supplierRepo.FindByID(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}
	order.SupplierID = supplier.ID
	order.SupplierName = supplier.Name
	order.OrderDate = req.OrderDate
	order.SetDetails(req.Details)

	products, err := resolveProducts(ctx, s.productRepo, documentProductIDs(req.Items))
	if err != nil {
		return nil, err
	}

	items := make([]trade.PurchaseOrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		product := products[line.ProductID]
		rate := line.Rate
		if rate.IsZero() {
			rate = product.CostPrice
		}
		item, err := trade.NewPurchaseOrderItem(order.ID, product.ID, product.Name, pricing.LineInput{
			Quantity:        line.Quantity,
			Rate:            rate,
			DiscountPercent: line.DiscountPercent,
			VATPercent:      line.VATPercent,
		})
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := order.ReplaceItems(items); err != nil {
		return nil, err
	}

	if err := order.SetDiscount(valueobject.NewMoney(req.Discount)); err != nil {
		return nil, err
	}
	if err := order.SetPayment(paymentTypeOrDefault(req.PaymentType), valueobject.NewMoney(req.PaidAmount)); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	return ToPurchaseOrderResponse(order), nil
}

// Receive records received quantities against an order's lines
func (s *PurchaseOrderService) Receive(ctx context.Context, id uuid.UUID, req ReceivePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	receipts := make([]trade.ReceiptLine, len(req.Items))
	for i, item := range req.Items {
		receipts[i] = trade.ReceiptLine{ItemID: item.ItemID, Quantity: item.Quantity}
	}
	if err := order.Receive(receipts); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	return ToPurchaseOrderResponse(order), nil
}

// Delete deletes a purchase order
func (s *PurchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.orderRepo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.orderRepo.Delete(ctx, id)
}

func documentProductIDs(items []DocumentItemRequest) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return ids
}
