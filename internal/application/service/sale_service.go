package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/farmaciasantana/pos-api/internal/domain/entity"
	"github.com/farmaciasantana/pos-api/internal/domain/enum"
	"github.com/farmaciasantana/pos-api/internal/domain/repository"
	"github.com/farmaciasantana/pos-api/pkg/apperror"
	"github.com/farmaciasantana/pos-api/pkg/pagination"
	"github.com/farmaciasantana/pos-api/pkg/tax"
)

var (
	salesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_sales_completed_total",
		Help: "Number of completed sales by payment method",
	}, []string{"payment_method"})

	salesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_sales_failed_total",
		Help: "Number of checkouts that failed after passing the cart guard",
	})

	salesAmount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_sales_amount_soles_total",
		Help: "Accumulated sale totals in soles",
	})
)

// SaleService orchestrates checkout: it guards the cart, derives the tax
// breakdown, obtains the sale number, and hands everything to the
// persistence gateway in one shot. On any failure the cart is left intact.
type SaleService struct {
	carts          *CartService
	saleRepo       repository.SaleRepository
	saleNumberRepo repository.SaleNumberRepository
	clientRepo     repository.ClientRepository
	facturaSeries  string
	boletaSeries   string
}

// NewSaleService creates a new sale service
func NewSaleService(
	carts *CartService,
	saleRepo repository.SaleRepository,
	saleNumberRepo repository.SaleNumberRepository,
	clientRepo repository.ClientRepository,
	facturaSeries string,
	boletaSeries string,
) *SaleService {
	return &SaleService{
		carts:          carts,
		saleRepo:       saleRepo,
		saleNumberRepo: saleNumberRepo,
		clientRepo:     clientRepo,
		facturaSeries:  facturaSeries,
		boletaSeries:   boletaSeries,
	}
}

// CheckoutInput represents the checkout request
type CheckoutInput struct {
	ClientID      *uint
	PaymentMethod enum.PaymentMethod
	Notes         *string
}

// Checkout turns the seller's cart into a persisted sale.
//
// The empty-cart and in-progress guards run before any collaborator is
// touched: an empty cart produces no sale number and no writes. Between
// BeginCheckout and EndCheckout the cart is frozen; it is cleared only
// after the transaction committed, so a numbering or persistence failure
// leaves the seller's selection exactly as it was.
func (s *SaleService) Checkout(ctx context.Context, sellerID uuid.UUID, input *CheckoutInput) (*entity.Sale, error) {
	if !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}

	cart, err := s.carts.BeginCheckout(sellerID)
	if err != nil {
		return nil, err
	}

	completed := false
	defer func() {
		if !completed {
			salesFailed.Inc()
		}
		s.carts.EndCheckout(sellerID, completed)
	}()

	var client *entity.Client
	if input.ClientID != nil {
		client, err = s.clientRepo.GetByID(ctx, *input.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, apperror.NewNotFoundError("Client")
		}
	}

	total := cart.Total().Round(2)
	breakdown := tax.Compute(total)

	number, err := s.saleNumberRepo.Next(ctx)
	if err != nil {
		return nil, err
	}

	// Snapshot name and unit price per line; later catalog edits must not
	// change what this sale says was sold.
	lines := cart.Lines()
	details := make([]entity.SaleDetail, 0, len(lines))
	for _, line := range lines {
		details = append(details, entity.SaleDetail{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			UnitPrice:   line.Product.Price,
			Quantity:    line.Quantity,
			Subtotal:    line.Subtotal,
		})
	}

	sale := &entity.Sale{
		Number:        number,
		ClientID:      input.ClientID,
		SellerID:      sellerID,
		Subtotal:      breakdown.Subtotal,
		IGV:           breakdown.IGV,
		Total:         breakdown.Total,
		Status:        enum.SaleStatusCompleted,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
	}
	doc := entity.NewFiscalDocument(client, s.facturaSeries, s.boletaSeries)

	if err := s.saleRepo.CreateWithDetails(ctx, sale, details, doc); err != nil {
		return nil, err
	}

	completed = true
	salesCompleted.WithLabelValues(string(input.PaymentMethod)).Inc()
	amount, _ := breakdown.Total.Float64()
	salesAmount.Add(amount)

	sale.Client = client
	return sale, nil
}

// GetSale retrieves a sale with its details and fiscal document
func (s *SaleService) GetSale(ctx context.Context, id uint) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// GetSaleByNumber retrieves a sale by its business number
func (s *SaleService) GetSaleByNumber(ctx context.Context, number string) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return s.saleRepo.GetWithDetails(ctx, sale.ID)
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}
