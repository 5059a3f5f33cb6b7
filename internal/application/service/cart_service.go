package service

import (
	"context"
	"sync"

	"github.com/farmaciasantana/pos-api/internal/domain/entity"
	"github.com/farmaciasantana/pos-api/internal/domain/repository"
	"github.com/farmaciasantana/pos-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartService manages the in-memory carts, one per logged-in seller.
// Carts are terminal session state and are never persisted; a sale only
// reaches the database through SaleService.Checkout.
type CartService struct {
	mu          sync.Mutex
	sessions    map[uuid.UUID]*cartSession
	productRepo repository.ProductRepository
}

type cartSession struct {
	cart       *entity.Cart
	processing bool
}

// NewCartService creates a new cart service
func NewCartService(productRepo repository.ProductRepository) *CartService {
	return &CartService{
		sessions:    make(map[uuid.UUID]*cartSession),
		productRepo: productRepo,
	}
}

// CartView is the read model returned to handlers after every cart
// operation, so the client never has to derive totals itself.
type CartView struct {
	Lines     []entity.CartLine `json:"lines"`
	Total     decimal.Decimal   `json:"total"`
	ItemCount int               `json:"item_count"`
	LineCount int               `json:"line_count"`
}

func (s *CartService) session(sellerID uuid.UUID) *cartSession {
	sess, ok := s.sessions[sellerID]
	if !ok {
		sess = &cartSession{cart: entity.NewCart()}
		s.sessions[sellerID] = sess
	}
	return sess
}

func viewOf(cart *entity.Cart) *CartView {
	return &CartView{
		Lines:     cart.Lines(),
		Total:     cart.Total(),
		ItemCount: cart.ItemCount(),
		LineCount: cart.LineCount(),
	}
}

// AddItem adds quantity units of a product to the seller's cart. The
// product is looked up live so the cart always carries the current price
// and only active products can be sold.
func (s *CartService) AddItem(ctx context.Context, sellerID uuid.UUID, productID uint, quantity int) (*CartView, error) {
	if quantity <= 0 {
		return nil, apperror.NewBadRequestError("Quantity must be positive")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sellerID)
	if sess.processing {
		return nil, apperror.ErrCheckoutInProgress
	}

	sess.cart.AddLine(*product, quantity)
	return viewOf(sess.cart), nil
}

// UpdateItem sets the quantity of a cart line. A quantity of zero or less
// removes the line.
func (s *CartService) UpdateItem(sellerID uuid.UUID, productID uint, quantity int) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sellerID)
	if sess.processing {
		return nil, apperror.ErrCheckoutInProgress
	}

	sess.cart.UpdateQuantity(productID, quantity)
	return viewOf(sess.cart), nil
}

// RemoveItem removes a product from the cart
func (s *CartService) RemoveItem(sellerID uuid.UUID, productID uint) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sellerID)
	if sess.processing {
		return nil, apperror.ErrCheckoutInProgress
	}

	sess.cart.RemoveLine(productID)
	return viewOf(sess.cart), nil
}

// Clear empties the seller's cart
func (s *CartService) Clear(sellerID uuid.UUID) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sellerID)
	if sess.processing {
		return nil, apperror.ErrCheckoutInProgress
	}

	sess.cart.Clear()
	return viewOf(sess.cart), nil
}

// Get returns the current state of the seller's cart
func (s *CartService) Get(sellerID uuid.UUID) *CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return viewOf(s.session(sellerID).cart)
}

// BeginCheckout marks the seller's cart as being processed and hands it to
// the caller. While the flag is set all mutations and further checkouts are
// rejected, so a double-clicked checkout can never produce two sales from
// one cart. The caller must call EndCheckout exactly once.
func (s *CartService) BeginCheckout(sellerID uuid.UUID) (*entity.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sellerID)
	if sess.processing {
		return nil, apperror.ErrCheckoutInProgress
	}
	if sess.cart.IsEmpty() {
		return nil, apperror.ErrEmptyCart
	}

	sess.processing = true
	return sess.cart, nil
}

// EndCheckout releases the processing flag. On a completed sale the cart is
// cleared; on failure it is left exactly as it was so the seller can retry.
func (s *CartService) EndCheckout(sellerID uuid.UUID, completed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sellerID)
	if completed {
		sess.cart.Clear()
	}
	sess.processing = false
}
