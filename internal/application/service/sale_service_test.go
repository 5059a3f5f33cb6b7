package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmaciasantana/pos-api/internal/domain/entity"
	"github.com/farmaciasantana/pos-api/internal/domain/enum"
	"github.com/farmaciasantana/pos-api/internal/domain/repository"
	"github.com/farmaciasantana/pos-api/pkg/apperror"
)

// --- fakes ---

type fakeProductRepo struct {
	products map[uint]entity.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error { return nil }
func (f *fakeProductRepo) GetByID(ctx context.Context, id uint) (*entity.Product, error) {
	if p, ok := f.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}
func (f *fakeProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) GetByIDs(ctx context.Context, ids []uint) ([]entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error { return nil }
func (f *fakeProductRepo) Deactivate(ctx context.Context, id uint) error       { return nil }
func (f *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return nil, 0, nil
}
func (f *fakeProductRepo) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) AdjustStock(ctx context.Context, id uint, delta int) error { return nil }

type fakeSaleRepo struct {
	mu      sync.Mutex
	created []*entity.Sale
	details [][]entity.SaleDetail
	docs    []*entity.FiscalDocument
	failure error
	// blockOn, when set, makes CreateWithDetails wait until released.
	blockOn  chan struct{}
	blocking chan struct{}
}

func (f *fakeSaleRepo) CreateWithDetails(ctx context.Context, sale *entity.Sale, details []entity.SaleDetail, doc *entity.FiscalDocument) error {
	if f.blockOn != nil {
		f.blocking <- struct{}{}
		<-f.blockOn
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failure != nil {
		return f.failure
	}
	sale.ID = uint(len(f.created) + 1)
	f.created = append(f.created, sale)
	f.details = append(f.details, details)
	f.docs = append(f.docs, doc)
	return nil
}

func (f *fakeSaleRepo) GetByID(ctx context.Context, id uint) (*entity.Sale, error) { return nil, nil }
func (f *fakeSaleRepo) GetByNumber(ctx context.Context, number string) (*entity.Sale, error) {
	return nil, nil
}
func (f *fakeSaleRepo) GetWithDetails(ctx context.Context, id uint) (*entity.Sale, error) {
	return nil, nil
}
func (f *fakeSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return nil, 0, nil
}

func (f *fakeSaleRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

type fakeNumberRepo struct {
	mu      sync.Mutex
	counter int64
	calls   int
	failure error
}

func (f *fakeNumberRepo) Next(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failure != nil {
		return "", f.failure
	}
	f.counter++
	return fmt.Sprintf("V-%08d", f.counter), nil
}

type fakeClientRepo struct {
	clients map[uint]entity.Client
}

func (f *fakeClientRepo) Create(ctx context.Context, c *entity.Client) error { return nil }
func (f *fakeClientRepo) GetByID(ctx context.Context, id uint) (*entity.Client, error) {
	if c, ok := f.clients[id]; ok {
		return &c, nil
	}
	return nil, nil
}
func (f *fakeClientRepo) FindByDocument(ctx context.Context, docType enum.DocumentType, number string) (*entity.Client, error) {
	return nil, nil
}
func (f *fakeClientRepo) Update(ctx context.Context, c *entity.Client) error { return nil }
func (f *fakeClientRepo) List(ctx context.Context, params *repository.ClientFilterParams) ([]entity.Client, int64, error) {
	return nil, 0, nil
}

// --- helpers ---

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestServices(saleRepo *fakeSaleRepo, numberRepo *fakeNumberRepo, clientRepo *fakeClientRepo) (*CartService, *SaleService) {
	products := &fakeProductRepo{products: map[uint]entity.Product{
		1: {ID: 1, Code: "PAR500", Name: "Paracetamol 500mg", Price: dec("12.50"), Active: true},
		2: {ID: 2, Code: "JAR120", Name: "Jarabe 120ml", Price: dec("18.90"), Active: true},
	}}
	carts := NewCartService(products)
	sales := NewSaleService(carts, saleRepo, numberRepo, clientRepo, "F001", "B001")
	return carts, sales
}

func checkoutInput() *CheckoutInput {
	return &CheckoutInput{PaymentMethod: enum.PaymentCash}
}

// --- tests ---

func TestCheckoutEmptyCart(t *testing.T) {
	saleRepo := &fakeSaleRepo{}
	numberRepo := &fakeNumberRepo{}
	_, sales := newTestServices(saleRepo, numberRepo, &fakeClientRepo{})

	seller := uuid.New()
	_, err := sales.Checkout(context.Background(), seller, checkoutInput())
	if !errors.Is(err, apperror.ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}

	// The guard fires before any collaborator is touched.
	if numberRepo.calls != 0 {
		t.Errorf("sale number requested %d times for an empty cart", numberRepo.calls)
	}
	if saleRepo.count() != 0 {
		t.Errorf("%d sales written for an empty cart", saleRepo.count())
	}
}

func TestCheckoutComputesStoredAmounts(t *testing.T) {
	saleRepo := &fakeSaleRepo{}
	numberRepo := &fakeNumberRepo{}
	carts, sales := newTestServices(saleRepo, numberRepo, &fakeClientRepo{})

	seller := uuid.New()
	ctx := context.Background()
	if _, err := carts.AddItem(ctx, seller, 1, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := carts.AddItem(ctx, seller, 2, 1); err != nil {
		t.Fatal(err)
	}

	sale, err := sales.Checkout(ctx, seller, checkoutInput())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if sale.Number != "V-00000001" {
		t.Errorf("Number = %q, want V-00000001", sale.Number)
	}
	if !sale.Total.Equal(dec("43.90")) {
		t.Errorf("Total = %s, want 43.90", sale.Total)
	}
	if !sale.IGV.Equal(dec("6.70")) {
		t.Errorf("IGV = %s, want 6.70", sale.IGV)
	}
	if !sale.Subtotal.Equal(dec("37.20")) {
		t.Errorf("Subtotal = %s, want 37.20", sale.Subtotal)
	}
	if sale.Status != enum.SaleStatusCompleted {
		t.Errorf("Status = %v, want completed", sale.Status)
	}
	if sale.SellerID != seller {
		t.Errorf("SellerID = %s, want %s", sale.SellerID, seller)
	}

	details := saleRepo.details[0]
	if len(details) != 2 {
		t.Fatalf("len(details) = %d, want 2", len(details))
	}
	if details[0].ProductName != "Paracetamol 500mg" || details[0].Quantity != 2 || !details[0].Subtotal.Equal(dec("25.00")) {
		t.Errorf("detail[0] = %+v", details[0])
	}
	if details[1].ProductName != "Jarabe 120ml" || details[1].Quantity != 1 || !details[1].Subtotal.Equal(dec("18.90")) {
		t.Errorf("detail[1] = %+v", details[1])
	}

	// Completed checkout clears the cart
	if view := carts.Get(seller); view.LineCount != 0 {
		t.Errorf("cart has %d lines after checkout, want 0", view.LineCount)
	}
}

func TestCheckoutFiscalDocumentClassification(t *testing.T) {
	ruc := uint(10)
	dni := uint(11)
	clientRepo := &fakeClientRepo{clients: map[uint]entity.Client{
		ruc: {ID: ruc, FirstName: "Botica Lima SAC", DocumentType: enum.DocumentRUC, DocumentNumber: "20123456789"},
		dni: {ID: dni, FirstName: "Maria", DocumentType: enum.DocumentDNI, DocumentNumber: "45678912"},
	}}

	cases := []struct {
		name     string
		clientID *uint
		wantType enum.FiscalDocumentType
		wantSer  string
	}{
		{"ruc client gets factura", &ruc, enum.FiscalFactura, "F001"},
		{"dni client gets boleta", &dni, enum.FiscalBoleta, "B001"},
		{"anonymous sale gets boleta", nil, enum.FiscalBoleta, "B001"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			saleRepo := &fakeSaleRepo{}
			carts, sales := newTestServices(saleRepo, &fakeNumberRepo{}, clientRepo)

			seller := uuid.New()
			ctx := context.Background()
			if _, err := carts.AddItem(ctx, seller, 1, 1); err != nil {
				t.Fatal(err)
			}

			input := checkoutInput()
			input.ClientID = tc.clientID
			if _, err := sales.Checkout(ctx, seller, input); err != nil {
				t.Fatalf("checkout: %v", err)
			}

			doc := saleRepo.docs[0]
			if doc.Type != tc.wantType {
				t.Errorf("doc.Type = %s, want %s", doc.Type, tc.wantType)
			}
			if doc.Series != tc.wantSer {
				t.Errorf("doc.Series = %s, want %s", doc.Series, tc.wantSer)
			}
		})
	}
}

func TestCheckoutUnknownClient(t *testing.T) {
	saleRepo := &fakeSaleRepo{}
	numberRepo := &fakeNumberRepo{}
	carts, sales := newTestServices(saleRepo, numberRepo, &fakeClientRepo{})

	seller := uuid.New()
	ctx := context.Background()
	if _, err := carts.AddItem(ctx, seller, 1, 1); err != nil {
		t.Fatal(err)
	}

	missing := uint(99)
	input := checkoutInput()
	input.ClientID = &missing
	_, err := sales.Checkout(ctx, seller, input)
	if err == nil {
		t.Fatal("expected error for unknown client")
	}
	if saleRepo.count() != 0 {
		t.Error("sale written despite unknown client")
	}
	// Cart survives the failed checkout
	if view := carts.Get(seller); view.LineCount != 1 {
		t.Errorf("cart has %d lines, want 1", view.LineCount)
	}
}

func TestCheckoutPersistenceFailureLeavesCartIntact(t *testing.T) {
	saleRepo := &fakeSaleRepo{failure: apperror.NewPersistenceError(errors.New("connection refused"))}
	carts, sales := newTestServices(saleRepo, &fakeNumberRepo{}, &fakeClientRepo{})

	seller := uuid.New()
	ctx := context.Background()
	if _, err := carts.AddItem(ctx, seller, 1, 2); err != nil {
		t.Fatal(err)
	}

	_, err := sales.Checkout(ctx, seller, checkoutInput())
	if err == nil {
		t.Fatal("expected persistence error")
	}

	view := carts.Get(seller)
	if view.LineCount != 1 || !view.Total.Equal(dec("25.00")) {
		t.Fatalf("cart changed after failed checkout: %d lines, total %s", view.LineCount, view.Total)
	}

	// The same cart checks out fine once the store recovers.
	saleRepo.failure = nil
	sale, err := sales.Checkout(ctx, seller, checkoutInput())
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if !sale.Total.Equal(dec("25.00")) {
		t.Errorf("Total = %s, want 25.00", sale.Total)
	}
}

func TestCheckoutNumberingFailure(t *testing.T) {
	saleRepo := &fakeSaleRepo{}
	numberRepo := &fakeNumberRepo{failure: apperror.NewNumberingError(errors.New("counter locked"))}
	carts, sales := newTestServices(saleRepo, numberRepo, &fakeClientRepo{})

	seller := uuid.New()
	ctx := context.Background()
	if _, err := carts.AddItem(ctx, seller, 1, 1); err != nil {
		t.Fatal(err)
	}

	_, err := sales.Checkout(ctx, seller, checkoutInput())
	if err == nil {
		t.Fatal("expected numbering error")
	}
	if saleRepo.count() != 0 {
		t.Error("sale written despite numbering failure")
	}
	if view := carts.Get(seller); view.LineCount != 1 {
		t.Errorf("cart has %d lines, want 1", view.LineCount)
	}
}

func TestCheckoutInvalidPaymentMethod(t *testing.T) {
	carts, sales := newTestServices(&fakeSaleRepo{}, &fakeNumberRepo{}, &fakeClientRepo{})

	seller := uuid.New()
	ctx := context.Background()
	if _, err := carts.AddItem(ctx, seller, 1, 1); err != nil {
		t.Fatal(err)
	}

	_, err := sales.Checkout(ctx, seller, &CheckoutInput{PaymentMethod: "cheque"})
	if err == nil {
		t.Fatal("expected error for invalid payment method")
	}
}

func TestCheckoutRejectsConcurrentAttempt(t *testing.T) {
	saleRepo := &fakeSaleRepo{
		blockOn:  make(chan struct{}),
		blocking: make(chan struct{}),
	}
	carts, sales := newTestServices(saleRepo, &fakeNumberRepo{}, &fakeClientRepo{})

	seller := uuid.New()
	ctx := context.Background()
	if _, err := carts.AddItem(ctx, seller, 1, 1); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := sales.Checkout(ctx, seller, checkoutInput())
		done <- err
	}()

	// Wait until the first checkout is inside the persistence call.
	<-saleRepo.blocking

	if _, err := sales.Checkout(ctx, seller, checkoutInput()); !errors.Is(err, apperror.ErrCheckoutInProgress) {
		t.Errorf("second checkout err = %v, want ErrCheckoutInProgress", err)
	}
	if _, err := carts.AddItem(ctx, seller, 2, 1); !errors.Is(err, apperror.ErrCheckoutInProgress) {
		t.Errorf("AddItem during checkout err = %v, want ErrCheckoutInProgress", err)
	}

	close(saleRepo.blockOn)
	if err := <-done; err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	if saleRepo.count() != 1 {
		t.Errorf("%d sales written, want 1", saleRepo.count())
	}
}

func TestConcurrentCheckoutsGetDistinctNumbers(t *testing.T) {
	saleRepo := &fakeSaleRepo{}
	numberRepo := &fakeNumberRepo{}
	carts, sales := newTestServices(saleRepo, numberRepo, &fakeClientRepo{})

	const sellers = 8
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make(chan string, sellers)
	for i := 0; i < sellers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seller := uuid.New()
			if _, err := carts.AddItem(ctx, seller, 1, 1); err != nil {
				t.Error(err)
				return
			}
			sale, err := sales.Checkout(ctx, seller, checkoutInput())
			if err != nil {
				t.Error(err)
				return
			}
			results <- sale.Number
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for number := range results {
		if seen[number] {
			t.Errorf("duplicate sale number %s", number)
		}
		seen[number] = true
	}
	if len(seen) != sellers {
		t.Errorf("got %d distinct numbers, want %d", len(seen), sellers)
	}
}
