package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/farmaciasantana/pos-api/internal/domain/entity"
	"github.com/farmaciasantana/pos-api/internal/domain/enum"
	domainRepo "github.com/farmaciasantana/pos-api/internal/domain/repository"
	"github.com/farmaciasantana/pos-api/pkg/apperror"
	"github.com/farmaciasantana/pos-api/pkg/pagination"
)

func newSaleFilterParams() *domainRepo.SaleFilterParams {
	return &domainRepo.SaleFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Category{},
		&entity.Product{},
		&entity.Client{},
		&entity.Sale{},
		&entity.SaleDetail{},
		&entity.FiscalDocument{},
		&entity.SaleCounter{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testSale(number string) *entity.Sale {
	return &entity.Sale{
		Number:        number,
		SellerID:      uuid.New(),
		Subtotal:      decimal.RequireFromString("37.20"),
		IGV:           decimal.RequireFromString("6.70"),
		Total:         decimal.RequireFromString("43.90"),
		Status:        enum.SaleStatusCompleted,
		PaymentMethod: enum.PaymentCash,
	}
}

// seedSaleProducts inserts the two products the testDetails lines refer to.
func seedSaleProducts(t *testing.T, db *gorm.DB) {
	t.Helper()
	products := []entity.Product{
		{ID: 1, Code: "PAR500", Name: "Paracetamol 500mg", Price: decimal.RequireFromString("12.50"), Stock: 50, StockMin: 5, Active: true},
		{ID: 2, Code: "JAR120", Name: "Jarabe 120ml", Price: decimal.RequireFromString("18.90"), Stock: 20, StockMin: 3, Active: true},
	}
	if err := db.Create(&products).Error; err != nil {
		t.Fatalf("seed products: %v", err)
	}
}

func testDetails() []entity.SaleDetail {
	return []entity.SaleDetail{
		{ProductID: 1, ProductName: "Paracetamol 500mg", UnitPrice: decimal.RequireFromString("12.50"), Quantity: 2, Subtotal: decimal.RequireFromString("25.00")},
		{ProductID: 2, ProductName: "Jarabe 120ml", UnitPrice: decimal.RequireFromString("18.90"), Quantity: 1, Subtotal: decimal.RequireFromString("18.90")},
	}
}

func TestCreateWithDetails(t *testing.T) {
	db := setupTestDB(t)
	seedSaleProducts(t, db)
	repo := NewSaleRepository(db)
	ctx := context.Background()

	sale := testSale("V-00000001")
	doc := entity.NewFiscalDocument(nil, "F001", "B001")

	if err := repo.CreateWithDetails(ctx, sale, testDetails(), doc); err != nil {
		t.Fatalf("create: %v", err)
	}
	if sale.ID == 0 {
		t.Fatal("sale ID not assigned")
	}

	got, err := repo.GetWithDetails(ctx, sale.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("sale not found after create")
	}
	if len(got.Details) != 2 {
		t.Fatalf("len(Details) = %d, want 2", len(got.Details))
	}
	if got.Details[0].ProductName != "Paracetamol 500mg" {
		t.Errorf("Details[0].ProductName = %q", got.Details[0].ProductName)
	}
	if !got.Total.Equal(decimal.RequireFromString("43.90")) {
		t.Errorf("Total = %s, want 43.90", got.Total)
	}

	if got.FiscalDocument == nil {
		t.Fatal("fiscal document not persisted")
	}
	if got.FiscalDocument.Type != enum.FiscalBoleta {
		t.Errorf("doc type = %s, want boleta", got.FiscalDocument.Type)
	}
	wantNumber := entity.FormatDocumentNumber(sale.ID)
	if got.FiscalDocument.Number != wantNumber {
		t.Errorf("doc number = %q, want %q", got.FiscalDocument.Number, wantNumber)
	}
	if got.FiscalDocument.FullNumber() != "B001-"+wantNumber {
		t.Errorf("full number = %q", got.FiscalDocument.FullNumber())
	}
}

func TestCreateWithDetailsEmptyDetails(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSaleRepository(db)

	err := repo.CreateWithDetails(context.Background(), testSale("V-00000001"), nil, entity.NewFiscalDocument(nil, "F001", "B001"))
	if !errors.Is(err, apperror.ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}

	var count int64
	db.Model(&entity.Sale{}).Count(&count)
	if count != 0 {
		t.Errorf("%d sales written, want 0", count)
	}
}

func TestCreateWithDetailsValidatesLines(t *testing.T) {
	db := setupTestDB(t)
	seedSaleProducts(t, db)
	repo := NewSaleRepository(db)
	ctx := context.Background()

	zeroQty := testDetails()
	zeroQty[0].Quantity = 0
	err := repo.CreateWithDetails(ctx, testSale("V-00000001"), zeroQty, entity.NewFiscalDocument(nil, "F001", "B001"))
	if err == nil {
		t.Fatal("zero quantity line accepted")
	}
	if appErr := apperror.GetAppError(err); appErr == nil || appErr.Code != 400 {
		t.Errorf("err = %v, want 400 AppError", err)
	}

	unknown := testDetails()
	unknown[1].ProductID = 999
	err = repo.CreateWithDetails(ctx, testSale("V-00000001"), unknown, entity.NewFiscalDocument(nil, "F001", "B001"))
	if err == nil {
		t.Fatal("line with unknown product accepted")
	}
	if appErr := apperror.GetAppError(err); appErr == nil || appErr.Code != 400 {
		t.Errorf("err = %v, want 400 AppError", err)
	}

	var sales, details int64
	db.Model(&entity.Sale{}).Count(&sales)
	db.Model(&entity.SaleDetail{}).Count(&details)
	if sales != 0 || details != 0 {
		t.Errorf("counts after rejected lines: sales=%d details=%d, want 0/0", sales, details)
	}
}

func TestCreateWithDetailsRollsBackAsUnit(t *testing.T) {
	db := setupTestDB(t)
	seedSaleProducts(t, db)
	repo := NewSaleRepository(db)
	ctx := context.Background()

	if err := repo.CreateWithDetails(ctx, testSale("V-00000001"), testDetails(), entity.NewFiscalDocument(nil, "F001", "B001")); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Duplicate business number violates the unique constraint; nothing
	// from the second attempt may survive.
	err := repo.CreateWithDetails(ctx, testSale("V-00000001"), testDetails(), entity.NewFiscalDocument(nil, "F001", "B001"))
	if err == nil {
		t.Fatal("expected unique constraint violation")
	}
	if !apperror.IsAppError(err) {
		t.Errorf("err %v is not an AppError", err)
	}

	var sales, details, docs int64
	db.Model(&entity.Sale{}).Count(&sales)
	db.Model(&entity.SaleDetail{}).Count(&details)
	db.Model(&entity.FiscalDocument{}).Count(&docs)
	if sales != 1 || details != 2 || docs != 1 {
		t.Errorf("counts after rollback: sales=%d details=%d docs=%d, want 1/2/1", sales, details, docs)
	}
}

func TestCreateWithDetailsRollsBackAfterHeaderInsert(t *testing.T) {
	db := setupTestDB(t)
	seedSaleProducts(t, db)
	repo := NewSaleRepository(db)
	ctx := context.Background()

	// Occupy the fiscal-document slot the next sale will claim. The header
	// and detail inserts succeed, then the document insert hits the unique
	// sale_id index and the whole unit must unwind.
	seeded := &entity.FiscalDocument{SaleID: 1, Type: enum.FiscalBoleta, Series: "B001", Number: "00000001"}
	if err := db.Create(seeded).Error; err != nil {
		t.Fatalf("seed document: %v", err)
	}

	err := repo.CreateWithDetails(ctx, testSale("V-00000001"), testDetails(), entity.NewFiscalDocument(nil, "F001", "B001"))
	if err == nil {
		t.Fatal("expected fiscal document insert to fail")
	}
	if !apperror.IsAppError(err) {
		t.Errorf("err %v is not an AppError", err)
	}

	var sales, details, docs int64
	db.Model(&entity.Sale{}).Count(&sales)
	db.Model(&entity.SaleDetail{}).Count(&details)
	db.Model(&entity.FiscalDocument{}).Count(&docs)
	if sales != 0 || details != 0 || docs != 1 {
		t.Errorf("counts after rollback: sales=%d details=%d docs=%d, want 0/0/1", sales, details, docs)
	}
}

func TestSaleHasNoUpdatePath(t *testing.T) {
	db := setupTestDB(t)
	seedSaleProducts(t, db)
	repo := NewSaleRepository(db)
	ctx := context.Background()

	sale := testSale("V-00000001")
	if err := repo.CreateWithDetails(ctx, sale, testDetails(), entity.NewFiscalDocument(nil, "F001", "B001")); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByNumber(ctx, "V-00000001")
	if err != nil {
		t.Fatalf("get by number: %v", err)
	}
	if got == nil || got.ID != sale.ID {
		t.Fatal("sale not retrievable by number")
	}

	if missing, err := repo.GetByNumber(ctx, "V-99999999"); err != nil || missing != nil {
		t.Errorf("GetByNumber(miss) = %v, %v; want nil, nil", missing, err)
	}
}

func TestSaleNumberRepositorySequence(t *testing.T) {
	db := setupTestDB(t)
	numbers := NewSaleNumberRepository(db)
	ctx := context.Background()

	var prev string
	for i := 1; i <= 5; i++ {
		number, err := numbers.Next(ctx)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		want := fmt.Sprintf("V-%08d", i)
		if number != want {
			t.Errorf("number = %q, want %q", number, want)
		}
		if number <= prev {
			t.Errorf("number %q not greater than previous %q", number, prev)
		}
		prev = number
	}

	var counter entity.SaleCounter
	if err := db.First(&counter, "name = ?", entity.SaleNumberCounter).Error; err != nil {
		t.Fatalf("counter row: %v", err)
	}
	if counter.LastValue != 5 {
		t.Errorf("LastValue = %d, want 5", counter.LastValue)
	}
}

func TestSaleNumberRepositoryResumesFromSeededCounter(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Create(&entity.SaleCounter{Name: entity.SaleNumberCounter, LastValue: 41}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	numbers := NewSaleNumberRepository(db)
	number, err := numbers.Next(context.Background())
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if number != "V-00000042" {
		t.Errorf("number = %q, want V-00000042", number)
	}
}

func TestSaleListFilters(t *testing.T) {
	db := setupTestDB(t)
	seedSaleProducts(t, db)
	repo := NewSaleRepository(db)
	ctx := context.Background()

	seller := uuid.New()
	for i := 1; i <= 3; i++ {
		sale := testSale(fmt.Sprintf("V-%08d", i))
		if i != 2 {
			sale.SellerID = seller
		}
		if err := repo.CreateWithDetails(ctx, sale, testDetails(), entity.NewFiscalDocument(nil, "F001", "B001")); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	params := newSaleFilterParams()
	params.SellerID = &seller
	sales, total, err := repo.List(ctx, params)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(sales) != 2 {
		t.Errorf("total = %d, len = %d, want 2/2", total, len(sales))
	}

	status := enum.SaleStatusCancelled
	params = newSaleFilterParams()
	params.Status = &status
	_, total, err = repo.List(ctx, params)
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0 cancelled sales", total)
	}
}
