package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmaciasantana/pos-api/internal/domain/entity"
	"github.com/farmaciasantana/pos-api/internal/domain/repository"
	"github.com/farmaciasantana/pos-api/pkg/apperror"
	"github.com/farmaciasantana/pos-api/pkg/pagination"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Code                 string
	Name                 string
	Description          *string
	CategoryID           *uint
	Price                decimal.Decimal
	Stock                int
	StockMin             int
	ExpiryDate           *time.Time
	Laboratory           *string
	Presentation         *string
	ActiveIngredient     *string
	PrescriptionRequired bool
}

// UpdateProductInput represents the update product input. Nil fields are
// left unchanged.
type UpdateProductInput struct {
	Name                 *string
	Description          *string
	CategoryID           *uint
	Price                *decimal.Decimal
	StockMin             *int
	ExpiryDate           *time.Time
	Laboratory           *string
	Presentation         *string
	ActiveIngredient     *string
	PrescriptionRequired *bool
}

// CreateProduct creates a new catalog product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Price.IsNegative() {
		return nil, apperror.NewBadRequestError("Price cannot be negative")
	}

	existing, err := s.productRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewBadRequestError("Product code already in use")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	product := &entity.Product{
		Code:                 input.Code,
		Name:                 input.Name,
		Description:          input.Description,
		CategoryID:           input.CategoryID,
		Price:                input.Price.Round(2),
		Stock:                input.Stock,
		StockMin:             input.StockMin,
		ExpiryDate:           input.ExpiryDate,
		Laboratory:           input.Laboratory,
		Presentation:         input.Presentation,
		ActiveIngredient:     input.ActiveIngredient,
		PrescriptionRequired: input.PrescriptionRequired,
		Active:               true,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByCode retrieves a product by its barcode/internal code
func (s *ProductService) GetProductByCode(ctx context.Context, code string) (*entity.Product, error) {
	product, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct updates a product's catalog attributes. Stock is not
// touched here; it only moves through AdjustStock.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		product.CategoryID = input.CategoryID
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, apperror.NewBadRequestError("Price cannot be negative")
		}
		product.Price = input.Price.Round(2)
	}
	if input.StockMin != nil {
		product.StockMin = *input.StockMin
	}
	if input.ExpiryDate != nil {
		product.ExpiryDate = input.ExpiryDate
	}
	if input.Laboratory != nil {
		product.Laboratory = input.Laboratory
	}
	if input.Presentation != nil {
		product.Presentation = input.Presentation
	}
	if input.ActiveIngredient != nil {
		product.ActiveIngredient = input.ActiveIngredient
	}
	if input.PrescriptionRequired != nil {
		product.PrescriptionRequired = *input.PrescriptionRequired
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeactivateProduct hides a product from sale without deleting its rows;
// historical sale details keep pointing at it.
func (s *ProductService) DeactivateProduct(ctx context.Context, id uint) error {
	return s.productRepo.Deactivate(ctx, id)
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetLowStock returns active products at or below their alert threshold
func (s *ProductService) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// AdjustStock applies an inventory delta (restock or manual correction)
func (s *ProductService) AdjustStock(ctx context.Context, id uint, delta int) (*entity.Product, error) {
	if delta == 0 {
		return nil, apperror.NewBadRequestError("Stock adjustment cannot be zero")
	}
	if err := s.productRepo.AdjustStock(ctx, id, delta); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

// CreateCategory creates a product category
func (s *ProductService) CreateCategory(ctx context.Context, name string, description *string) (*entity.Category, error) {
	category := &entity.Category{
		Name:        name,
		Description: description,
		Active:      true,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists active categories
func (s *ProductService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx)
}
