package repository

import (
	"context"

	"github.com/farmaciasantana/pos-api/internal/domain/entity"
	"github.com/farmaciasantana/pos-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations.
// Read paths only return active products unless IncludeInactive is set:
// deactivation is a visibility flag, not a different entity.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uint) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uint) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Deactivate(ctx context.Context, id uint) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	// AdjustStock applies a stock delta atomically (UPDATE ... SET stock =
	// stock + delta). Decrements that would drive stock negative fail.
	// Stock is adjusted by this separate inventory operation, never inside
	// the sale transaction.
	AdjustStock(ctx context.Context, id uint, delta int) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination      *pagination.PaginationParams
	Search          string
	CategoryID      *uint
	LowStock        bool
	IncludeInactive bool
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uint) (*entity.Category, error)
	List(ctx context.Context) ([]entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Deactivate(ctx context.Context, id uint) error
}
