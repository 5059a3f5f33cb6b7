package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Code                 string          `json:"code" binding:"required,min=1,max=100"`
	Name                 string          `json:"name" binding:"required,min=2,max=255"`
	Description          *string         `json:"description"`
	CategoryID           *uint           `json:"category_id"`
	Price                decimal.Decimal `json:"price" binding:"required"`
	Stock                int             `json:"stock" binding:"min=0"`
	StockMin             int             `json:"stock_min" binding:"min=0"`
	ExpiryDate           *time.Time      `json:"expiry_date"`
	Laboratory           *string         `json:"laboratory"`
	Presentation         *string         `json:"presentation"`
	ActiveIngredient     *string         `json:"active_ingredient"`
	PrescriptionRequired bool            `json:"prescription_required"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name                 *string          `json:"name" binding:"omitempty,min=2,max=255"`
	Description          *string          `json:"description"`
	CategoryID           *uint            `json:"category_id"`
	Price                *decimal.Decimal `json:"price"`
	StockMin             *int             `json:"stock_min" binding:"omitempty,min=0"`
	ExpiryDate           *time.Time       `json:"expiry_date"`
	Laboratory           *string          `json:"laboratory"`
	Presentation         *string          `json:"presentation"`
	ActiveIngredient     *string          `json:"active_ingredient"`
	PrescriptionRequired *bool            `json:"prescription_required"`
}

// AdjustStockRequest represents a manual inventory adjustment
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search          string `form:"search"`
	CategoryID      *uint  `form:"category_id"`
	LowStock        bool   `form:"low_stock"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page"`
	PerPage         int    `form:"per_page"`
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=255"`
	Description *string `json:"description"`
}
