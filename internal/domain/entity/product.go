package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a pharmacy product in the catalog
type Product struct {
	ID                   uint            `gorm:"primary_key" json:"id"`
	Code                 string          `gorm:"size:100;unique;not null" json:"code"`
	Name                 string          `gorm:"size:255;not null" json:"name"`
	Description          *string         `gorm:"type:text" json:"description,omitempty"`
	CategoryID           *uint           `gorm:"index" json:"category_id,omitempty"`
	Price                decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock                int             `gorm:"default:0" json:"stock"`
	StockMin             int             `gorm:"default:0" json:"stock_min"`
	ExpiryDate           *time.Time      `gorm:"type:date" json:"expiry_date,omitempty"`
	Laboratory           *string         `gorm:"size:255" json:"laboratory,omitempty"`
	Presentation         *string         `gorm:"size:255" json:"presentation,omitempty"`
	ActiveIngredient     *string         `gorm:"size:255" json:"active_ingredient,omitempty"`
	PrescriptionRequired bool            `gorm:"default:false" json:"prescription_required"`
	Active               bool            `gorm:"default:true" json:"active"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether stock has fallen to the alert threshold.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.StockMin
}

// Category represents a product category
type Category struct {
	ID          uint      `gorm:"primary_key" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
