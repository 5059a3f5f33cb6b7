package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmaciasantana/pos-api/internal/domain/enum"
)

// Sale is an immutable, tax-computed record of a completed checkout.
// Amounts satisfy total = subtotal + igv, with igv derived from the
// tax-inclusive total. Once the status is completed the sale and its
// details are never updated; the repository exposes no update path.
type Sale struct {
	ID            uint               `gorm:"primary_key" json:"id"`
	Number        string             `gorm:"size:50;unique;not null" json:"number"`
	ClientID      *uint              `gorm:"index" json:"client_id,omitempty"`
	SellerID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"seller_id"`
	Subtotal      decimal.Decimal    `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	IGV           decimal.Decimal    `gorm:"type:decimal(10,2);not null;column:igv" json:"igv"`
	Total         decimal.Decimal    `gorm:"type:decimal(10,2);not null" json:"total"`
	Status        enum.SaleStatus    `gorm:"default:0" json:"status"`
	PaymentMethod enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`

	// Relationships
	Client         *Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Details        []SaleDetail    `gorm:"foreignKey:SaleID" json:"details,omitempty"`
	FiscalDocument *FiscalDocument `gorm:"foreignKey:SaleID" json:"fiscal_document,omitempty"`
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleDetail is a line item of a sale. Product name and unit price are
// snapshotted at sale time so later catalog changes never rewrite history.
type SaleDetail struct {
	ID          uint            `gorm:"primary_key" json:"id"`
	SaleID      uint            `gorm:"not null;index" json:"sale_id"`
	ProductID   uint            `gorm:"not null;index" json:"product_id"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	CreatedAt   time.Time       `json:"created_at"`

	// Relationships
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// TableName returns the table name for the SaleDetail model
func (SaleDetail) TableName() string {
	return "sale_details"
}

// SaleNumberCounter names the counter row backing the sale number sequence.
const SaleNumberCounter = "sale_number"

// SaleCounter backs the sale numbering sequence. A single named row is
// incremented inside a transaction so number assignment serializes across
// terminals; the application never read-then-increments in memory.
type SaleCounter struct {
	Name      string `gorm:"size:50;primary_key" json:"name"`
	LastValue int64  `gorm:"not null;default:0" json:"last_value"`
}

// TableName returns the table name for the SaleCounter model
func (SaleCounter) TableName() string {
	return "sale_counters"
}
