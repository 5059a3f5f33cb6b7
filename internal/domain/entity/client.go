package entity

import (
	"strings"
	"time"

	"github.com/farmaciasantana/pos-api/internal/domain/enum"
)

// Client represents a customer of the pharmacy. A sale may reference zero
// or one client; walk-in sales carry none.
type Client struct {
	ID             uint              `gorm:"primary_key" json:"id"`
	FirstName      string            `gorm:"size:255;not null" json:"first_name"`
	LastName       *string           `gorm:"size:255" json:"last_name,omitempty"`
	DocumentType   enum.DocumentType `gorm:"size:10;not null;uniqueIndex:idx_clients_document" json:"document_type"`
	DocumentNumber string            `gorm:"size:20;not null;uniqueIndex:idx_clients_document" json:"document_number"`
	Email          *string           `gorm:"size:255" json:"email,omitempty"`
	Phone          *string           `gorm:"size:50" json:"phone,omitempty"`
	Address        *string           `gorm:"type:text" json:"address,omitempty"`
	BirthDate      *time.Time        `gorm:"type:date" json:"birth_date,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`

	// Relationships
	Sales []Sale `gorm:"foreignKey:ClientID" json:"-"`
}

// TableName returns the table name for the Client model
func (Client) TableName() string {
	return "clients"
}

// FullName joins first and last names for display.
func (c *Client) FullName() string {
	if c.LastName == nil || *c.LastName == "" {
		return c.FirstName
	}
	return strings.TrimSpace(c.FirstName + " " + *c.LastName)
}

// RequiresFactura reports whether sales to this client must emit a factura
// instead of a boleta.
func (c *Client) RequiresFactura() bool {
	return c.DocumentType == enum.DocumentRUC
}
