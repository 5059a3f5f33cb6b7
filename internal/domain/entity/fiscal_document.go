package entity

import (
	"fmt"
	"time"

	"github.com/farmaciasantana/pos-api/internal/domain/enum"
)

// FiscalDocument is the invoice/receipt classification derived 1:1 from a
// completed sale: a factura when the client holds a RUC, a boleta
// otherwise. Number is the sale's numeric ID zero-padded to 8 digits.
type FiscalDocument struct {
	ID        uint                    `gorm:"primary_key" json:"id"`
	SaleID    uint                    `gorm:"not null;uniqueIndex" json:"sale_id"`
	Type      enum.FiscalDocumentType `gorm:"size:20;not null" json:"type"`
	Series    string                  `gorm:"size:10;not null" json:"series"`
	Number    string                  `gorm:"size:20;not null" json:"number"`
	CreatedAt time.Time               `json:"created_at"`
}

// TableName returns the table name for the FiscalDocument model
func (FiscalDocument) TableName() string {
	return "fiscal_documents"
}

// FullNumber renders the printed series+sequence, e.g. "B001-00000042".
func (d *FiscalDocument) FullNumber() string {
	return d.Series + "-" + d.Number
}

// FormatDocumentNumber pads a sale ID to the 8-digit sequence used on
// fiscal documents.
func FormatDocumentNumber(saleID uint) string {
	return fmt.Sprintf("%08d", saleID)
}

// NewFiscalDocument classifies a sale by its client. A nil client or a
// non-RUC document yields a boleta.
func NewFiscalDocument(client *Client, facturaSeries, boletaSeries string) *FiscalDocument {
	if client != nil && client.RequiresFactura() {
		return &FiscalDocument{Type: enum.FiscalFactura, Series: facturaSeries}
	}
	return &FiscalDocument{Type: enum.FiscalBoleta, Series: boletaSeries}
}
