package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the store identity block printed at the top of a
// receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	LegalName string `json:"legal_name,omitempty"`
	RUC       string `json:"ruc,omitempty"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptClient is the optional client block. Values come from the sale's
// stored client reference, never from a fresh catalog lookup.
type ReceiptClient struct {
	Name           string `json:"name"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Address        string `json:"address,omitempty"`
}

// ReceiptItem is a printed sale line, built from the snapshotted
// SaleDetail values.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Receipt is a value object representing a printable fiscal document.
// It is NOT a database entity; it is composed from a stored sale at print
// time, and its totals reproduce the persisted amounts exactly (they are
// never recomputed, so the printed document always matches the record even
// if tax rules change later).
type Receipt struct {
	Header        ReceiptHeader  `json:"header"`
	DocumentTitle string         `json:"document_title"` // FACTURA / BOLETA DE VENTA
	DocumentNo    string         `json:"document_no"`    // e.g. B001-00000042
	SaleNumber    string         `json:"sale_number"`
	Date          string         `json:"date"`
	Seller        string         `json:"seller,omitempty"`
	Client        *ReceiptClient `json:"client,omitempty"`
	PaymentMethod string         `json:"payment_method"`
	Items         []ReceiptItem  `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	IGV           decimal.Decimal `json:"igv"`
	Total         decimal.Decimal `json:"total"`
	Notes         string         `json:"notes,omitempty"`
}
