package enum

// DocumentType identifies a client's legal document.
type DocumentType string

const (
	DocumentDNI DocumentType = "DNI" // national ID
	DocumentRUC DocumentType = "RUC" // tax ID (companies)
	DocumentCE  DocumentType = "CE"  // foreign-resident ID
)

// IsValid reports whether the document type belongs to the closed set.
func (d DocumentType) IsValid() bool {
	switch d {
	case DocumentDNI, DocumentRUC, DocumentCE:
		return true
	}
	return false
}

func (d DocumentType) String() string {
	return string(d)
}

// FiscalDocumentType classifies the fiscal document emitted for a sale.
// A client with a RUC gets a factura; everyone else gets a boleta.
type FiscalDocumentType string

const (
	FiscalFactura FiscalDocumentType = "factura"
	FiscalBoleta  FiscalDocumentType = "boleta"
)

func (f FiscalDocumentType) String() string {
	return string(f)
}
