package service

import (
	"bytes"
	"testing"

	"github.com/farmaciasantana/pos-api/internal/domain/entity"
)

func testReceipt() *entity.Receipt {
	return &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: "FARMACIA SANTA ANA",
			RUC:       "20123456789",
			Address:   "Av. Los Olivos 123, Lima",
		},
		DocumentTitle: "BOLETA DE VENTA",
		DocumentNo:    "B001-00000042",
		SaleNumber:    "V-00000042",
		Date:          "15/03/2026 14:30",
		Seller:        "María García",
		PaymentMethod: "EFECTIVO",
		Items: []entity.ReceiptItem{
			{Name: "Paracetamol 500mg", Quantity: 2, UnitPrice: dec("12.50"), Subtotal: dec("25.00")},
			{Name: "Jarabe para la tos 120ml", Quantity: 1, UnitPrice: dec("18.90"), Subtotal: dec("18.90")},
		},
		Subtotal: dec("37.20"),
		IGV:      dec("6.70"),
		Total:    dec("43.90"),
	}
}

func TestFormatReceiptContent(t *testing.T) {
	out := FormatReceipt(testReceipt()).Bytes()

	for _, want := range []string{
		"FARMACIA SANTA ANA",
		"RUC: 20123456789",
		"BOLETA DE VENTA",
		"B001-00000042",
		"V-00000042",
		"15/03/2026 14:30",
		"María García",
		"EFECTIVO",
		"Paracetamol 500mg",
		"  2 x 12.50",
		"S/ 37.20",
		"S/ 6.70",
		"S/ 43.90",
		"IGV (18%)",
		"¡Gracias por su compra!",
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("receipt output missing %q", want)
		}
	}
}

func TestFormatReceiptDeterministic(t *testing.T) {
	r := testReceipt()
	first := FormatReceipt(r).Bytes()
	second := FormatReceipt(r).Bytes()
	if !bytes.Equal(first, second) {
		t.Error("formatting the same receipt twice produced different output")
	}
}

func TestFormatReceiptFacturaWithClient(t *testing.T) {
	r := testReceipt()
	r.DocumentTitle = "FACTURA"
	r.DocumentNo = "F001-00000042"
	r.Client = &entity.ReceiptClient{
		Name:           "Botica San Martín SAC",
		DocumentType:   "RUC",
		DocumentNumber: "20987654321",
		Address:        "Jr. Unión 456, Lima",
	}
	r.Notes = "Entrega a domicilio"

	out := FormatReceipt(r).Bytes()
	for _, want := range []string{
		"FACTURA",
		"F001-00000042",
		"Cliente: Botica San Martín SAC",
		"RUC: 20987654321",
		"Dir: Jr. Unión 456, Lima",
		"Obs: Entrega a domicilio",
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("factura output missing %q", want)
		}
	}
}

func TestFormatReceiptWithoutClient(t *testing.T) {
	out := FormatReceipt(testReceipt()).Bytes()
	if bytes.Contains(out, []byte("Cliente:")) {
		t.Error("anonymous sale receipt should not print a client block")
	}
}
