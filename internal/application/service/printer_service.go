package service

import (
	"context"
	"strings"

	"github.com/farmaciasantana/pos-api/internal/config"
	"github.com/farmaciasantana/pos-api/internal/domain/entity"
	"github.com/farmaciasantana/pos-api/internal/domain/enum"
	"github.com/farmaciasantana/pos-api/internal/domain/repository"
	"github.com/farmaciasantana/pos-api/pkg/apperror"
	"github.com/farmaciasantana/pos-api/pkg/printer"
)

// receiptDateLayout is the timestamp format printed on receipts.
const receiptDateLayout = "02/01/2006 15:04"

// PrinterService composes receipts from stored sales and sends them to the
// thermal printer. Every value on the receipt comes from the persisted sale
// (snapshotted names, prices and totals); nothing is recomputed at print
// time, so reprints are byte-identical to the original.
type PrinterService struct {
	saleRepo repository.SaleRepository
	userRepo repository.UserRepository
	device   printer.Printer
	store    config.StoreConfig
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	saleRepo repository.SaleRepository,
	userRepo repository.UserRepository,
	device printer.Printer,
	store config.StoreConfig,
) *PrinterService {
	return &PrinterService{
		saleRepo: saleRepo,
		userRepo: userRepo,
		device:   device,
		store:    store,
	}
}

// BuildReceipt assembles the printable receipt for a sale.
func (s *PrinterService) BuildReceipt(ctx context.Context, saleID uint) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetWithDetails(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: s.store.Name,
			LegalName: s.store.LegalName,
			RUC:       s.store.RUC,
			Address:   s.store.Address,
			Phone:     s.store.Phone,
		},
		DocumentTitle: "BOLETA DE VENTA",
		SaleNumber:    sale.Number,
		Date:          sale.CreatedAt.Format(receiptDateLayout),
		PaymentMethod: strings.ToUpper(string(sale.PaymentMethod)),
		Subtotal:      sale.Subtotal,
		IGV:           sale.IGV,
		Total:         sale.Total,
	}

	if sale.FiscalDocument != nil {
		if sale.FiscalDocument.Type == enum.FiscalFactura {
			receipt.DocumentTitle = "FACTURA"
		}
		receipt.DocumentNo = sale.FiscalDocument.FullNumber()
	}

	if sale.Client != nil {
		client := &entity.ReceiptClient{
			Name:           sale.Client.FullName(),
			DocumentType:   sale.Client.DocumentType.String(),
			DocumentNumber: sale.Client.DocumentNumber,
		}
		if sale.Client.Address != nil {
			client.Address = *sale.Client.Address
		}
		receipt.Client = client
	}

	if seller, err := s.userRepo.GetByID(ctx, sale.SellerID); err == nil && seller != nil {
		receipt.Seller = seller.Name
	}

	for _, detail := range sale.Details {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      detail.ProductName,
			Quantity:  detail.Quantity,
			UnitPrice: detail.UnitPrice,
			Subtotal:  detail.Subtotal,
		})
	}

	if sale.Notes != nil {
		receipt.Notes = *sale.Notes
	}

	return receipt, nil
}

// FormatReceipt renders a receipt as an ESC/POS document for an 80mm
// thermal printer. The rendering is deterministic: the same receipt always
// produces the same bytes.
func FormatReceipt(r *entity.Receipt) *printer.Document {
	doc := printer.NewDocument(48)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.LegalName != "" {
		doc.Text(r.Header.LegalName)
	}
	if r.Header.RUC != "" {
		doc.Text("RUC: " + r.Header.RUC)
	}
	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text("Telf: " + r.Header.Phone)
	}

	doc.FeedLines(1).
		SetBold(true).
		Text(r.DocumentTitle)
	if r.DocumentNo != "" {
		doc.Text(r.DocumentNo)
	}
	doc.SetBold(false).
		SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Venta:", r.SaleNumber).
		KeyValue("Fecha:", r.Date)
	if r.Seller != "" {
		doc.KeyValue("Vendedor:", r.Seller)
	}
	doc.KeyValue("Pago:", r.PaymentMethod)

	if r.Client != nil {
		doc.Separator('-').
			Text("Cliente: " + r.Client.Name).
			Text(r.Client.DocumentType + ": " + r.Client.DocumentNumber)
		if r.Client.Address != "" {
			doc.Text("Dir: " + r.Client.Address)
		}
	}

	doc.Separator('=')
	for _, item := range r.Items {
		doc.ItemRow(item.Name, item.Quantity, item.UnitPrice.StringFixed(2), item.Subtotal.StringFixed(2))
	}
	doc.Separator('=')

	doc.KeyValue("Subtotal", "S/ "+r.Subtotal.StringFixed(2)).
		KeyValue("IGV (18%)", "S/ "+r.IGV.StringFixed(2)).
		SetBold(true).
		KeyValue("TOTAL", "S/ "+r.Total.StringFixed(2)).
		SetBold(false)

	if r.Notes != "" {
		doc.Separator('-').
			Text("Obs: " + r.Notes)
	}

	doc.FeedLines(1).
		SetAlign(printer.AlignCenter).
		Text("¡Gracias por su compra!").
		Text("Conserve su comprobante").
		FeedLines(3).
		Cut()

	return doc
}

// PrintSale builds, formats and sends a sale's receipt to the configured
// printer. Also used to reprint: the output is identical every time.
func (s *PrinterService) PrintSale(ctx context.Context, saleID uint) (*entity.Receipt, error) {
	receipt, err := s.BuildReceipt(ctx, saleID)
	if err != nil {
		return nil, err
	}

	doc := FormatReceipt(receipt)
	if err := s.device.Print(doc.Bytes()); err != nil {
		return nil, apperror.NewAppError(503, "Printer unavailable: "+err.Error())
	}

	return receipt, nil
}

// Status reports whether the configured printer is reachable
func (s *PrinterService) Status() bool {
	return s.device.IsConnected()
}
