package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/farmaciasantana/pos-api/internal/application/service"
	"github.com/farmaciasantana/pos-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles receipt printing requests
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// Receipt returns the composed receipt for a sale without printing it,
// for on-screen preview.
func (h *PrinterHandler) Receipt(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	receipt, err := h.printerService.BuildReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// Print sends a sale's receipt to the thermal printer. Reprints produce
// identical output because everything comes from the stored sale.
func (h *PrinterHandler) Print(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	receipt, err := h.printerService.PrintSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", receipt)
}

// Status reports printer connectivity
func (h *PrinterHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status retrieved", gin.H{
		"connected": h.printerService.Status(),
	})
}
