package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farmaciasantana/pos-api/internal/application/service"
	"github.com/farmaciasantana/pos-api/internal/domain/enum"
	"github.com/farmaciasantana/pos-api/internal/domain/repository"
	"github.com/farmaciasantana/pos-api/internal/presentation/http/dto/request"
	"github.com/farmaciasantana/pos-api/internal/presentation/http/dto/response"
	"github.com/farmaciasantana/pos-api/pkg/pagination"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Checkout turns the authenticated seller's cart into a sale
func (h *SaleHandler) Checkout(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.saleService.Checkout(c.Request.Context(), *userID, &service.CheckoutInput{
		ClientID:      req.ClientID,
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed successfully", sale)
}

// List handles the sales history listing
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		ClientID: filter.ClientID,
	}

	if filter.SellerID != "" {
		sellerID, err := uuid.Parse(filter.SellerID)
		if err == nil {
			params.SellerID = &sellerID
		}
	}

	if filter.Status != "" {
		if status, ok := enum.ParseSaleStatus(filter.Status); ok {
			params.Status = &status
		}
	}

	if filter.StartDate != "" {
		if start, err := time.Parse("2006-01-02", filter.StartDate); err == nil {
			params.StartDate = &start
		}
	}
	if filter.EndDate != "" {
		if end, err := time.Parse("2006-01-02", filter.EndDate); err == nil {
			// Inclusive end of day
			end = end.Add(24*time.Hour - time.Nanosecond)
			params.EndDate = &end
		}
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles retrieving a sale with its details and fiscal document
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// GetByNumber handles retrieving a sale by its business number
func (h *SaleHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		response.BadRequest(c, "Sale number is required")
		return
	}

	sale, err := h.saleService.GetSaleByNumber(c.Request.Context(), number)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}
