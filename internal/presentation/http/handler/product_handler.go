package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/farmaciasantana/pos-api/internal/application/service"
	"github.com/farmaciasantana/pos-api/internal/domain/repository"
	"github.com/farmaciasantana/pos-api/internal/presentation/http/dto/request"
	"github.com/farmaciasantana/pos-api/internal/presentation/http/dto/response"
	"github.com/farmaciasantana/pos-api/pkg/pagination"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// List handles listing products with search and filters
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:          filter.Search,
		CategoryID:      filter.CategoryID,
		LowStock:        filter.LowStock,
		IncludeInactive: filter.IncludeInactive && IsAdmin(c),
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Get handles retrieving a product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// GetByCode handles the barcode lookup used at the till
func (h *ProductHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, "Product code is required")
		return
	}

	product, err := h.productService.GetProductByCode(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Create handles product creation
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Code:                 req.Code,
		Name:                 req.Name,
		Description:          req.Description,
		CategoryID:           req.CategoryID,
		Price:                req.Price,
		Stock:                req.Stock,
		StockMin:             req.StockMin,
		ExpiryDate:           req.ExpiryDate,
		Laboratory:           req.Laboratory,
		Presentation:         req.Presentation,
		ActiveIngredient:     req.ActiveIngredient,
		PrescriptionRequired: req.PrescriptionRequired,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Update handles product updates
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &service.UpdateProductInput{
		Name:                 req.Name,
		Description:          req.Description,
		CategoryID:           req.CategoryID,
		Price:                req.Price,
		StockMin:             req.StockMin,
		ExpiryDate:           req.ExpiryDate,
		Laboratory:           req.Laboratory,
		Presentation:         req.Presentation,
		ActiveIngredient:     req.ActiveIngredient,
		PrescriptionRequired: req.PrescriptionRequired,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Deactivate handles hiding a product from the catalog
func (h *ProductHandler) Deactivate(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeactivateProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deactivated successfully", nil)
}

// LowStock handles the low stock alert listing
func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.productService.GetLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", products)
}

// AdjustStock handles manual inventory adjustments
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req request.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock adjusted successfully", product)
}

// CreateCategory handles category creation
func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req request.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.productService.CreateCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created successfully", category)
}

// ListCategories handles listing active categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.productService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", categories)
}
