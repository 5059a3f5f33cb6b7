package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/farmaciasantana/pos-api/internal/application/service"
	"github.com/farmaciasantana/pos-api/internal/presentation/http/dto/request"
	"github.com/farmaciasantana/pos-api/internal/presentation/http/dto/response"
)

// CartHandler handles the seller's in-memory cart
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the current cart state
func (h *CartHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	response.OK(c, "Cart retrieved successfully", h.cartService.Get(*userID))
}

// AddItem adds a product to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), *userID, req.ProductID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added to cart", cart)
}

// UpdateItem changes a cart line's quantity; zero removes the line
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		return
	}

	var req request.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.cartService.UpdateItem(*userID, productID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart updated successfully", cart)
}

// RemoveItem removes a product from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		return
	}

	cart, err := h.cartService.RemoveItem(*userID, productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed from cart", cart)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	cart, err := h.cartService.Clear(*userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart cleared successfully", cart)
}
