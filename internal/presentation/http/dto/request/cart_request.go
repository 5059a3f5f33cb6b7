package request

// AddCartItemRequest represents adding a product to the cart
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest represents changing a cart line's quantity.
// A quantity of zero removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}
