package request

// CheckoutRequest represents the checkout of the current cart
type CheckoutRequest struct {
	ClientID      *uint   `json:"client_id"`
	PaymentMethod string  `json:"payment_method" binding:"required,oneof=efectivo tarjeta transferencia yape plin"`
	Notes         *string `json:"notes"`
}

// SaleFilterRequest represents sale history filter parameters
type SaleFilterRequest struct {
	ClientID  *uint  `form:"client_id"`
	SellerID  string `form:"seller_id"`
	Status    string `form:"status"`
	StartDate string `form:"start_date"` // YYYY-MM-DD
	EndDate   string `form:"end_date"`   // YYYY-MM-DD
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
