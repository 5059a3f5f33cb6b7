package request

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Name            string  `json:"name" binding:"required,min=2,max=255"`
	Email           string  `json:"email" binding:"required,email"`
	Password        string  `json:"password" binding:"required,min=8"`
	PasswordConfirm string  `json:"password_confirm" binding:"required,eqfield=Password"`
	Role            string  `json:"role" binding:"omitempty,oneof=admin vendedor"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
