package request

import "time"

// CreateClientRequest represents a client registration request
type CreateClientRequest struct {
	FirstName      string     `json:"first_name" binding:"required,min=2,max=255"`
	LastName       *string    `json:"last_name"`
	DocumentType   string     `json:"document_type" binding:"required,oneof=DNI RUC CE"`
	DocumentNumber string     `json:"document_number" binding:"required,min=8,max=20"`
	Email          *string    `json:"email" binding:"omitempty,email"`
	Phone          *string    `json:"phone"`
	Address        *string    `json:"address"`
	BirthDate      *time.Time `json:"birth_date"`
}

// UpdateClientRequest represents a client update request
type UpdateClientRequest struct {
	FirstName *string    `json:"first_name" binding:"omitempty,min=2,max=255"`
	LastName  *string    `json:"last_name"`
	Email     *string    `json:"email" binding:"omitempty,email"`
	Phone     *string    `json:"phone"`
	Address   *string    `json:"address"`
	BirthDate *time.Time `json:"birth_date"`
}

// ClientFilterRequest represents client filter parameters
type ClientFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
