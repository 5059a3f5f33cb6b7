package repository

import (
	"context"

	"github.com/farmaciasantana/pos-api/internal/domain/entity"
	"github.com/farmaciasantana/pos-api/internal/domain/enum"
	"github.com/farmaciasantana/pos-api/pkg/pagination"
)

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id uint) (*entity.Client, error)
	FindByDocument(ctx context.Context, docType enum.DocumentType, number string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	List(ctx context.Context, params *ClientFilterParams) ([]entity.Client, int64, error)
}

// ClientFilterParams contains filtering parameters for client queries
type ClientFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
}
