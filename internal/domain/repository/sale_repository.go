package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/farmaciasantana/pos-api/internal/domain/entity"
	"github.com/farmaciasantana/pos-api/internal/domain/enum"
	"github.com/farmaciasantana/pos-api/pkg/pagination"
)

// SaleRepository is the persistence gateway for sales. CreateWithDetails
// writes the sale header, every detail row, and the fiscal document in a
// single transaction: on any failure nothing is written. There is no
// update path; a completed sale is immutable.
type SaleRepository interface {
	CreateWithDetails(ctx context.Context, sale *entity.Sale, details []entity.SaleDetail, doc *entity.FiscalDocument) error
	GetByID(ctx context.Context, id uint) (*entity.Sale, error)
	GetByNumber(ctx context.Context, number string) (*entity.Sale, error)
	GetWithDetails(ctx context.Context, id uint) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	SellerID   *uuid.UUID
	ClientID   *uint
	Status     *enum.SaleStatus
	StartDate  *time.Time
	EndDate    *time.Time
}

// SaleNumberRepository issues sale numbers. Next returns a globally
// unique, strictly increasing number; assignment is delegated to the
// store's transactional counter so concurrent terminals cannot race.
type SaleNumberRepository interface {
	Next(ctx context.Context) (string, error)
}
