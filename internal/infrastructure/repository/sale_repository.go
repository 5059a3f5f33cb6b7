package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/farmaciasantana/pos-api/internal/domain/entity"
	domainRepo "github.com/farmaciasantana/pos-api/internal/domain/repository"
	"github.com/farmaciasantana/pos-api/pkg/apperror"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// CreateWithDetails writes the sale header, all detail rows, and the
// fiscal document in one transaction. The fiscal document sequence is the
// sale's assigned ID, so it is formatted after the header insert. Any
// failure rolls the whole unit back.
func (r *saleRepository) CreateWithDetails(ctx context.Context, sale *entity.Sale, details []entity.SaleDetail, doc *entity.FiscalDocument) error {
	if len(details) == 0 {
		return apperror.ErrEmptyCart
	}

	if err := r.validateDetails(ctx, details); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		for i := range details {
			details[i].SaleID = sale.ID
		}
		if err := tx.Create(&details).Error; err != nil {
			return err
		}

		doc.SaleID = sale.ID
		doc.Number = entity.FormatDocumentNumber(sale.ID)
		if err := tx.Create(doc).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return apperror.NewPersistenceError(err)
	}

	sale.Details = details
	sale.FiscalDocument = doc
	return nil
}

// validateDetails rejects lines before anything is written: every quantity
// must be at least 1 and every product ID must exist. Detail rows carry no
// foreign key to products, so existence is enforced here. Deactivated
// products still pass; their row stays in the table for history.
func (r *saleRepository) validateDetails(ctx context.Context, details []entity.SaleDetail) error {
	ids := make([]uint, 0, len(details))
	seen := make(map[uint]struct{}, len(details))
	for _, detail := range details {
		if detail.Quantity < 1 {
			return apperror.NewBadRequestError("Sale line quantity must be at least 1")
		}
		if _, ok := seen[detail.ProductID]; !ok {
			seen[detail.ProductID] = struct{}{}
			ids = append(ids, detail.ProductID)
		}
	}

	var known int64
	if err := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id IN ?", ids).
		Count(&known).Error; err != nil {
		return apperror.NewPersistenceError(err)
	}
	if known != int64(len(ids)) {
		return apperror.NewBadRequestError("Sale line references an unknown product")
	}

	return nil
}

func (r *saleRepository) GetByID(ctx context.Context, id uint) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Client").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetByNumber(ctx context.Context, number string) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Client").
		First(&sale, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetWithDetails(ctx context.Context, id uint) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("sale_details.id ASC")
		}).
		Preload("FiscalDocument").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if params.SellerID != nil {
		query = query.Where("seller_id = ?", *params.SellerID)
	}

	if params.ClientID != nil {
		query = query.Where("client_id = ?", *params.ClientID)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Client").
		Order("created_at DESC").
		Find(&sales).Error

	return sales, total, err
}

type saleNumberRepository struct {
	db *gorm.DB
}

// NewSaleNumberRepository creates the store-backed sale numbering service
func NewSaleNumberRepository(db *gorm.DB) domainRepo.SaleNumberRepository {
	return &saleNumberRepository{db: db}
}

// Next increments the counter row and reads the new value inside one
// transaction. The row update serializes concurrent callers in the store,
// so numbers are unique and strictly increasing without any in-memory
// read-then-increment.
func (r *saleNumberRepository) Next(ctx context.Context) (string, error) {
	var value int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.SaleCounter{}).
			Where("name = ?", entity.SaleNumberCounter).
			Update("last_value", gorm.Expr("last_value + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// First use on a fresh database.
			if err := tx.Create(&entity.SaleCounter{Name: entity.SaleNumberCounter, LastValue: 1}).Error; err != nil {
				return err
			}
			value = 1
			return nil
		}

		return tx.Model(&entity.SaleCounter{}).
			Select("last_value").
			Where("name = ?", entity.SaleNumberCounter).
			Scan(&value).Error
	})
	if err != nil {
		return "", apperror.NewNumberingError(err)
	}

	return fmt.Sprintf("V-%08d", value), nil
}
