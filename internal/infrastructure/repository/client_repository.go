package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/farmaciasantana/pos-api/internal/domain/entity"
	"github.com/farmaciasantana/pos-api/internal/domain/enum"
	domainRepo "github.com/farmaciasantana/pos-api/internal/domain/repository"
)

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) domainRepo.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *clientRepository) GetByID(ctx context.Context, id uint) (*entity.Client, error) {
	var client entity.Client
	err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &client, err
}

func (r *clientRepository) FindByDocument(ctx context.Context, docType enum.DocumentType, number string) (*entity.Client, error) {
	var client entity.Client
	err := r.db.WithContext(ctx).
		First(&client, "document_type = ? AND document_number = ?", docType, number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &client, err
}

func (r *clientRepository) Update(ctx context.Context, client *entity.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *clientRepository) List(ctx context.Context, params *domainRepo.ClientFilterParams) ([]entity.Client, int64, error) {
	var clients []entity.Client
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Client{})

	if params.Search != "" {
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR document_number LIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("first_name ASC").
		Find(&clients).Error

	return clients, total, err
}
