package service

import (
	"context"
	"time"

	"github.com/farmaciasantana/pos-api/internal/domain/entity"
	"github.com/farmaciasantana/pos-api/internal/domain/enum"
	"github.com/farmaciasantana/pos-api/internal/domain/repository"
	"github.com/farmaciasantana/pos-api/pkg/apperror"
	"github.com/farmaciasantana/pos-api/pkg/pagination"
)

// ClientService handles client catalog operations
type ClientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// CreateClientInput represents the create client input
type CreateClientInput struct {
	FirstName      string
	LastName       *string
	DocumentType   enum.DocumentType
	DocumentNumber string
	Email          *string
	Phone          *string
	Address        *string
	BirthDate      *time.Time
}

// UpdateClientInput represents the update client input. Nil fields are
// left unchanged; the identity document itself is immutable.
type UpdateClientInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Address   *string
	BirthDate *time.Time
}

// CreateClient registers a client. The (document type, number) pair is the
// business identity and must be unique.
func (s *ClientService) CreateClient(ctx context.Context, input *CreateClientInput) (*entity.Client, error) {
	if !input.DocumentType.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid document type")
	}
	if input.DocumentNumber == "" {
		return nil, apperror.NewBadRequestError("Document number is required")
	}

	existing, err := s.clientRepo.FindByDocument(ctx, input.DocumentType, input.DocumentNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewBadRequestError("A client with this document already exists")
	}

	client := &entity.Client{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		DocumentType:   input.DocumentType,
		DocumentNumber: input.DocumentNumber,
		Email:          input.Email,
		Phone:          input.Phone,
		Address:        input.Address,
		BirthDate:      input.BirthDate,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id uint) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// FindByDocument looks a client up by identity document, the lookup the
// cashier does at the till.
func (s *ClientService) FindByDocument(ctx context.Context, docType enum.DocumentType, number string) (*entity.Client, error) {
	if !docType.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid document type")
	}

	client, err := s.clientRepo.FindByDocument(ctx, docType, number)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// UpdateClient updates a client's contact details
func (s *ClientService) UpdateClient(ctx context.Context, id uint, input *UpdateClientInput) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	if input.FirstName != nil {
		client.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		client.LastName = input.LastName
	}
	if input.Email != nil {
		client.Email = input.Email
	}
	if input.Phone != nil {
		client.Phone = input.Phone
	}
	if input.Address != nil {
		client.Address = input.Address
	}
	if input.BirthDate != nil {
		client.BirthDate = input.BirthDate
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// ListClients lists clients with filtering
func (s *ClientService) ListClients(ctx context.Context, params *repository.ClientFilterParams) (*pagination.PaginatedResult[entity.Client], error) {
	clients, total, err := s.clientRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(clients, pag), nil
}
