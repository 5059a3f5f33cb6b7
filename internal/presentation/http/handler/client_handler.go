package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/farmaciasantana/pos-api/internal/application/service"
	"github.com/farmaciasantana/pos-api/internal/domain/enum"
	"github.com/farmaciasantana/pos-api/internal/domain/repository"
	"github.com/farmaciasantana/pos-api/internal/presentation/http/dto/request"
	"github.com/farmaciasantana/pos-api/internal/presentation/http/dto/response"
	"github.com/farmaciasantana/pos-api/pkg/pagination"
)

// ClientHandler handles client-related HTTP requests
type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// List handles listing clients
func (h *ClientHandler) List(c *gin.Context) {
	var filter request.ClientFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ClientFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search: filter.Search,
	}

	result, err := h.clientService.ListClients(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Clients retrieved successfully", result)
}

// Get handles retrieving a client by ID
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client retrieved successfully", client)
}

// FindByDocument handles the till-side lookup by identity document
func (h *ClientHandler) FindByDocument(c *gin.Context) {
	docType := enum.DocumentType(c.Query("document_type"))
	number := c.Query("document_number")
	if number == "" {
		response.BadRequest(c, "document_number is required")
		return
	}

	client, err := h.clientService.FindByDocument(c.Request.Context(), docType, number)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client retrieved successfully", client)
}

// Create handles client registration
func (h *ClientHandler) Create(c *gin.Context) {
	var req request.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), &service.CreateClientInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DocumentType:   enum.DocumentType(req.DocumentType),
		DocumentNumber: req.DocumentNumber,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		BirthDate:      req.BirthDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Client created successfully", client)
}

// Update handles client updates
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req request.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), id, &service.UpdateClientInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client updated successfully", client)
}
