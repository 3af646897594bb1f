package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jmoralesv/taller-api/internal/application/dto"
	"github.com/jmoralesv/taller-api/internal/application/usecase"
	"github.com/jmoralesv/taller-api/internal/domain"
)

// ClientHandler maneja las peticiones HTTP de clientes del taller.
type ClientHandler struct {
	uc *usecase.ClientUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *usecase.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create POST /api/clients
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	client, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return conflict(c, "ya existe un cliente con ese nombre")
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// GetByID GET /api/clients/:id
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	client, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if client == nil {
		return notFound(c, "Cliente no encontrado")
	}
	return c.JSON(client)
}

// List GET /api/clients?q=&minDate=&maxDate=&order=
func (h *ClientHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Queries())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Update PUT /api/clients/:id
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	client, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return conflict(c, "ya existe un cliente con ese nombre")
		}
		return respondError(c, err)
	}
	if client == nil {
		return notFound(c, "Cliente no encontrado")
	}
	return c.JSON(client)
}

// Delete DELETE /api/clients/:id
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "Cliente no encontrado")
		}
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}
