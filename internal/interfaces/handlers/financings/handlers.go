package financings

import (
	finsvc "realty-backend/internal/application/financings"
	"realty-backend/internal/financing"
	"realty-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *finsvc.Service
}

var errorCodes = map[error]int{
	finsvc.ErrTypeRequired:     fiber.StatusBadRequest,
	finsvc.ErrPropertyNotFound: fiber.StatusNotFound,
}

type calculateRequest struct {
	Type       string               `json:"type"`
	Parameters financing.Parameters `json:"parameters"`
}

type compareRequest struct {
	Parameters financing.Parameters `json:"parameters"`
}

// GET /api/v1/financing/types
func (h *Handlers) Types(c *fiber.Ctx) error {
	return response.Success(c, "Financing types fetched successfully", h.Service.Types(), nil)
}

// POST /api/v1/financing/calculate
func (h *Handlers) Calculate(c *fiber.Ctx) error {
	var req calculateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	res, err := h.Service.Calculate(c.Context(), req.Type, req.Parameters)
	if err != nil {
		return response.Failure(c, err, errorCodes)
	}
	return response.Success(c, "Financing calculated successfully", res, nil)
}

// POST /api/v1/financing/compare
func (h *Handlers) Compare(c *fiber.Ctx) error {
	var req compareRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	out, err := h.Service.Compare(c.Context(), req.Parameters)
	if err != nil {
		return response.Failure(c, err, errorCodes)
	}
	return response.Success(c, "Financing options compared successfully", out, nil)
}

// PUT /api/v1/properties/:id/financing
func (h *Handlers) Attach(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest, nil)
	}
	var req calculateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	p, err := h.Service.Attach(c.Context(), id, req.Type, req.Parameters)
	if err != nil {
		return response.Failure(c, err, errorCodes)
	}
	return response.Success(c, "Financing saved successfully", p.ToView(), nil)
}

// DELETE /api/v1/properties/:id/financing
func (h *Handlers) Clear(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest, nil)
	}
	p, err := h.Service.Clear(c.Context(), id)
	if err != nil {
		return response.Failure(c, err, errorCodes)
	}
	return response.Success(c, "Financing removed successfully", p.ToView(), nil)
}

// POST /api/v1/properties/:id/financing/compare
func (h *Handlers) CompareForProperty(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest, nil)
	}
	var req compareRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	out, err := h.Service.CompareForProperty(c.Context(), id, req.Parameters)
	if err != nil {
		return response.Failure(c, err, errorCodes)
	}
	return response.Success(c, "Financing options compared successfully", out, nil)
}
