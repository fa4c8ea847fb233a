package properties

import (
	propsvc "realty-backend/internal/application/properties"
	"realty-backend/internal/domain"
	"realty-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Service *propsvc.Service
}

var errorCodes = map[error]int{
	propsvc.ErrAddressPriceRequired: fiber.StatusBadRequest,
	propsvc.ErrInvalidPrice:         fiber.StatusBadRequest,
	propsvc.ErrPropertyNotFound:     fiber.StatusNotFound,
	domain.ErrInvalidFrequency:      fiber.StatusBadRequest,
	domain.ErrInvalidAmount:         fiber.StatusBadRequest,
	domain.ErrExpenseNameRequired:   fiber.StatusBadRequest,
}

type streamBody struct {
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency string          `json:"frequency"`
}

type createPropertyRequest struct {
	Address  string          `json:"address"`
	Price    decimal.Decimal `json:"price"`
	ImageURL *string         `json:"imageUrl"`
	Incomes  []streamBody    `json:"incomes"`
	Expenses []streamBody    `json:"expenses"`
}

type updatePropertyRequest struct {
	Address *string          `json:"address"`
	Price   *decimal.Decimal `json:"price"`
}

// POST /api/v1/properties
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req createPropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	in := propsvc.CreatePropertyInput{Address: req.Address, Price: req.Price, ImageURL: req.ImageURL}
	for _, i := range req.Incomes {
		in.Incomes = append(in.Incomes, propsvc.IncomeInput{Amount: i.Amount, Frequency: i.Frequency})
	}
	for _, e := range req.Expenses {
		in.Expenses = append(in.Expenses, propsvc.ExpenseInput{Name: e.Name, Amount: e.Amount, Frequency: e.Frequency})
	}

	p, err := h.Service.Create(c.Context(), in)
	if err != nil {
		return response.Failure(c, err, errorCodes)
	}
	return response.SuccessCreated(c, "Property created successfully", p.ToView(), nil)
}

// GET /api/v1/properties?search=&offset=
func (h *Handlers) List(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		return response.Error(c, "offset must be a non-negative integer", fiber.StatusBadRequest, nil)
	}
	res, err := h.Service.List(c.Context(), propsvc.ListQuery{Search: c.Query("search"), Offset: offset})
	if err != nil {
		return response.Failure(c, err, errorCodes)
	}
	return response.Success(c, "Properties fetched successfully", res, nil)
}

// GET /api/v1/properties/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest, nil)
	}
	p, err := h.Service.Get(c.Context(), id)
	if err != nil {
		return response.Failure(c, err, errorCodes)
	}
	return response.Success(c, "Property fetched successfully", p.ToView(), nil)
}

// PUT /api/v1/properties/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest, nil)
	}
	var req updatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	p, err := h.Service.Update(c.Context(), id, propsvc.UpdatePropertyInput{Address: req.Address, Price: req.Price})
	if err != nil {
		return response.Failure(c, err, errorCodes)
	}
	return response.Success(c, "Property updated successfully", p.ToView(), nil)
}

// DELETE /api/v1/properties/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		return response.Failure(c, err, errorCodes)
	}
	return response.Success(c, "Property deleted successfully", fiber.Map{"id": id}, nil)
}
