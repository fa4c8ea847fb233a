package cashflows

import (
	cfsvc "realty-backend/internal/application/cashflows"
	"realty-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Handlers serves /api/v1/incomes and /api/v1/expenses.
type Handlers struct {
	Service *cfsvc.Service
}

var errorCodes = map[error]int{
	cfsvc.ErrIncomeNotFound:   fiber.StatusNotFound,
	cfsvc.ErrExpenseNotFound:  fiber.StatusNotFound,
	cfsvc.ErrPropertyNotFound: fiber.StatusNotFound,
	cfsvc.ErrInvalidFrequency: fiber.StatusBadRequest,
	cfsvc.ErrInvalidAmount:    fiber.StatusBadRequest,
	cfsvc.ErrNameRequired:     fiber.StatusBadRequest,
}

type createRequest struct {
	PropertyID string          `json:"propertyId"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Frequency  string          `json:"frequency"`
}

type updateRequest struct {
	Name      *string          `json:"name"`
	Amount    *decimal.Decimal `json:"amount"`
	Frequency *string          `json:"frequency"`
}

// POST /api/v1/incomes
func (h *Handlers) CreateIncome(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return response.ValidationFailed(c, "propertyId", "propertyId is required")
	}
	rec, err := h.Service.CreateIncome(c.Context(), cfsvc.CreateIncomeInput{PropertyID: propertyID, Amount: req.Amount, Frequency: req.Frequency})
	if err != nil {
		return response.Failure(c, err, errorCodes)
	}
	return response.SuccessCreated(c, "Income created successfully", rec, nil)
}

// PUT /api/v1/incomes/:id
func (h *Handlers) UpdateIncome(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid id", fiber.StatusBadRequest, nil)
	}
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	rec, err := h.Service.UpdateIncome(c.Context(), id, cfsvc.UpdateStreamInput{Amount: req.Amount, Frequency: req.Frequency})
	if err != nil {
		return response.Failure(c, err, errorCodes)
	}
	return response.Success(c, "Income updated successfully", rec, nil)
}

// DELETE /api/v1/incomes/:id
func (h *Handlers) DeleteIncome(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteIncome(c.Context(), id); err != nil {
		return response.Failure(c, err, errorCodes)
	}
	return response.Success(c, "Income deleted successfully", fiber.Map{"id": id}, nil)
}

// POST /api/v1/expenses
func (h *Handlers) CreateExpense(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return response.ValidationFailed(c, "propertyId", "propertyId is required")
	}
	rec, err := h.Service.CreateExpense(c.Context(), cfsvc.CreateExpenseInput{PropertyID: propertyID, Name: req.Name, Amount: req.Amount, Frequency: req.Frequency})
	if err != nil {
		return response.Failure(c, err, errorCodes)
	}
	return response.SuccessCreated(c, "Expense created successfully", rec, nil)
}

// PUT /api/v1/expenses/:id
func (h *Handlers) UpdateExpense(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid id", fiber.StatusBadRequest, nil)
	}
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	rec, err := h.Service.UpdateExpense(c.Context(), id, cfsvc.UpdateStreamInput{Name: req.Name, Amount: req.Amount, Frequency: req.Frequency})
	if err != nil {
		return response.Failure(c, err, errorCodes)
	}
	return response.Success(c, "Expense updated successfully", rec, nil)
}

// DELETE /api/v1/expenses/:id
func (h *Handlers) DeleteExpense(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteExpense(c.Context(), id); err != nil {
		return response.Failure(c, err, errorCodes)
	}
	return response.Success(c, "Expense deleted successfully", fiber.Map{"id": id}, nil)
}
