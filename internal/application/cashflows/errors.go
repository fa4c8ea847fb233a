package cashflows

import (
	"errors"

	"realty-backend/internal/domain"
)

var (
	ErrIncomeNotFound   = errors.New("Income not found")
	ErrExpenseNotFound  = errors.New("Expense not found")
	ErrPropertyNotFound = domain.ErrPropertyNotFound
	ErrInvalidFrequency = domain.ErrInvalidFrequency
	ErrInvalidAmount    = domain.ErrInvalidAmount
	ErrNameRequired     = domain.ErrExpenseNameRequired
)
