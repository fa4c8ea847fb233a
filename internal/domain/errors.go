package domain

import (
	"errors"

	"github.com/shopspring/decimal"

	"realty-backend/internal/pkg/validation"
)

var (
	ErrPropertyNotFound    = errors.New("Property not found")
	ErrInvalidFrequency    = errors.New("Frequency must be monthly or yearly")
	ErrInvalidAmount       = errors.New("Amount must be greater than 0")
	ErrExpenseNameRequired = errors.New("Expense name is required")
)

// ValidateIncome checks the fields of an income stream.
func ValidateIncome(amount decimal.Decimal, frequency string) error {
	if !validation.IsPositiveAmount(amount) {
		return ErrInvalidAmount
	}
	if !validation.IsValidFrequency(frequency) {
		return ErrInvalidFrequency
	}
	return nil
}

func ValidateExpense(name string, amount decimal.Decimal, frequency string) error {
	if validation.IsBlank(name) {
		return ErrExpenseNameRequired
	}
	return ValidateIncome(amount, frequency)
}
