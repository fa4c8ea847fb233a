package cashflows

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"realty-backend/internal/domain"
	"realty-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service manages the income and expense streams of properties.
type Service struct {
	DB *gorm.DB
}

type CreateIncomeInput struct {
	PropertyID uuid.UUID
	Amount     decimal.Decimal
	Frequency  string
}

type CreateExpenseInput struct {
	PropertyID uuid.UUID
	Name       string
	Amount     decimal.Decimal
	Frequency  string
}

// UpdateStreamInput carries the fields a client may change; nil keeps the
// stored value. Name is ignored for incomes.
type UpdateStreamInput struct {
	Name      *string
	Amount    *decimal.Decimal
	Frequency *string
}

func (s *Service) CreateIncome(ctx context.Context, in CreateIncomeInput) (*models.Income, error) {
	if err := domain.ValidateIncome(in.Amount, in.Frequency); err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)
	if err := propertyExists(db, in.PropertyID); err != nil {
		return nil, err
	}
	rec := &models.Income{PropertyID: in.PropertyID, Amount: in.Amount, Frequency: in.Frequency}
	if err := db.Create(rec).Error; err != nil {
		return nil, fmt.Errorf("create income: %w", err)
	}
	return rec, nil
}

func (s *Service) UpdateIncome(ctx context.Context, id uuid.UUID, in UpdateStreamInput) (*models.Income, error) {
	db := s.DB.WithContext(ctx)
	var rec models.Income
	if err := db.Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIncomeNotFound
		}
		return nil, fmt.Errorf("find income: %w", err)
	}
	if in.Amount != nil {
		rec.Amount = *in.Amount
	}
	if in.Frequency != nil {
		rec.Frequency = *in.Frequency
	}
	if err := domain.ValidateIncome(rec.Amount, rec.Frequency); err != nil {
		return nil, err
	}
	if err := db.Model(&models.Income{}).Where("id = ?", id).Updates(map[string]interface{}{
		"amount":    rec.Amount,
		"frequency": rec.Frequency,
	}).Error; err != nil {
		return nil, fmt.Errorf("update income: %w", err)
	}
	return &rec, nil
}

func (s *Service) DeleteIncome(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Delete(&models.Income{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete income: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrIncomeNotFound
	}
	return nil
}

func (s *Service) CreateExpense(ctx context.Context, in CreateExpenseInput) (*models.Expense, error) {
	name := strings.TrimSpace(in.Name)
	if err := domain.ValidateExpense(name, in.Amount, in.Frequency); err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)
	if err := propertyExists(db, in.PropertyID); err != nil {
		return nil, err
	}
	rec := &models.Expense{PropertyID: in.PropertyID, Name: name, Amount: in.Amount, Frequency: in.Frequency}
	if err := db.Create(rec).Error; err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return rec, nil
}

func (s *Service) UpdateExpense(ctx context.Context, id uuid.UUID, in UpdateStreamInput) (*models.Expense, error) {
	db := s.DB.WithContext(ctx)
	var rec models.Expense
	if err := db.Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("find expense: %w", err)
	}
	if in.Name != nil {
		rec.Name = strings.TrimSpace(*in.Name)
	}
	if in.Amount != nil {
		rec.Amount = *in.Amount
	}
	if in.Frequency != nil {
		rec.Frequency = *in.Frequency
	}
	if err := domain.ValidateExpense(rec.Name, rec.Amount, rec.Frequency); err != nil {
		return nil, err
	}
	if err := db.Model(&models.Expense{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":      rec.Name,
		"amount":    rec.Amount,
		"frequency": rec.Frequency,
	}).Error; err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return &rec, nil
}

func (s *Service) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Delete(&models.Expense{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete expense: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func propertyExists(db *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := db.Model(&models.Property{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("find property: %w", err)
	}
	if count == 0 {
		return ErrPropertyNotFound
	}
	return nil
}
