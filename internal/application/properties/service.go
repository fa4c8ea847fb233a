package properties

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"realty-backend/internal/domain"
	"realty-backend/internal/financing"
	"realty-backend/internal/models"
	"realty-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PageSize    = 5
	SearchLimit = 1000
)

type Service struct {
	DB          *gorm.DB
	Calculators *financing.Registry
}

func (s *Service) calculators() *financing.Registry {
	if s.Calculators == nil {
		s.Calculators = financing.NewRegistry()
	}
	return s.Calculators
}

type IncomeInput struct {
	Amount    decimal.Decimal
	Frequency string
}

type ExpenseInput struct {
	Name      string
	Amount    decimal.Decimal
	Frequency string
}

type CreatePropertyInput struct {
	Address  string
	Price    decimal.Decimal
	ImageURL *string
	Incomes  []IncomeInput
	Expenses []ExpenseInput
}

// Create stores a property with its initial incomes and expenses in one
// transaction.
func (s *Service) Create(ctx context.Context, in CreatePropertyInput) (*domain.Property, error) {
	address := strings.TrimSpace(in.Address)
	if !validation.IsValidAddress(address) || in.Price.IsZero() {
		return nil, ErrAddressPriceRequired
	}
	if in.Price.Sign() < 0 {
		return nil, ErrInvalidPrice
	}
	rec := &models.Property{Address: address, Price: in.Price, ImageURL: in.ImageURL}
	for _, i := range in.Incomes {
		if err := domain.ValidateIncome(i.Amount, i.Frequency); err != nil {
			return nil, err
		}
		rec.Incomes = append(rec.Incomes, models.Income{Amount: i.Amount, Frequency: i.Frequency})
	}
	for _, e := range in.Expenses {
		if err := domain.ValidateExpense(e.Name, e.Amount, e.Frequency); err != nil {
			return nil, err
		}
		rec.Expenses = append(rec.Expenses, models.Expense{Name: strings.TrimSpace(e.Name), Amount: e.Amount, Frequency: e.Frequency})
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()
	if err := tx.Create(rec).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("create property: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}
	return Aggregate(rec, s.calculators(), false)
}

type ListQuery struct {
	Search string
	Offset int
}

type ListResult struct {
	Properties      []domain.View `json:"properties"`
	NewOffset       *int          `json:"newOffset"`
	TotalProperties int64         `json:"totalProperties"`
}

// List returns a page of properties, newest first. A search term switches to
// a case-insensitive address match without paging.
func (s *Service) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	db := s.DB.WithContext(ctx)
	var recs []models.Property
	out := &ListResult{Properties: []domain.View{}}

	if term := strings.TrimSpace(q.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		if err := preload(db).Where("LOWER(address) LIKE ?", like).
			Order(`"createdAt" DESC`).Limit(SearchLimit).Find(&recs).Error; err != nil {
			return nil, fmt.Errorf("search properties: %w", err)
		}
		out.TotalProperties = int64(len(recs))
	} else {
		offset := q.Offset
		if offset < 0 {
			offset = 0
		}
		if err := db.Model(&models.Property{}).Count(&out.TotalProperties).Error; err != nil {
			return nil, fmt.Errorf("count properties: %w", err)
		}
		if err := preload(db).Order(`"createdAt" DESC`).Offset(offset).Limit(PageSize).Find(&recs).Error; err != nil {
			return nil, fmt.Errorf("list properties: %w", err)
		}
		if next := offset + PageSize; int64(next) < out.TotalProperties {
			out.NewOffset = &next
		}
	}

	for i := range recs {
		p, err := Aggregate(&recs[i], s.calculators(), false)
		if err != nil {
			return nil, err
		}
		out.Properties = append(out.Properties, p.ToView())
	}
	return out, nil
}

// Get loads one property with its financing recomputed.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	rec, err := Find(s.DB.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return Aggregate(rec, s.calculators(), true)
}

type UpdatePropertyInput struct {
	Address *string
	Price   *decimal.Decimal
}

// Update changes address and/or price. A price change re-runs the attached
// financing against the new price and fails if the parameters no longer
// hold (e.g. the down payment now exceeds the price).
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdatePropertyInput) (*domain.Property, error) {
	updates := map[string]interface{}{}
	if in.Address != nil {
		address := strings.TrimSpace(*in.Address)
		if !validation.IsValidAddress(address) {
			return nil, ErrAddressPriceRequired
		}
		updates["address"] = address
	}
	if in.Price != nil {
		if in.Price.Sign() <= 0 {
			return nil, ErrInvalidPrice
		}
		updates["price"] = *in.Price
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()
	rec, err := Find(tx, id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if len(updates) == 0 {
		tx.Rollback()
		return Aggregate(rec, s.calculators(), true)
	}
	if err := tx.Model(&models.Property{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("update property: %w", err)
	}
	if in.Price != nil && rec.Financing != nil {
		opt, err := s.reprice(rec.Financing, *in.Price)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		snap, err := models.NewFinancing(rec.ID, opt)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := tx.Model(&models.Financing{}).Where("id = ?", rec.Financing.ID).Updates(map[string]interface{}{
			"propertyPrice": snap.PropertyPrice,
			"resultSummary": snap.ResultSummary,
		}).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("update financing: %w", err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("update property: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *Service) reprice(f *models.Financing, price decimal.Decimal) (financing.Option, error) {
	t := financing.Type(f.Type)
	calc, err := s.calculators().Create(t)
	if err != nil {
		return financing.Option{}, err
	}
	params := f.Parameters()
	params.PropertyPrice = price
	res, err := calc.Calculate(params)
	if err != nil {
		return financing.Option{}, err
	}
	return financing.Option{Type: t, Parameters: params, Result: res}, nil
}

// Delete removes the property together with its incomes, expenses and financing.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()
	if _, err := Find(tx, id); err != nil {
		tx.Rollback()
		return err
	}
	for _, child := range []interface{}{&models.Income{}, &models.Expense{}, &models.Financing{}} {
		if err := tx.Where(`"propertyId" = ?`, id).Delete(child).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("delete property children: %w", err)
		}
	}
	if err := tx.Delete(&models.Property{}, "id = ?", id).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("delete property: %w", err)
	}
	return tx.Commit().Error
}

// SetImageURL points the property at an uploaded image.
func (s *Service) SetImageURL(ctx context.Context, id uuid.UUID, url string) error {
	res := s.DB.WithContext(ctx).Model(&models.Property{}).Where("id = ?", id).Update("imageUrl", url)
	if res.Error != nil {
		return fmt.Errorf("set property image: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

// Find loads a property record with its children using db (which may be a
// transaction).
func Find(db *gorm.DB, id uuid.UUID) (*models.Property, error) {
	var rec models.Property
	if err := preload(db).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("find property: %w", err)
	}
	return &rec, nil
}

func preload(db *gorm.DB) *gorm.DB {
	return db.Preload("Incomes", func(db *gorm.DB) *gorm.DB {
		return db.Order(`"createdAt" ASC`)
	}).Preload("Expenses", func(db *gorm.DB) *gorm.DB {
		return db.Order(`"createdAt" ASC`)
	}).Preload("Financing")
}
