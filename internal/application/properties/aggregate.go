package properties

import (
	"fmt"

	"realty-backend/internal/domain"
	"realty-backend/internal/financing"
	"realty-backend/internal/models"
)

// Aggregate rebuilds the domain property from its stored record. With
// recompute the financing result (schedule included) is calculated again from
// the stored parameters; otherwise the stored summary is used.
func Aggregate(rec *models.Property, calcs *financing.Registry, recompute bool) (*domain.Property, error) {
	incomes := make([]domain.Income, 0, len(rec.Incomes))
	for _, in := range rec.Incomes {
		incomes = append(incomes, domain.Income{ID: in.ID, Amount: in.Amount, Frequency: domain.Frequency(in.Frequency)})
	}
	expenses := make([]domain.Expense, 0, len(rec.Expenses))
	for _, ex := range rec.Expenses {
		expenses = append(expenses, domain.Expense{ID: ex.ID, Name: ex.Name, Amount: ex.Amount, Frequency: domain.Frequency(ex.Frequency)})
	}
	p := domain.NewProperty(rec.ID, rec.Address, rec.Price, rec.ImageURL, incomes, expenses).WithCalculators(calcs)
	if rec.Financing == nil {
		return p, nil
	}

	t := financing.Type(rec.Financing.Type)
	params := rec.Financing.Parameters()
	if recompute {
		if err := p.AddFinancing(t, params); err != nil {
			return nil, fmt.Errorf("recompute financing for property %s: %w", rec.ID, err)
		}
		return p, nil
	}
	summary, err := rec.Financing.Summary()
	if err != nil {
		return nil, fmt.Errorf("decode financing summary for property %s: %w", rec.ID, err)
	}
	p.Financing = &financing.Option{Type: t, Parameters: params, Result: summary}
	return p, nil
}
